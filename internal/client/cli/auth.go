package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/buildinfo"
)

// Login signs in with the e-mail given as the first argument, or prompts
// for it. Any well-formed address is accepted.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = GetSimpleText(a.reader, "-Enter email", a.out)
		if err != nil {
			return err
		}
	}

	name, err := GetSimpleText(a.reader, "-Enter display name (optional)", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, name)
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "error", err)
		return err
	}
	if err := a.setUser(ctx, user); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	if err := a.setUser(ctx, nil); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Whoami(_ context.Context, _ []string) error {
	u := a.user
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(a.out, "id:   %s\n", u.ID)
	fmt.Fprintf(a.out, "role: %s\n", u.Role)
	return nil
}

func (a *App) Version(_ context.Context, _ []string) error {
	buildinfo.PrintBuildData(a.out)
	return nil
}

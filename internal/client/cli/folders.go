package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

const defaultFolderColor = "#64748b"

func (a *App) Folders(_ context.Context, _ []string) error {
	folders := a.store.Folders()
	if len(folders) == 0 {
		fmt.Fprintln(a.out, "No folders")
		return nil
	}

	counts := map[string]int{}
	for _, n := range a.store.Notes() {
		counts[n.FolderID]++
	}
	for _, f := range folders {
		fmt.Fprintf(a.out, "%-10s %-20s %s  %d note(s)\n", shortID(f.ID), f.Name, f.Color, counts[f.ID])
	}
	return nil
}

// MkFolder creates a folder. A trailing argument starting with '#' is taken
// as its colour.
func (a *App) MkFolder(ctx context.Context, args []string) error {
	color := defaultFolderColor
	if n := len(args); n > 1 && strings.HasPrefix(args[n-1], "#") {
		color = args[n-1]
		args = args[:n-1]
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: mkfolder <name> [#color]", errUsage)
	}

	f, err := a.store.CreateFolder(ctx, models.FolderInput{
		Name:   strings.Join(args, " "),
		Color:  color,
		UserID: a.user.ID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created folder %s (%s)\n", f.Name, shortID(f.ID))
	return nil
}

func (a *App) RmFolder(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: rmfolder <folder>", errUsage)
	}
	f, err := a.resolveFolder(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if _, err := a.store.DeleteFolder(ctx, f.ID); err != nil {
		if errors.Is(err, common.ErrFolderNotEmpty) {
			return fmt.Errorf("folder %s still has notes, move or delete them first", f.Name)
		}
		return err
	}
	fmt.Fprintf(a.out, "Deleted folder %s\n", f.Name)
	return nil
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/storage"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// openStorage is a test seam for storage.Open.
var openStorage = storage.Open

type App struct {
	config *config.Config
	log    logging.Logger
	store  services.NoteStore
	auth   services.AuthService
	user   *models.User
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
	closer func() error
}

// NewApp opens the configured storage, asking for the passphrase on the
// terminal when encryption is enabled, and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	st, err := openStorage(ctx, c, log, func() ([]byte, error) {
		return GetPassword("Storage passphrase", os.Stdout)
	})
	if err != nil {
		log.Error(ctx, "error opening storage", "error", err)
		return nil, err
	}

	a := newApp(c, log, st.Repo, bufio.NewReader(os.Stdin), os.Stdout)
	a.closer = st.Close
	log.Debug(ctx, "storage opened", "backend", st.Backend)
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, repo blobs.Repository, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config: c,
		log:    log,
		store:  services.NewNoteStore(repo, log),
		auth:   services.NewAuthService(repo, log, []byte(c.SessionSecret), c.SessionTTL),
		reader: reader,
		out:    out,
		now:    time.Now,
	}
}

// Run loads the notes, restores the previous session and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.store.Load(ctx); err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if err := a.setUser(ctx, user); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	for _, w := range a.store.Warnings() {
		fmt.Fprintf(a.out, "warning: %v\n", w)
	}

	fmt.Fprintln(a.out, "Welcome to gophnotes (type 'help' for commands)")
	if a.user != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", a.user.Email)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer()
	a.closer = nil
	return err
}

// setUser switches the signed-in user; the store adopts anything left
// without an owner, such as folders seeded before the first login.
func (a *App) setUser(ctx context.Context, u *models.User) error {
	a.user = u
	if u == nil {
		return a.store.SetOwner(ctx, "")
	}
	return a.store.SetOwner(ctx, u.ID)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", a.user.Name)
}

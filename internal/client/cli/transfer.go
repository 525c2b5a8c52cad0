package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/markdown"
)

// Export writes every note as a markdown file into the given directory, or
// the configured export directory.
func (a *App) Export(ctx context.Context, args []string) error {
	dir := a.config.ExportDir
	if len(args) > 0 {
		dir = strings.Join(args, " ")
	}

	notes := a.store.Notes()
	abs, err := markdown.Export(dir, notes)
	if err != nil {
		return err
	}

	a.log.Info(ctx, "notes exported", "count", len(notes), "dir", abs)
	fmt.Fprintf(a.out, "Exported %d note(s) to %s\n", len(notes), abs)
	return nil
}

// Import reads markdown files with frontmatter from a directory. Notes
// whose ids already exist are left alone.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: import <dir>", errUsage)
	}
	dir := strings.Join(args, " ")

	notes, skipped, err := markdown.Import(dir)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		a.log.Warn(ctx, "file skipped", "error", s)
	}

	n, err := a.store.ImportNotes(ctx, notes)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d of %d note(s)", n, len(notes))
	if len(skipped) > 0 {
		fmt.Fprintf(a.out, ", %d file(s) skipped", len(skipped))
	}
	fmt.Fprintln(a.out)
	return nil
}

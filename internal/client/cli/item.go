package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

const (
	shortIDLen = 8
	timeLayout = "2006-01-02 15:04"
)

var errAmbiguous = errors.New("ambiguous reference")

// shortID is the tail of an id; UUIDv7 heads are timestamps and collide
// for notes created close together.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[len(id)-shortIDLen:]
}

// matchRef resolves ref against ids: exact match first, then a unique
// suffix or prefix.
func matchRef(ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty reference: %w", common.ErrorNotFound)
	}

	var candidates []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasSuffix(id, ref) || strings.HasPrefix(id, ref) {
			candidates = append(candidates, id)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s: %w", ref, common.ErrorNotFound)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%s matches %d items: %w", ref, len(candidates), errAmbiguous)
	}
}

func (a *App) resolveNote(ref string) (models.Note, error) {
	notes := a.store.Notes()
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}

	id, err := matchRef(ref, ids)
	if err != nil {
		return models.Note{}, fmt.Errorf("note %w", err)
	}
	n, _ := a.store.Note(id)
	return n, nil
}

// resolveFolder accepts a folder id or a case-insensitive folder name.
func (a *App) resolveFolder(ref string) (models.Folder, error) {
	ref = strings.TrimSpace(ref)
	folders := a.store.Folders()
	for _, f := range folders {
		if f.ID == ref || strings.EqualFold(f.Name, ref) {
			return f, nil
		}
	}

	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
	}
	id, err := matchRef(ref, ids)
	if err != nil {
		return models.Folder{}, fmt.Errorf("folder %w", err)
	}
	for _, f := range folders {
		if f.ID == id {
			return f, nil
		}
	}
	return models.Folder{}, fmt.Errorf("folder %s: %w", ref, common.ErrorNotFound)
}

func (a *App) folderName(id string) string {
	if id == "" {
		return ""
	}
	for _, f := range a.store.Folders() {
		if f.ID == id {
			return f.Name
		}
	}
	return id
}

func printNoteLine(w io.Writer, n models.Note) {
	line := fmt.Sprintf("%s  %s  %s", shortID(n.ID), n.UpdatedAt.Local().Format(timeLayout), n.DisplayTitle())
	if len(n.Tags) > 0 {
		line += "  [" + strings.Join(n.Tags, ", ") + "]"
	}
	fmt.Fprintln(w, line)
}

func printNotes(w io.Writer, notes []models.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found")
		return
	}
	for _, n := range notes {
		printNoteLine(w, n)
	}
}

func (a *App) printNote(n models.Note) {
	fmt.Fprintf(a.out, "ID:      %s\n", n.ID)
	fmt.Fprintf(a.out, "Title:   %s\n", n.DisplayTitle())
	if len(n.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags:    %s\n", strings.Join(n.Tags, ", "))
	}
	if n.FolderID != "" {
		fmt.Fprintf(a.out, "Folder:  %s\n", a.folderName(n.FolderID))
	}
	fmt.Fprintf(a.out, "Created: %s\n", n.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(a.out, "Updated: %s\n", n.UpdatedAt.Local().Format(timeLayout))
	if n.Summary != "" {
		fmt.Fprintf(a.out, "Summary: %s\n", n.Summary)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, n.Content)
}

package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// SaveDraft is the editor save path. An empty id creates a note, any other
// id updates it (common.ErrorNotFound when it does not exist). Saved notes
// are always markdown and a blank title becomes models.UntitledNote.
func (s *noteStore) SaveDraft(ctx context.Context, id, userID string, d models.Draft) (models.Note, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" && strings.TrimSpace(d.Content) == "" {
		return models.Note{}, common.ErrEmptyDraft
	}

	d.Tags = cleanTags(d.Tags)
	if err := validateStruct(d); err != nil {
		return models.Note{}, err
	}

	if title == "" {
		title = models.UntitledNote
	}

	if id == "" {
		return s.CreateNote(ctx, models.NoteInput{
			Title:      title,
			Content:    d.Content,
			Tags:       d.Tags,
			FolderID:   d.FolderID,
			UserID:     userID,
			IsMarkdown: true,
		})
	}

	markdown := true
	n, found, err := s.UpdateNote(ctx, id, models.NotePatch{
		Title:      &title,
		Content:    &d.Content,
		Tags:       &d.Tags,
		FolderID:   &d.FolderID,
		IsMarkdown: &markdown,
	})
	if err != nil {
		return models.Note{}, err
	}
	if !found {
		return models.Note{}, fmt.Errorf("note %s: %w", id, common.ErrorNotFound)
	}
	return n, nil
}

// cleanTags trims tags and drops repeats. Blank tags are kept so validation
// can reject them.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

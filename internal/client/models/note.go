// Package models defines the client-side data shapes of gophnotes: notes,
// folders, the signed-in user, and analytics views. JSON tags match the
// persisted blob layout exactly.
package models

import (
	"slices"
	"time"
)

// UntitledNote is the title a note gets when saved without one.
const UntitledNote = "Untitled Note"

// Note is a markdown note. ID and CreatedAt never change after creation and
// UpdatedAt is never earlier than CreatedAt.
type Note struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"-"`
	Tags       []string  `json:"tags" yaml:"tags"`
	FolderID   string    `json:"folderId,omitempty" yaml:"folder_id,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updated_at"`
	UserID     string    `json:"userId" yaml:"user_id"`
	IsMarkdown bool      `json:"isMarkdown,omitempty" yaml:"is_markdown,omitempty"`

	// Summary and Keywords are reserved for derived metadata; nothing fills
	// them in yet.
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// DisplayTitle returns the title, or UntitledNote when it is empty.
func (n Note) DisplayTitle() string {
	if n.Title == "" {
		return UntitledNote
	}
	return n.Title
}

// Clone returns a copy that shares no slices with n.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	n.Keywords = slices.Clone(n.Keywords)
	return n
}

// NoteInput carries every Note field except the identifier and timestamps.
type NoteInput struct {
	Title      string
	Content    string
	Tags       []string
	FolderID   string
	UserID     string
	IsMarkdown bool
	Summary    string
	Keywords   []string
}

// NotePatch is a partial update: nil fields are left untouched. An empty
// FolderID pointer value detaches the note from its folder.
type NotePatch struct {
	Title      *string
	Content    *string
	Tags       *[]string
	FolderID   *string
	IsMarkdown *bool
	Summary    *string
	Keywords   *[]string
}

// Apply merges the set fields of p into n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Tags != nil {
		n.Tags = NormalizeTags(*p.Tags)
	}
	if p.FolderID != nil {
		n.FolderID = *p.FolderID
	}
	if p.IsMarkdown != nil {
		n.IsMarkdown = *p.IsMarkdown
	}
	if p.Summary != nil {
		n.Summary = *p.Summary
	}
	if p.Keywords != nil {
		n.Keywords = normalizeKeywords(*p.Keywords)
	}
}

// Draft is what the editor submits on save.
type Draft struct {
	Title    string
	Content  string
	Tags     []string `validate:"dive,required,max=64"`
	FolderID string
}

// NormalizeTags returns a non-nil copy so an empty tag list persists as [].
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}

func normalizeKeywords(kw []string) []string {
	if len(kw) == 0 {
		return nil
	}
	return slices.Clone(kw)
}

// NewNote builds a note from in with the given identity and timestamp.
func NewNote(id string, in NoteInput, now time.Time) Note {
	return Note{
		ID:         id,
		Title:      in.Title,
		Content:    in.Content,
		Tags:       NormalizeTags(in.Tags),
		FolderID:   in.FolderID,
		CreatedAt:  now,
		UpdatedAt:  now,
		UserID:     in.UserID,
		IsMarkdown: in.IsMarkdown,
		Summary:    in.Summary,
		Keywords:   normalizeKeywords(in.Keywords),
	}
}

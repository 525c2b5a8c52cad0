package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/repositories/blobs"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
	"github.com/google/uuid"
)

// NoteStore owns the in-memory note and folder collections and keeps them
// in sync with the "notes" and "folders" blobs.
//
// Every mutation builds the next collection, persists it in full and only
// then replaces the in-memory state, so a failed write changes nothing.
// Mutations called before Load load first.
type NoteStore interface {
	// Load reads both collections, seeding the default folders on first run.
	// Malformed blobs fall back to empty collections and are reported via
	// Warnings; repository failures are returned.
	Load(ctx context.Context) error
	IsLoading() bool
	Warnings() []error

	// SetOwner sets the user id stamped on new notes and folders. Once
	// loaded, notes and folders without an owner are adopted by userID and
	// saved; an empty userID only clears the owner.
	SetOwner(ctx context.Context, userID string) error
	Owner() string

	Notes() []models.Note
	Folders() []models.Folder
	Note(id string) (models.Note, bool)

	CreateNote(ctx context.Context, in models.NoteInput) (models.Note, error)
	// UpdateNote reports found=false, and persists nothing, when id is unknown.
	UpdateNote(ctx context.Context, id string, patch models.NotePatch) (models.Note, bool, error)
	DeleteNote(ctx context.Context, id string) (bool, error)
	ImportNotes(ctx context.Context, notes []models.Note) (int, error)
	SaveDraft(ctx context.Context, id, userID string, d models.Draft) (models.Note, error)

	SearchNotes(query string) []models.Note
	Search(query string, scope models.SearchScope) []models.Note
	NotesInFolder(folderID string) []models.Note
	PopularTags(limit int) []string

	CreateFolder(ctx context.Context, in models.FolderInput) (models.Folder, error)
	DeleteFolder(ctx context.Context, id string) (bool, error)
}

type Option func(*noteStore)

// WithOwner sets the initial owner id.
func WithOwner(userID string) Option {
	return func(s *noteStore) { s.owner = userID }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *noteStore) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 generator for note and folder ids.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *noteStore) { s.newID = gen }
}

type noteStore struct {
	repo  blobs.Repository
	log   logging.Logger
	now   func() time.Time
	newID func() (string, error)

	mu       sync.RWMutex
	owner    string
	loaded   bool
	notes    []models.Note
	folders  []models.Folder
	warnings []error
}

// NewNoteStore returns a NoteStore persisting to repo. Call Load before
// reading.
func NewNoteStore(repo blobs.Repository, log logging.Logger, opts ...Option) NoteStore {
	s := &noteStore{
		repo:    repo,
		log:     log,
		now:     timex.NowMillis,
		newID:   newUUIDv7,
		notes:   []models.Note{},
		folders: []models.Folder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// timestamp is the persisted precision: UTC, milliseconds.
func (s *noteStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *noteStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *noteStore) load(ctx context.Context) error {
	var warnings []error

	notes, _, err := loadCollection[models.Note](ctx, s.repo, blobs.KeyNotes)
	if err != nil {
		if !errors.Is(err, common.ErrMalformedState) {
			return err
		}
		s.log.Warn(ctx, "persisted notes are malformed, starting with none", "error", err)
		warnings = append(warnings, err)
		notes = nil
	}

	folders, present, err := loadCollection[models.Folder](ctx, s.repo, blobs.KeyFolders)
	if err != nil {
		if !errors.Is(err, common.ErrMalformedState) {
			return err
		}
		// the corrupt blob stays in place; seeding would overwrite it
		s.log.Warn(ctx, "persisted folders are malformed, starting with none", "error", err)
		warnings = append(warnings, err)
		folders = nil
	}

	if !present {
		folders = models.DefaultFolders(s.owner, s.timestamp())
		if err := saveCollection(ctx, s.repo, blobs.KeyFolders, folders); err != nil {
			return err
		}
		s.log.Info(ctx, "default folders created", "count", len(folders))
	}

	if notes == nil {
		notes = []models.Note{}
	}
	for i := range notes {
		normalizeNote(&notes[i])
	}
	if folders == nil {
		folders = []models.Folder{}
	}

	s.notes = notes
	s.folders = folders
	s.warnings = warnings
	s.loaded = true

	s.log.Debug(ctx, "notes loaded", "notes", len(notes), "folders", len(folders))
	return nil
}

func normalizeNote(n *models.Note) {
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if len(n.Keywords) == 0 {
		n.Keywords = nil
	}
}

func (s *noteStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

func (s *noteStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

func (s *noteStore) Warnings() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.warnings)
}

func (s *noteStore) SetOwner(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.owner = userID
	if userID == "" || !s.loaded {
		return nil
	}

	values := map[string][]byte{}

	folders := slices.Clone(s.folders)
	claimedFolders := 0
	for i := range folders {
		if folders[i].UserID == "" {
			folders[i].UserID = userID
			claimedFolders++
		}
	}
	if claimedFolders > 0 {
		b, err := encodeCollection(folders)
		if err != nil {
			return fmt.Errorf("encode %s: %w", blobs.KeyFolders, err)
		}
		values[blobs.KeyFolders] = b
	}

	notes := slices.Clone(s.notes)
	claimedNotes := 0
	for i := range notes {
		if notes[i].UserID == "" {
			notes[i].UserID = userID
			claimedNotes++
		}
	}
	if claimedNotes > 0 {
		b, err := encodeCollection(notes)
		if err != nil {
			return fmt.Errorf("encode %s: %w", blobs.KeyNotes, err)
		}
		values[blobs.KeyNotes] = b
	}

	if len(values) == 0 {
		return nil
	}
	if err := s.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("save owner: %w", err)
	}
	s.folders = folders
	s.notes = notes

	s.log.Info(ctx, "ownerless items adopted", "user_id", userID, "folders", claimedFolders, "notes", claimedNotes)
	return nil
}

func (s *noteStore) Owner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

func (s *noteStore) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

func (s *noteStore) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.folders)
}

func (s *noteStore) Note(id string) (models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, false
	}
	return s.notes[i].Clone(), true
}

func (s *noteStore) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool { return n.ID == id })
}

func cloneNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

// commitNotes persists next and, on success, makes it the current state.
func (s *noteStore) commitNotes(ctx context.Context, next []models.Note) error {
	if err := saveCollection(ctx, s.repo, blobs.KeyNotes, next); err != nil {
		return err
	}
	s.notes = next
	return nil
}

func (s *noteStore) CreateNote(ctx context.Context, in models.NoteInput) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return models.Note{}, err
	}

	id, err := s.newID()
	if err != nil {
		return models.Note{}, fmt.Errorf("generate note id: %w", err)
	}
	if s.indexOf(id) >= 0 {
		return models.Note{}, fmt.Errorf("generated note id %s already exists", id)
	}

	if in.UserID == "" {
		in.UserID = s.owner
	}
	note := models.NewNote(id, in, s.timestamp())

	next := make([]models.Note, 0, len(s.notes)+1)
	next = append(next, note)
	next = append(next, s.notes...)

	if err := s.commitNotes(ctx, next); err != nil {
		return models.Note{}, err
	}

	s.log.Debug(ctx, "note created", "id", id)
	return note.Clone(), nil
}

func (s *noteStore) UpdateNote(ctx context.Context, id string, patch models.NotePatch) (models.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return models.Note{}, false, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, false, nil
	}

	updated := s.notes[i].Clone()
	patch.Apply(&updated)

	now := s.timestamp()
	if now.Before(updated.CreatedAt) {
		now = updated.CreatedAt
	}
	updated.UpdatedAt = now

	next := slices.Clone(s.notes)
	next[i] = updated

	if err := s.commitNotes(ctx, next); err != nil {
		return models.Note{}, true, err
	}

	s.log.Debug(ctx, "note updated", "id", id)
	return updated.Clone(), true, nil
}

func (s *noteStore) DeleteNote(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.notes), i, i+1)
	if err := s.commitNotes(ctx, next); err != nil {
		return true, err
	}

	s.log.Debug(ctx, "note deleted", "id", id)
	return true, nil
}

// ImportNotes prepends the notes whose ids are not yet known, keeping their
// order, and persists once. Notes without an id are given one.
func (s *noteStore) ImportNotes(ctx context.Context, notes []models.Note) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(s.notes)+len(notes))
	for _, n := range s.notes {
		known[n.ID] = true
	}

	now := s.timestamp()
	imported := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		n = n.Clone()
		if n.ID == "" {
			id, err := s.newID()
			if err != nil {
				return 0, fmt.Errorf("generate note id: %w", err)
			}
			n.ID = id
		}
		if known[n.ID] {
			continue
		}
		known[n.ID] = true

		normalizeNote(&n)
		if n.UserID == "" {
			n.UserID = s.owner
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
		n.CreatedAt = n.CreatedAt.UTC().Truncate(time.Millisecond)
		n.UpdatedAt = n.UpdatedAt.UTC().Truncate(time.Millisecond)
		if n.UpdatedAt.Before(n.CreatedAt) {
			n.UpdatedAt = n.CreatedAt
		}
		imported = append(imported, n)
	}

	if len(imported) == 0 {
		return 0, nil
	}

	next := make([]models.Note, 0, len(imported)+len(s.notes))
	next = append(next, imported...)
	next = append(next, s.notes...)

	if err := s.commitNotes(ctx, next); err != nil {
		return 0, err
	}

	s.log.Info(ctx, "notes imported", "count", len(imported), "skipped", len(notes)-len(imported))
	return len(imported), nil
}

package markdown

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNote() models.Note {
	created := time.Date(2024, 5, 1, 8, 30, 0, 123_000_000, time.UTC)
	return models.Note{
		ID:         "0190c4e0-0000-7000-8000-000000000001",
		Title:      "Trip Plan: Rome",
		Content:    "# Day 1\n\n---\n\nColosseum\n",
		Tags:       []string{"travel", "italy"},
		FolderID:   "personal",
		CreatedAt:  created,
		UpdatedAt:  created.Add(time.Hour),
		UserID:     "user-1",
		IsMarkdown: true,
		Keywords:   []string{"rome"},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	n := sampleNote()

	data, err := Encode(n)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "---\n")
	assert.Contains(t, string(data), "\n---\n\n# Day 1")

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(n, got))
}

func TestDecode_EmptyTagsAndContent(t *testing.T) {
	n := models.Note{ID: "x", Tags: []string{}, CreatedAt: time.Unix(0, 0).UTC(), UpdatedAt: time.Unix(0, 0).UTC()}

	data, err := Encode(n)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Tags)
	assert.Empty(t, got.Content)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"no frontmatter", "# just markdown\n", ErrNoFrontmatter},
		{"unterminated", "---\nid: x\n# body\n", ErrNoFrontmatter},
		{"no id", "---\ntitle: x\n---\n\nbody", ErrNoID},
		{"empty frontmatter", "---\n---\n\nbody", ErrNoID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Decode([]byte("---\nid: [unclosed\n---\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse frontmatter")
}

func TestDecode_CRLF(t *testing.T) {
	got, err := Decode([]byte("---\r\nid: abc\r\ntitle: Win\r\n---\r\n\r\nline\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "line\n", got.Content)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "abc.md", FileName("abc"))
	assert.Equal(t, "a_b.md", FileName("a/b"))
}

func TestExportImport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	a := sampleNote()
	b := sampleNote()
	b.ID = "0190c4e0-0000-7000-8000-000000000002"
	b.Title = "Budget"

	abs, err := Export(dir, []models.Note{a, b})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	require.NoError(t, os.WriteFile(filepath.Join(abs, "broken.md"), []byte("no frontmatter"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(abs, "readme.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(abs, "sub.md"), 0o750))

	notes, skipped, err := Import(abs)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Empty(t, cmp.Diff(a, notes[0]))
	assert.Empty(t, cmp.Diff(b, notes[1]))
	require.Len(t, skipped, 1)
	assert.ErrorIs(t, skipped[0], ErrNoFrontmatter)
	assert.Contains(t, skipped[0].Error(), "broken.md")
}

func TestImport_MissingDir(t *testing.T) {
	_, _, err := Import(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// Package markdown moves notes in and out of plain markdown files: one
// "<id>.md" per note with the metadata in a YAML frontmatter block.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"gopkg.in/yaml.v3"
)

const delimiter = "---\n"

var (
	ErrNoFrontmatter = errors.New("missing frontmatter")
	ErrNoID          = errors.New("frontmatter has no id")
)

// Encode renders n as frontmatter followed by a blank line and the content.
func Encode(n models.Note) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(delimiter)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(n); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString(delimiter)
	buf.WriteString("\n")
	buf.WriteString(n.Content)

	return buf.Bytes(), nil
}

// Decode parses what Encode produces. The content is returned byte for byte.
func Decode(data []byte) (models.Note, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	rest, ok := strings.CutPrefix(text, delimiter)
	if !ok {
		return models.Note{}, ErrNoFrontmatter
	}

	var front, body string
	if strings.HasPrefix(rest, delimiter) {
		front, body = "", rest[len(delimiter):]
	} else {
		i := strings.Index(rest, "\n"+delimiter)
		if i < 0 {
			return models.Note{}, ErrNoFrontmatter
		}
		front, body = rest[:i+1], rest[i+1+len(delimiter):]
	}

	var n models.Note
	if err := yaml.Unmarshal([]byte(front), &n); err != nil {
		return models.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if n.ID == "" {
		return models.Note{}, ErrNoID
	}

	n.Content = strings.TrimPrefix(body, "\n")
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if len(n.Keywords) == 0 {
		n.Keywords = nil
	}
	return n, nil
}

// FileName is the export file name for a note id.
func FileName(id string) string {
	r := strings.NewReplacer("/", "_", `\`, "_", string(os.PathSeparator), "_")
	return r.Replace(id) + ".md"
}

// WriteNote writes n into dir.
func WriteNote(dir string, n models.Note) (string, error) {
	data, err := Encode(n)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(n.ID))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// ReadNote reads a single exported note.
func ReadNote(path string) (models.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Note{}, err
	}
	n, err := Decode(data)
	if err != nil {
		return models.Note{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// Export writes every note into dir, creating it when needed, and returns
// the absolute directory.
func Export(dir string, notes []models.Note) (string, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}
	for _, n := range notes {
		if _, err := WriteNote(abs, n); err != nil {
			return "", fmt.Errorf("export %s: %w", n.ID, err)
		}
	}
	return abs, nil
}

// Import reads every .md file directly inside dir, in file name order.
// Files that do not parse are skipped and reported in skipped.
func Import(dir string) (notes []models.Note, skipped []error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		n, err := ReadNote(filepath.Join(dir, entry.Name()))
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		notes = append(notes, n)
	}

	return notes, skipped, nil
}

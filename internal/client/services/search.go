package services

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// SearchNotes returns every note when query is blank; otherwise the notes
// whose title, content or any tag contains query, ignoring case. Results
// keep collection order.
func (s *noteStore) SearchNotes(query string) []models.Note {
	return s.Search(query, models.ScopeAll)
}

// Search is SearchNotes narrowed to content only or tags only. A blank
// query returns every note whatever the scope.
func (s *noteStore) Search(query string, scope models.SearchScope) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(query) == "" {
		return cloneNotes(s.notes)
	}

	q := strings.ToLower(query)
	out := []models.Note{}
	for _, n := range s.notes {
		if matches(n, q, scope) {
			out = append(out, n.Clone())
		}
	}
	return out
}

func matches(n models.Note, q string, scope models.SearchScope) bool {
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	anyTag := slices.ContainsFunc(n.Tags, contains)

	switch scope {
	case models.ScopeContent:
		return contains(n.Content)
	case models.ScopeTags:
		return anyTag
	default:
		return contains(n.Title) || contains(n.Content) || anyTag
	}
}

// NotesInFolder returns the notes filed under folderID, in collection order.
func (s *noteStore) NotesInFolder(folderID string) []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Note{}
	for _, n := range s.notes {
		if n.FolderID == folderID {
			out = append(out, n.Clone())
		}
	}
	return out
}

// PopularTags lists distinct tags in order of first appearance, at most
// limit of them. A non-positive limit means no limit.
func (s *noteStore) PopularTags(limit int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	out := []string{}
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

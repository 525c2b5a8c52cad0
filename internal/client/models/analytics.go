package models

import "time"

// SearchScope narrows which note fields a query is matched against.
type SearchScope string

const (
	ScopeAll     SearchScope = "all"
	ScopeContent SearchScope = "content"
	ScopeTags    SearchScope = "tags"
)

// ParseSearchScope maps user input to a scope; unknown values yield ScopeAll.
func ParseSearchScope(s string) SearchScope {
	switch SearchScope(s) {
	case ScopeContent:
		return ScopeContent
	case ScopeTags:
		return ScopeTags
	default:
		return ScopeAll
	}
}

type TagCount struct {
	Tag   string
	Count int
}

type Activity struct {
	Date      time.Time
	Action    string
	NoteTitle string
}

// Analytics is the dashboard summary of a note collection.
type Analytics struct {
	TotalNotes     int
	NotesThisWeek  int
	TopTags        []TagCount
	RecentActivity []Activity
	RecentNotes    []Note
}

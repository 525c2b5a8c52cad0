package services

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

const (
	topTagsLimit        = 5
	recentActivityLimit = 5
	recentNotesLimit    = 6
	weekWindow          = 7 * 24 * time.Hour
)

// ComputeAnalytics summarises notes for the dashboard. notes is expected in
// collection order (newest first), which is what "recent" refers to.
func ComputeAnalytics(notes []models.Note, now time.Time) models.Analytics {
	a := models.Analytics{
		TotalNotes:     len(notes),
		TopTags:        []models.TagCount{},
		RecentActivity: []models.Activity{},
		RecentNotes:    []models.Note{},
	}

	weekAgo := now.Add(-weekWindow)
	for _, n := range notes {
		if n.CreatedAt.After(weekAgo) {
			a.NotesThisWeek++
		}
	}

	counts := map[string]int{}
	var order []string
	for _, n := range notes {
		for _, t := range n.Tags {
			if _, ok := counts[t]; !ok {
				order = append(order, t)
			}
			counts[t]++
		}
	}
	for _, t := range order {
		a.TopTags = append(a.TopTags, models.TagCount{Tag: t, Count: counts[t]})
	}
	// stable: equal counts keep first-appearance order
	sort.SliceStable(a.TopTags, func(i, j int) bool {
		return a.TopTags[i].Count > a.TopTags[j].Count
	})
	if len(a.TopTags) > topTagsLimit {
		a.TopTags = a.TopTags[:topTagsLimit]
	}

	for _, n := range notes[:min(len(notes), recentActivityLimit)] {
		a.RecentActivity = append(a.RecentActivity, models.Activity{
			Date:      n.UpdatedAt,
			Action:    "Updated",
			NoteTitle: n.DisplayTitle(),
		})
	}

	for _, n := range notes[:min(len(notes), recentNotesLimit)] {
		a.RecentNotes = append(a.RecentNotes, n.Clone())
	}

	return a
}

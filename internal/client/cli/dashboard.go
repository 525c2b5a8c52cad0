package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/services"
)

const popularTagsLimit = 20

func (a *App) Tags(_ context.Context, _ []string) error {
	tags := a.store.PopularTags(popularTagsLimit)
	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No tags yet")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(tags, ", "))
	return nil
}

// Dashboard prints the analytics summary of the whole collection.
func (a *App) Dashboard(_ context.Context, _ []string) error {
	stats := services.ComputeAnalytics(a.store.Notes(), a.now())

	fmt.Fprintf(a.out, "Welcome back, %s\n\n", a.user.Name)
	fmt.Fprintf(a.out, "Total notes:     %d\n", stats.TotalNotes)
	fmt.Fprintf(a.out, "Created this week: %d\n", stats.NotesThisWeek)
	fmt.Fprintf(a.out, "Tags in use:     %d\n", len(stats.TopTags))

	if len(stats.TopTags) > 0 {
		fmt.Fprintln(a.out, "\nTop tags:")
		for _, tc := range stats.TopTags {
			fmt.Fprintf(a.out, "  %-20s %d\n", tc.Tag, tc.Count)
		}
	}

	if len(stats.RecentActivity) > 0 {
		fmt.Fprintln(a.out, "\nRecent activity:")
		for _, act := range stats.RecentActivity {
			fmt.Fprintf(a.out, "  %s  %s %q\n", act.Date.Local().Format(timeLayout), act.Action, act.NoteTitle)
		}
	}

	if len(stats.RecentNotes) > 0 {
		fmt.Fprintln(a.out, "\nRecent notes:")
		printNotes(a.out, stats.RecentNotes)
	}
	return nil
}

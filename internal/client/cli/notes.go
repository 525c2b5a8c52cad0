package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// clearValue erases an optional field while editing.
const clearValue = "-"

var errUsage = errors.New("usage")

// New creates a note. Words after the command become the title; the rest
// is prompted for.
func (a *App) New(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		if title, err = GetSimpleText(a.reader, "-Title", a.out); err != nil {
			return err
		}
	}

	content, err := GetMultiline(a.reader, "-Content (markdown)", a.out)
	if err != nil {
		return err
	}

	tags, err := GetSimpleText(a.reader, "-Tags (comma separated)", a.out)
	if err != nil {
		return err
	}

	folder, err := a.askFolder("-Folder (blank for none)", "")
	if err != nil {
		return err
	}

	n, err := a.store.SaveDraft(ctx, "", a.user.ID, models.Draft{
		Title:    title,
		Content:  content,
		Tags:     ParseTags(tags),
		FolderID: folder,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created note %s: %s\n", shortID(n.ID), n.DisplayTitle())
	return nil
}

// Edit walks through the fields of a note; blank answers keep the current
// value and "-" clears tags or folder.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: edit <id>", errUsage)
	}
	n, err := a.resolveNote(args[0])
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("-Title [%s]", n.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = n.Title
	}

	content, err := GetMultiline(a.reader, "-Content (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = n.Content
	}

	tagsIn, err := GetSimpleText(a.reader, fmt.Sprintf("-Tags [%s]", strings.Join(n.Tags, ", ")), a.out)
	if err != nil {
		return err
	}
	tags := n.Tags
	switch tagsIn {
	case "":
	case clearValue:
		tags = nil
	default:
		tags = ParseTags(tagsIn)
	}

	folder, err := a.askFolder(fmt.Sprintf("-Folder [%s]", a.folderName(n.FolderID)), n.FolderID)
	if err != nil {
		return err
	}

	saved, err := a.store.SaveDraft(ctx, n.ID, a.user.ID, models.Draft{
		Title:    title,
		Content:  content,
		Tags:     tags,
		FolderID: folder,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved note %s\n", shortID(saved.ID))
	return nil
}

// askFolder prompts for a folder; blank keeps current, "-" clears.
func (a *App) askFolder(prompt, current string) (string, error) {
	in, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	switch in {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	}
	f, err := a.resolveFolder(in)
	if err != nil {
		return "", err
	}
	return f.ID, nil
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: show <id>", errUsage)
	}
	n, err := a.resolveNote(args[0])
	if err != nil {
		return err
	}
	a.printNote(n)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	n, err := a.resolveNote(args[0])
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("-Delete %q?", n.DisplayTitle()), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if _, err := a.store.DeleteNote(ctx, n.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted note %s\n", shortID(n.ID))
	return nil
}

// List prints every note, or only those of the folder named by the argument.
func (a *App) List(_ context.Context, args []string) error {
	if len(args) == 0 {
		printNotes(a.out, a.store.Notes())
		return nil
	}

	f, err := a.resolveFolder(strings.Join(args, " "))
	if err != nil {
		return err
	}
	printNotes(a.out, a.store.NotesInFolder(f.ID))
	return nil
}

// Search matches the remaining words against notes. --content and --tags
// narrow the fields searched.
func (a *App) Search(_ context.Context, args []string) error {
	scope := models.ScopeAll
	var words []string
	for _, arg := range args {
		switch arg {
		case "--content":
			scope = models.ScopeContent
		case "--tags":
			scope = models.ScopeTags
		default:
			words = append(words, arg)
		}
	}

	results := a.store.Search(strings.Join(words, " "), scope)
	printNotes(a.out, results)
	fmt.Fprintf(a.out, "%d result(s)\n", len(results))
	return nil
}

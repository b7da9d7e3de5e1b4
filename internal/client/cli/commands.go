package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/draftkeeper/internal/client/display"
	"github.com/dmitrijs2005/draftkeeper/internal/client/uploads"
	"github.com/dmitrijs2005/draftkeeper/internal/filex"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"
)

func (a *App) Set(ctx context.Context, name, value string) error {
	return a.form.Set(ctx, name, value)
}

// Fill reads name=value lines until an empty one and stores them together.
func (a *App) Fill(ctx context.Context) error {
	lines, err := GetAssignments(a.reader, a.out)
	if err != nil {
		return err
	}
	values, err := ParseAssignments(lines)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	if err := a.form.SetMany(ctx, values); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Stored %d fields", len(values)))
	return nil
}

func (a *App) Text(ctx context.Context, name string) error {
	value, err := GetMultiline(a.reader, "Enter value for "+name, a.out)
	if err != nil {
		return err
	}
	return a.form.Set(ctx, name, value)
}

func (a *App) Unset(ctx context.Context, name string) error {
	return a.form.Unset(ctx, name)
}

func (a *App) Fields(ctx context.Context) error {
	list, err := a.form.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No fields stored")
		return nil
	}
	for _, f := range list {
		printlnFn(fmt.Sprintf("%-24s %s", f.Name, preview(f.Value)))
	}
	return nil
}

func (a *App) Focus() { a.scheduler.OnFocus() }

func (a *App) Blur() { a.scheduler.OnBlur() }

// Save saves right away. The outcome is rendered through the board.
func (a *App) Save(ctx context.Context, submit, force bool) error {
	_, err := a.scheduler.TriggerSave(ctx, submit, force)
	return err
}

func (a *App) Upload(ctx context.Context, field, path string) error {
	f, name, err := filex.OpenForUpload(path)
	if err != nil {
		return err
	}
	if err := a.uploads.HandleFileChanged(ctx, field, uploads.Selection{Name: name, Content: f}); err != nil {
		_ = f.Close()
		return err
	}
	return nil
}

func (a *App) Remove(ctx context.Context, field string) error {
	return a.uploads.RemoveFile(ctx, field)
}

func (a *App) Files() {
	for _, field := range a.uploads.Fields() {
		st, _ := a.uploads.State(field)
		text := "-"
		if st.DisplayHTML != "" {
			text = display.PlainText(st.DisplayHTML)
		}
		printlnFn(fmt.Sprintf("%-24s %-22s %s", field, st.Status, text))
	}
}

func (a *App) Status() {
	st := a.scheduler.State()
	saved := "never"
	if !st.LastSavedAt.IsZero() {
		saved = timex.FormatSavedAt(st.LastSavedAt)
	}

	printlnFn(fmt.Sprintf("draft:     %s %d (submit id %d)", a.draft.Kind, a.draft.DraftID, a.draft.SubmitID))
	printlnFn(fmt.Sprintf("autosave:  %s, waiting for %s", st.Phase, a.scheduler.Listening()))
	if st.Stopped {
		printlnFn("           stopped")
	}
	if st.PendingConflict {
		printlnFn("conflict:  another session saved this draft, use 'force'")
	}
	printlnFn(fmt.Sprintf("saved:     %s", saved))
	if html := a.board.HTML(display.LastSavedID); html != "" {
		printlnFn(fmt.Sprintf("message:   %s", display.PlainText(html)))
	}
	if busy, field := a.uploads.Busy(); busy {
		printlnFn(fmt.Sprintf("uploading: %s", field))
	}
}

// ResetID replaces the stored editing session id. The running session
// keeps the id it started with.
func (a *App) ResetID(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Start a new session id on next start? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return nil
	}
	id, err := a.identity.Reset(ctx)
	if err != nil {
		return err
	}
	printlnFn("New session id:", id)
	return nil
}

// preview shortens a value to its first line.
func preview(v string) string {
	const limit = 60
	first, _, multi := strings.Cut(v, "\n")
	if r := []rune(first); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	if multi {
		return first + " ..."
	}
	return first
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	err   error
	after func(call string)
}

func (f *fakeExec) record(format string, args ...any) error {
	call := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, call)
	if f.after != nil {
		f.after(call)
	}
	return f.err
}

func (f *fakeExec) Set(ctx context.Context, name, value string) error {
	return f.record("set %s=%s", name, value)
}
func (f *fakeExec) Fill(ctx context.Context) error { return f.record("fill") }
func (f *fakeExec) Text(ctx context.Context, name string) error {
	return f.record("text %s", name)
}
func (f *fakeExec) Unset(ctx context.Context, name string) error {
	return f.record("unset %s", name)
}
func (f *fakeExec) Fields(ctx context.Context) error { return f.record("fields") }
func (f *fakeExec) Focus()                           { _ = f.record("focus") }
func (f *fakeExec) Blur()                            { _ = f.record("blur") }
func (f *fakeExec) Save(ctx context.Context, submit, force bool) error {
	return f.record("save submit=%t force=%t", submit, force)
}
func (f *fakeExec) Upload(ctx context.Context, field, path string) error {
	return f.record("upload %s %s", field, path)
}
func (f *fakeExec) Remove(ctx context.Context, field string) error {
	return f.record("remove %s", field)
}
func (f *fakeExec) Files()                            { _ = f.record("files") }
func (f *fakeExec) Status()                           { _ = f.record("status") }
func (f *fakeExec) ResetID(ctx context.Context) error { return f.record("reset-id") }

// capturePrintln replaces printlnFn for the test and returns what was printed.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := rdr(strings.Join([]string{
		"help",
		"set project_title  Community   garden ",
		"fill",
		"text narrative",
		"unset budget_notes",
		"fields",
		"blur",
		"focus",
		"save",
		"submit",
		"force",
		"force submit",
		"upload photo1 /tmp/my photo.png",
		"remove photo1",
		"files",
		"status",
		"reset-id",
		"",
		"exit",
		"save",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, nil, input)

	assert.Equal(t, []string{
		"set project_title=Community   garden",
		"fill",
		"text narrative",
		"unset budget_notes",
		"fields",
		"blur",
		"focus",
		"save submit=false force=false",
		"save submit=true force=false",
		"save submit=false force=true",
		"save submit=true force=true",
		"upload photo1 /tmp/my photo.png",
		"remove photo1",
		"files",
		"status",
		"reset-id",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	lines := capturePrintln(t)

	input := rdr("set\nupload photo1\nremove\nfrobnicate\nquit\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "(active)" }, input)

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: set <field> <value>")
	assert.Contains(t, *lines, "Usage: upload <field> <path>")
	assert.Contains(t, *lines, "Unknown command: frobnicate")
	assert.Contains(t, *lines, "dk> (active) > ")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, nil, rdr("save"))

	require.Equal(t, []string{"save submit=false force=false"}, exec.calls)
	assert.Equal(t, []string{"Error: boom"}, *lines)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, nil, rdr("save\n"))
	assert.Empty(t, exec.calls)
}

func TestCutWord(t *testing.T) {
	tests := []struct {
		in, word, rest string
	}{
		{"", "", ""},
		{"  save  ", "save", ""},
		{"set title  A  B ", "set", "title  A  B"},
		{"upload\tphoto1 a.png", "upload", "photo1 a.png"},
	}
	for _, tc := range tests {
		w, r := cutWord(tc.in)
		assert.Equal(t, tc.word, w, tc.in)
		assert.Equal(t, tc.rest, r, tc.in)
	}
}

func TestRunREPL_StopsWhenCommandEndsSession(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exec := &fakeExec{after: func(call string) {
		if strings.HasPrefix(call, "save submit=true") {
			cancel()
		}
	}}
	runREPL(ctx, exec, nil, rdr("submit\nset title Garden\nfields\n"))

	assert.Equal(t, []string{"save submit=true force=false"}, exec.calls)
}

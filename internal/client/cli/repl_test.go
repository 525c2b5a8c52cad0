package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Logout(_ context.Context, args []string) error {
	f.loggedIn = false
	return f.record("logout", args)
}
func (f *fakeExec) Whoami(_ context.Context, a []string) error    { return f.record("whoami", a) }
func (f *fakeExec) New(_ context.Context, a []string) error       { return f.record("new", a) }
func (f *fakeExec) Edit(_ context.Context, a []string) error      { return f.record("edit", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error      { return f.record("show", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error    { return f.record("delete", a) }
func (f *fakeExec) List(_ context.Context, a []string) error      { return f.record("list", a) }
func (f *fakeExec) Search(_ context.Context, a []string) error    { return f.record("search", a) }
func (f *fakeExec) Folders(_ context.Context, a []string) error   { return f.record("folders", a) }
func (f *fakeExec) MkFolder(_ context.Context, a []string) error  { return f.record("mkfolder", a) }
func (f *fakeExec) RmFolder(_ context.Context, a []string) error  { return f.record("rmfolder", a) }
func (f *fakeExec) Tags(_ context.Context, a []string) error      { return f.record("tags", a) }
func (f *fakeExec) Dashboard(_ context.Context, a []string) error { return f.record("dashboard", a) }
func (f *fakeExec) Export(_ context.Context, a []string) error    { return f.record("export", a) }
func (f *fakeExec) Import(_ context.Context, a []string) error    { return f.record("import", a) }
func (f *fakeExec) Version(_ context.Context, a []string) error   { return f.record("version", a) }

// capturePrintln replaces printlnFn and returns the printed lines.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)

	input := rdr(strings.Join([]string{
		"help",
		"new",
		"login alice@example.com",
		"help",
		"new Trip Plan",
		"l",
		"search --tags travel",
		"show 1234",
		"",
		"foobar",
		"logout",
		"tags",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, input)

	assert.Equal(t, []string{"login", "new", "list", "search", "show", "logout"}, exec.calls)
	assert.Equal(t, []string{"alice@example.com"}, exec.args[0])
	assert.Equal(t, []string{"Trip", "Plan"}, exec.args[1])
	assert.Equal(t, []string{"--tags", "travel"}, exec.args[3])

	assert.Contains(t, *out, "gn (status) > ")
	assert.Contains(t, *out, helpGuest)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_GuestCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("version\ndashboard\nexport\n"))

	assert.Equal(t, []string{"version"}, exec.calls)
}

func TestRunREPL_ErrorsArePrinted(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failWith: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list\nquit\n"))

	assert.Equal(t, []string{"list"}, exec.calls)
	assert.Contains(t, *out, "error: boom")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("tags\ndashboard"))

	assert.Equal(t, []string{"tags", "dashboard"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\n"))

	assert.Empty(t, exec.calls)
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Folders(ctx context.Context, args []string) error
	MkFolder(ctx context.Context, args []string) error
	RmFolder(ctx context.Context, args []string) error
	Tags(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Version(ctx context.Context, args []string) error
}

const (
	helpGuest    = "Available commands: login, version, help, exit"
	helpLoggedIn = "Available commands: new, edit, show, delete, (l)ist [folder], search [--content|--tags] <query>, " +
		"folders, mkfolder <name> [#color], rmfolder <folder>, tags, dashboard, export [dir], import <dir>, " +
		"whoami, logout, version, exit"
)

// runREPL starts a simple read–eval–print loop for the gophnotes CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to the matching method on a. The loop exits on
// EOF, when ctx is cancelled, or when the user types "exit" or "quit".
//
// Note commands require a signed-in user; a guest is asked to log in first.
// Handler errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gn %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			if ctx.Err() == nil {
				printlnFn("error:", err)
			}
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if done := dispatch(ctx, a, cmd, args); done || eof {
			return
		}
	}
}

// dispatch runs one command and reports whether the REPL should stop.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	var handler func(context.Context, []string) error

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpGuest)
		}
		return false

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	case "login":
		handler = a.Login
	case "version":
		handler = a.Version
	case "logout":
		handler = a.Logout
	case "whoami":
		handler = a.Whoami
	case "new":
		handler = a.New
	case "edit":
		handler = a.Edit
	case "show":
		handler = a.Show
	case "delete", "rm":
		handler = a.Delete
	case "l", "list":
		handler = a.List
	case "search", "s":
		handler = a.Search
	case "folders":
		handler = a.Folders
	case "mkfolder":
		handler = a.MkFolder
	case "rmfolder":
		handler = a.RmFolder
	case "tags":
		handler = a.Tags
	case "dashboard":
		handler = a.Dashboard
	case "export":
		handler = a.Export
	case "import":
		handler = a.Import

	default:
		printlnFn("Unknown command:", cmd)
		return false
	}

	if !a.isLoggedIn() && !guestAllowed(cmd) {
		printlnFn("Please login first")
		return false
	}

	if err := handler(ctx, args); err != nil {
		printlnFn("error:", err)
	}
	return false
}

func guestAllowed(cmd string) bool {
	switch cmd {
	case "login", "version":
		return true
	}
	return false
}

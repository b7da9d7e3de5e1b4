package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Set(ctx context.Context, name, value string) error
	Fill(ctx context.Context) error
	Text(ctx context.Context, name string) error
	Unset(ctx context.Context, name string) error
	Fields(ctx context.Context) error
	Focus()
	Blur()
	Save(ctx context.Context, submit, force bool) error
	Upload(ctx context.Context, field, path string) error
	Remove(ctx context.Context, field string) error
	Files()
	Status()
	ResetID(ctx context.Context) error
}

const helpText = `Available commands:
  set <field> <value>   store a field value
  fill                  enter several field=value lines at once
  text <field>          enter a multi-line value
  unset <field>         drop a field
  fields                list stored fields
  focus | blur          tell autosave the editor gained or lost attention
  save                  save now
  submit                save and submit the draft
  force [submit]        overwrite a save made from another session
  upload <field> <path> upload a file
  remove <field>        remove an uploaded file
  files                 show file fields
  status                show autosave state
  reset-id              start a new editing session id on next start
  exit | quit           leave the program`

// runREPL starts a simple read-eval-print loop for the draft editor.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and command errors are
// reported back to the user. The loop exits on EOF, when ctx is cancelled
// or when the user types "exit" or "quit".
//
// A prompt showing statusFn() is printed before each line unless statusFn
// is nil.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		if statusFn != nil {
			printlnFn(fmt.Sprintf("dk> %s > ", statusFn()))
		}

		line, readErr := reader.ReadString('\n')
		if ctx.Err() != nil {
			return
		}
		if quit := dispatch(ctx, a, line); quit {
			return
		}
		if readErr != nil {
			return
		}
	}
}

// dispatch runs one command line and reports whether the REPL should end.
func dispatch(ctx context.Context, a execIface, line string) bool {
	cmd, rest := cutWord(line)
	if cmd == "" {
		return false
	}
	arg, tail := cutWord(rest)

	var err error
	switch cmd {
	case "help":
		printlnFn(helpText)

	case "set":
		if arg == "" {
			printlnFn("Usage: set <field> <value>")
			return false
		}
		err = a.Set(ctx, arg, tail)

	case "fill":
		err = a.Fill(ctx)

	case "text":
		if arg == "" {
			printlnFn("Usage: text <field>")
			return false
		}
		err = a.Text(ctx, arg)

	case "unset":
		if arg == "" {
			printlnFn("Usage: unset <field>")
			return false
		}
		err = a.Unset(ctx, arg)

	case "fields":
		err = a.Fields(ctx)

	case "focus":
		a.Focus()

	case "blur":
		a.Blur()

	case "save":
		err = a.Save(ctx, false, false)

	case "submit":
		err = a.Save(ctx, true, false)

	case "force":
		err = a.Save(ctx, arg == "submit", true)

	case "upload":
		if arg == "" || tail == "" {
			printlnFn("Usage: upload <field> <path>")
			return false
		}
		err = a.Upload(ctx, arg, tail)

	case "remove":
		if arg == "" {
			printlnFn("Usage: remove <field>")
			return false
		}
		err = a.Remove(ctx, arg)

	case "files":
		a.Files()

	case "status":
		a.Status()

	case "reset-id":
		err = a.ResetID(ctx)

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	if err != nil {
		printlnFn("Error:", err)
	}
	return false
}

// cutWord splits off the first whitespace-separated word of s. The rest is
// returned with surrounding whitespace trimmed but inner spacing intact.
func cutWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

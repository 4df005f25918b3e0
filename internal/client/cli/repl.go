package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	WhoAmI(ctx context.Context) error
	SetName(ctx context.Context, name string) error
	Admin(ctx context.Context, secret string) error
	Recover(ctx context.Context, code string) error
	Nickname(ctx context.Context, nickname string) error
	Project(ctx context.Context, id string) error
	Theme(ctx context.Context, name string) error
	Open(ctx context.Context, path string) error
	Routes(ctx context.Context) error
	Get(ctx context.Context, key string) error
	Put(ctx context.Context, key, value string) error
	Validate(ctx context.Context, kind, value string) error
	Kanban(ctx context.Context) error
	Projects(ctx context.Context) error
	Local(ctx context.Context) error
	Forget(ctx context.Context, all bool) error

	// PromptLine and PromptSecret ask the user for input. They read from
	// the same source as the REPL itself.
	PromptLine(prompt string) (string, error)
	PromptSecret(prompt string) (string, error)
}

const helpText = `Available commands:
  whoami                       show client id and persona
  name <name>                  set the persona name
  admin                        activate admin with a secret
  recover [code]               recover a persona from its code
  nickname <nickname>          set the display nickname
  project <id|->               select (or clear) the active project
  theme <auto|light|dark>      change the theme
  open <path|name>             render the view for a route, e.g. open /kanban
  routes                       list the route table
  get <key>                    show a stored value
  put <key> <json>             store a value
  validate <schema> <json>     check json against projects, kanban or a named schema
  kanban | projects            show the board or the project list
  local                        list client-local storage
  forget [all]                 drop the client id, or all local storage
  help | exit`

// lineReader returns a function yielding one line of r per call, without
// the trailing newline. A final line with no newline is still returned;
// the call after it reports io.EOF.
func lineReader(r *bufio.Reader) func() (string, error) {
	return func() (string, error) {
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// runREPL reads lines with readLine, parses the first token as the command
// and dispatches to a. The loop exits when readLine fails (EOF included) or
// when the user types "exit" or "quit".
//
// Input a command asks for is collected first. Only then does the command
// start, under its own timeout. Errors returned by command handlers are
// reported and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, readLine func() (string, error), timeout time.Duration) {
	for {
		printlnFn(fmt.Sprintf("flow %s> ", statusFn()))
		line, err := readLine()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		rest, err = collectInput(a, cmd, rest)
		if err != nil {
			printlnFn("Error:", err)
			continue
		}

		cctx, cancel := context.WithTimeout(ctx, timeout)
		err = dispatch(cctx, a, cmd, rest)
		cancel()

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

// collectInput prompts for what admin and recover need when it was not
// given on the command line.
func collectInput(a execIface, cmd, rest string) (string, error) {
	switch {
	case cmd == "admin":
		return a.PromptSecret("Admin secret")
	case cmd == "recover" && rest == "":
		return a.PromptLine("Recovery code")
	}
	return rest, nil
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

func dispatch(ctx context.Context, a execIface, cmd, rest string) error {
	switch cmd {
	case "help":
		printlnFn(helpText)
		return nil
	case "whoami":
		return a.WhoAmI(ctx)
	case "name":
		if rest == "" {
			return usageError("name <name>")
		}
		return a.SetName(ctx, rest)
	case "admin":
		return a.Admin(ctx, rest)
	case "recover":
		if rest == "" {
			return usageError("a recovery code is required")
		}
		return a.Recover(ctx, rest)
	case "nickname":
		if rest == "" {
			return usageError("nickname <nickname>")
		}
		return a.Nickname(ctx, rest)
	case "project":
		if rest == "" {
			return usageError("project <id|->")
		}
		return a.Project(ctx, rest)
	case "theme":
		if rest == "" {
			return usageError("theme <auto|light|dark>")
		}
		return a.Theme(ctx, rest)
	case "open":
		if rest == "" {
			return usageError("open <path>")
		}
		return a.Open(ctx, rest)
	case "routes":
		return a.Routes(ctx)
	case "get":
		if rest == "" {
			return usageError("get <key>")
		}
		return a.Get(ctx, rest)
	case "put":
		key, value, ok := strings.Cut(rest, " ")
		if !ok || key == "" || strings.TrimSpace(value) == "" {
			return usageError("put <key> <json>")
		}
		return a.Put(ctx, key, strings.TrimSpace(value))
	case "validate":
		kind, value, ok := strings.Cut(rest, " ")
		if !ok || strings.TrimSpace(value) == "" {
			return usageError("validate <schema> <json>")
		}
		return a.Validate(ctx, kind, strings.TrimSpace(value))
	case "kanban":
		return a.Kanban(ctx)
	case "projects":
		return a.Projects(ctx)
	case "local":
		return a.Local(ctx)
	case "forget":
		if rest != "" && rest != "all" {
			return usageError("forget [all]")
		}
		return a.Forget(ctx, rest == "all")
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errUsage = errors.New("usage")

// command is one REPL verb. auth commands need a session, guest commands
// need its absence, and a non-empty roles list restricts the command to those
// account roles.
type command struct {
	usage string
	help  string
	auth  bool
	guest bool
	roles []models.Role
	run   func(ctx context.Context, args []string) error
}

// execIface is the minimal surface the REPL needs. The real App satisfies
// it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	role() models.Role
	lookup(name string) (command, bool)
	helpText() string
}

// runREPL reads one line at a time from reader, parses the first token as
// the command and dispatches it. Errors are printed and the loop continues.
// The loop exits on EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tailorhub (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		switch name {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printlnFn(a.helpText())
			continue
		}

		cmd, ok := a.lookup(name)
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if cmd.auth && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}
		if cmd.guest && a.isLoggedIn() {
			printlnFn("You are already logged in. Use 'logout' first.")
			continue
		}
		if len(cmd.roles) > 0 && !hasRole(cmd.roles, a.role()) {
			printlnFn(fmt.Sprintf("'%s' is not available for %s accounts.", name, a.role()))
			continue
		}

		if err := cmd.run(ctx, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn("Usage:", cmd.usage)
			} else {
				printlnFn("Error:", client.ErrorMessage(err))
			}
		}
	}
}

func hasRole(roles []models.Role, r models.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

func (a *App) lookup(name string) (command, bool) {
	c, ok := a.commands[name]
	return c, ok
}

func (a *App) role() models.Role {
	u, _ := a.currentUser()
	return u.Role
}

// helpText lists the commands usable in the current session.
func (a *App) helpText() string {
	loggedIn := a.isLoggedIn()
	role := a.role()

	names := make([]string, 0, len(a.commands))
	for name, c := range a.commands {
		if (c.auth && !loggedIn) || (c.guest && loggedIn) {
			continue
		}
		if len(c.roles) > 0 && !hasRole(c.roles, role) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		c := a.commands[name]
		fmt.Fprintf(&b, "  %-34s %s\n", c.usage, c.help)
	}
	b.WriteString("  exit                               leave the program")
	return b.String()
}

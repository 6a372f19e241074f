package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/hwidgate/internal/client/gate"
)

// printlnFn is a test seam for REPL output. When nil, output goes to the
// writer given to runREPL. In tests, replace it with a stub.
var printlnFn func(a ...any) (int, error)

func replPrinter(w io.Writer) func(a ...any) {
	if fn := printlnFn; fn != nil {
		return func(a ...any) { _, _ = fn(a...) }
	}
	return func(a ...any) { _, _ = fmt.Fprintln(w, a...) }
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() gate.View
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	Subscription(ctx context.Context) error
	Banned(ctx context.Context) error
	Checkout(ctx context.Context, args []string) error
	PaymentSuccess(ctx context.Context, args []string) error
	PaymentCancel(ctx context.Context) error
	Ban(ctx context.Context) error
}

var viewCommands = map[gate.View][]string{
	gate.ShowAuthForm:   {"register", "login"},
	gate.ShowVerifying:  {"status", "logout"},
	gate.ShowAuthorized: {"status", "profile", "subscription", "banned", "checkout", "payment-success", "payment-cancel", "ban", "logout"},
}

func allowed(v gate.View, cmd string) bool {
	for _, c := range viewCommands[v] {
		if c == cmd {
			return true
		}
	}
	return false
}

func helpText(v gate.View) string {
	cmds := append([]string{}, viewCommands[v]...)
	cmds = append(cmds, "help", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts a read–eval–print loop over reader.
//
// The first token of each line is the command. Commands are checked against
// the view returned by a.view() before dispatch; a command that the current
// view does not offer is refused without calling into a. The loop exits on
// end of input or when the user types "exit" or "quit".
//
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	printLine := replPrinter(w)
	for {
		printLine(fmt.Sprintf("hwid (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printLine(helpText(a.view()))
			continue
		case "exit", "quit":
			printLine("Bye!")
			return
		}

		if !allowed(a.view(), cmd) {
			if _, known := commandSet[cmd]; known {
				printLine(fmt.Sprintf("Command %q is not available now", cmd))
			} else {
				printLine("Unknown command:", cmd)
			}
			continue
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printLine("Error:", err.Error())
		}
	}
}

var commandSet = func() map[string]struct{} {
	set := map[string]struct{}{}
	for _, cmds := range viewCommands {
		for _, c := range cmds {
			set[c] = struct{}{}
		}
	}
	return set
}()

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "status":
		return a.Status(ctx)
	case "profile":
		return a.Profile(ctx)
	case "subscription":
		return a.Subscription(ctx)
	case "banned":
		return a.Banned(ctx)
	case "checkout":
		return a.Checkout(ctx, args)
	case "payment-success":
		return a.PaymentSuccess(ctx, args)
	case "payment-cancel":
		return a.PaymentCancel(ctx)
	case "ban":
		return a.Ban(ctx)
	}
	return nil
}

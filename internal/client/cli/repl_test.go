package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hwidgate/internal/client/gate"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	current gate.View

	calls []string
	args  [][]string
}

func (f *fakeExec) view() gate.View { return f.current }

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeExec) Register(context.Context) error {
	f.current = gate.ShowAuthorized
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.current = gate.ShowAuthorized
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.current = gate.ShowAuthForm
	return f.record("logout")
}
func (f *fakeExec) Status(context.Context) error       { return f.record("status") }
func (f *fakeExec) Profile(context.Context) error      { return f.record("profile") }
func (f *fakeExec) Subscription(context.Context) error { return f.record("subscription") }
func (f *fakeExec) Banned(context.Context) error       { return f.record("banned") }
func (f *fakeExec) Checkout(_ context.Context, args []string) error {
	return f.record("checkout", args...)
}
func (f *fakeExec) PaymentSuccess(_ context.Context, args []string) error {
	return f.record("payment-success", args...)
}
func (f *fakeExec) PaymentCancel(context.Context) error { return f.record("payment-cancel") }
func (f *fakeExec) Ban(context.Context) error           { return fmt.Errorf("ban refused") }

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

func input(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{current: gate.ShowAuthForm}
	in := input(
		"help",
		"profile",
		"login",
		"help",
		"profile",
		"checkout 3",
		"payment-success cs_1",
		"ban",
		"foobar",
		"logout",
		"exit",
		"login",
	)

	runREPL(context.Background(), exec, func() string { return "status" }, in, io.Discard)

	assert.Equal(t, []string{"login", "profile", "checkout", "payment-success", "logout"}, exec.calls)
	assert.Equal(t, []string{"3"}, exec.args[2])
	assert.Equal(t, []string{"cs_1"}, exec.args[3])

	text := strings.Join(*out, "\n")
	assert.Contains(t, text, "Available commands: register, login, help, exit")
	assert.Contains(t, text, `Command "profile" is not available now`)
	assert.Contains(t, text, "Error: ban refused")
	assert.Contains(t, text, "Unknown command: foobar")
	assert.Contains(t, text, "Bye!")
}

func TestRunREPL_VerifyingViewRestrictsCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{current: gate.ShowVerifying}
	runREPL(context.Background(), exec, func() string { return "s" }, input("profile", "ban", "login", "status", "quit"), io.Discard)

	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestRunREPL_EndOfInput(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{current: gate.ShowAuthForm}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("")), io.Discard)

	assert.Empty(t, exec.calls)
}

func TestHelpText(t *testing.T) {
	assert.Equal(t, "Available commands: status, logout, help, exit", helpText(gate.ShowVerifying))
	assert.Contains(t, helpText(gate.ShowAuthorized), "payment-success")
}

func TestRunREPL_WritesToGivenWriter(t *testing.T) {
	var out bytes.Buffer
	exec := &fakeExec{current: gate.ShowAuthForm}

	runREPL(context.Background(), exec, func() string { return "auth" }, input("profile", "nope", "exit"), &out)

	text := out.String()
	assert.Contains(t, text, "hwid (auth)> ")
	assert.Contains(t, text, `Command "profile" is not available now`)
	assert.Contains(t, text, "Unknown command: nope")
	assert.Contains(t, text, "Bye!")
}

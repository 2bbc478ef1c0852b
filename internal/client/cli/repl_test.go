package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) rec(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool                     { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error   { return f.rec("register") }
func (f *fakeExec) WhoAmI(ctx context.Context) error     { return f.rec("whoami") }
func (f *fakeExec) Status(ctx context.Context) error     { return f.rec("status") }
func (f *fakeExec) ResendVerify(ctx context.Context) error {
	return f.rec("resend-verify")
}
func (f *fakeExec) ForgotPassword(ctx context.Context) error {
	return f.rec("forgot-password")
}
func (f *fakeExec) ChangePassword(ctx context.Context) error {
	return f.rec("change-password")
}
func (f *fakeExec) ChangeName(ctx context.Context) error    { return f.rec("change-name") }
func (f *fakeExec) PaymentStatus(ctx context.Context) error { return f.rec("payment-status") }
func (f *fakeExec) Unsubscribe(ctx context.Context) error   { return f.rec("unsubscribe") }
func (f *fakeExec) Support(ctx context.Context) error       { return f.rec("support") }
func (f *fakeExec) Report(ctx context.Context) error        { return f.rec("report") }
func (f *fakeExec) Verify(ctx context.Context, token string) error {
	return f.rec("verify " + token)
}
func (f *fakeExec) ResetPassword(ctx context.Context, token string) error {
	return f.rec("reset-password " + token)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.rec("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.rec("logout")
}

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

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"whoami",
		"status",
		"",
		"verify abc",
		"resend-verify",
		"forgot-password",
		"reset-password xyz",
		"change-password",
		"change-name",
		"payment-status",
		"unsubscribe",
		"support",
		"report",
		"logout",
		"register",
		"foobar",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "whoami", "status", "verify abc", "resend-verify", "forgot-password",
		"reset-password xyz", "change-password", "change-name", "payment-status",
		"unsubscribe", "support", "report", "logout", "register",
	}, exec.calls)

	assert.Contains(t, *printed, helpLoggedOut)
	assert.Contains(t, *printed, helpLoggedIn)
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "Bye!")
	assert.Contains(t, *printed, "coursehub (status)> ")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	printed := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewReader(strings.NewReader("verify\nreset-password\nquit\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *printed, "Usage: verify <token>")
	assert.Contains(t, *printed, "Usage: reset-password <token>")
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status")))
	assert.Equal(t, []string{"status"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status\n")))
	assert.Empty(t, exec.calls)
}

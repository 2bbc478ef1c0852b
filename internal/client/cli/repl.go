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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Verify(ctx context.Context, token string) error
	ResendVerify(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context, token string) error
	ChangePassword(ctx context.Context) error
	ChangeName(ctx context.Context) error
	PaymentStatus(ctx context.Context) error
	Unsubscribe(ctx context.Context) error
	Support(ctx context.Context) error
	Report(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, verify <token>, resend-verify, " +
		"forgot-password, reset-password <token>, status, support, exit"
	helpLoggedIn = "Available commands: whoami, status, change-name, change-password, " +
		"payment-status, unsubscribe, support, report, resend-verify, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the coursehub CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; the notifier
// and the handlers report outcomes themselves.
//
// Command handlers prompt through the same reader, so input is never
// buffered past the current line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("coursehub %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "status":
			_ = a.Status(ctx)

		case "verify":
			if len(args) == 0 {
				printlnFn("Usage: verify <token>")
				continue
			}
			_ = a.Verify(ctx, args[0])
		case "resend-verify":
			_ = a.ResendVerify(ctx)
		case "forgot-password":
			_ = a.ForgotPassword(ctx)
		case "reset-password":
			if len(args) == 0 {
				printlnFn("Usage: reset-password <token>")
				continue
			}
			_ = a.ResetPassword(ctx, args[0])
		case "change-password":
			_ = a.ChangePassword(ctx)
		case "change-name":
			_ = a.ChangeName(ctx)
		case "payment-status":
			_ = a.PaymentStatus(ctx)
		case "unsubscribe":
			_ = a.Unsubscribe(ctx)
		case "support":
			_ = a.Support(ctx)
		case "report":
			_ = a.Report(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

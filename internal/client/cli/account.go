package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/state"
)

// The actions below are silent in the notifier, so the commands print
// their own outcome.

func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.state.Snapshot()
	if !snap.IsLoggedIn() {
		a.printf("Not logged in\n")
		return nil
	}
	u := snap.User
	a.printf("Name:         %s\n", u.Name)
	a.printf("Email:        %s\n", u.Email)
	a.printf("Role:         %s\n", u.Role)
	a.printf("Subscription: %s\n", snap.SubscriptionTier())
	a.printf("Verified:     %t\n", u.Verified)
	return nil
}

// Status prints connectivity, session and the last failure, if any.
func (a *App) Status(ctx context.Context) error {
	snap := a.state.Snapshot()
	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	a.printf("Mode:         %s\n", mode)
	a.printf("Logged in:    %t\n", snap.IsLoggedIn())
	if snap.IsLoggedIn() {
		a.printf("Admin:        %t\n", snap.IsAdmin())
		a.printf("Subscription: %s\n", snap.SubscriptionTier())
	}
	if a.credential != nil {
		if exp := a.credential.ExpiresAt(); !exp.IsZero() {
			a.printf("Session ends: %s\n", exp.Local().Format(time.RFC1123))
		}
	}
	if f := snap.LastError; f != nil {
		a.printf("Last failure: %s (%s)\n", f.Message, f.Action)
	}
	return nil
}

func (a *App) ChangeName(ctx context.Context) error {
	name, err := a.ask("Enter new name")
	if err != nil {
		return err
	}
	if err := a.authService.ChangeName(ctx, models.ChangeNameRequest{Name: name}); err != nil {
		return err
	}
	if u := a.state.Snapshot().User; u != nil {
		a.printf("Name changed to %s\n", u.Name)
	}
	return nil
}

func (a *App) PaymentStatus(ctx context.Context) error {
	resp, err := a.authService.CheckPaymentStatus(ctx)
	if err != nil {
		a.printFailure(state.ActionCheckPaymentStatus)
		return err
	}
	if resp != nil && resp.Message != "" {
		a.printf("%s\n", resp.Message)
	}
	a.printf("Subscription: %s\n", a.state.Snapshot().SubscriptionTier())
	return nil
}

func (a *App) Unsubscribe(ctx context.Context) error {
	reason, err := a.ask("Why are you unsubscribing?")
	if err != nil {
		return err
	}
	if err := a.authService.Unsubscribe(ctx, models.UnsubscribeRequest{Reason: reason}); err != nil {
		a.printFailure(state.ActionUnsubscribe)
		return err
	}
	a.printf("Unsubscribed. Subscription: %s\n", a.state.Snapshot().SubscriptionTier())
	return nil
}

// Support shows the support contact details.
func (a *App) Support(ctx context.Context) error {
	resp, err := a.authService.CallSupport(ctx)
	if err != nil {
		a.printFailure(state.ActionCallSupport)
		return err
	}
	a.printSupport(resp)
	return nil
}

// Report sends a free-form problem report to support.
func (a *App) Report(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Describe the problem", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		a.printf("%s\n", errEmptyInput)
		return errEmptyInput
	}
	resp, err := a.authService.ReportSupport(ctx, models.ReportRequest{Report: text})
	if err != nil {
		a.printFailure(state.ActionReportSupport)
		return err
	}
	if resp == nil || resp.Message == "" {
		a.printf("Report sent\n")
		return nil
	}
	a.printSupport(resp)
	return nil
}

func (a *App) printSupport(resp *models.SupportResponse) {
	switch {
	case resp == nil:
	case resp.Message != "":
		a.printf("%s\n", resp.Message)
	case len(resp.Data) > 0:
		a.printf("%s\n", resp.Data)
	}
}

func (a *App) printFailure(action state.Action) {
	if f := a.state.Snapshot().LastError; f != nil && f.Action == action {
		a.printf("Failed: %s\n", f.Message)
	}
}

package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errEmptyInput = errors.New("input must not be empty")

func (a *App) ask(prompt string) (string, error) {
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		a.printf("%s\n", errEmptyInput)
		return "", errEmptyInput
	}
	return v, nil
}

// askSecret reads a secret and returns it as a string; the raw bytes are
// wiped before returning.
func (a *App) askSecret(prompt string) (string, error) {
	b, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	if len(b) == 0 {
		a.printf("%s\n", errEmptyInput)
		return "", errEmptyInput
	}
	return string(b), nil
}

// Register prompts for name, email and password and signs the user up.
// Success and failure are reported by the notifier.
func (a *App) Register(ctx context.Context) error {
	name, err := a.ask("Enter name")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Enter password")
	if err != nil {
		return err
	}

	if _, err := a.authService.SignUp(ctx, models.RegisterRequest{Name: name, Email: email, Password: password}); err != nil {
		return err
	}
	a.printf("Check %s for the verification link, then run: verify <token>\n", email)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askSecret("Enter password")
	if err != nil {
		return err
	}

	_, err = a.authService.SignIn(ctx, models.LoginRequest{Email: email, Password: password})
	return err
}

func (a *App) Logout(ctx context.Context) error {
	return a.authService.SignOut(ctx)
}

// Verify confirms the email address with the token from the verification
// link and signs in.
func (a *App) Verify(ctx context.Context, token string) error {
	_, err := a.authService.VerifyUser(ctx, token)
	return err
}

// ResendVerify asks for another verification email.
func (a *App) ResendVerify(ctx context.Context) error {
	email, err := a.emailOrAsk()
	if err != nil {
		return err
	}
	return a.authService.ResendVerifyUser(ctx, models.EmailRequest{Email: email})
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := a.emailOrAsk()
	if err != nil {
		return err
	}
	return a.authService.ForgotPassword(ctx, models.EmailRequest{Email: email})
}

// ResetPassword sets a new password with the token from the reset email.
func (a *App) ResetPassword(ctx context.Context, token string) error {
	password, err := a.askSecret("Enter new password")
	if err != nil {
		return err
	}
	return a.authService.SetNewPassword(ctx, models.NewPasswordRequest{Token: token, Password: password})
}

func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := a.askSecret("Enter current password")
	if err != nil {
		return err
	}
	newPassword, err := a.askSecret("Enter new password")
	if err != nil {
		return err
	}
	return a.authService.ChangePassword(ctx, models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
}

// emailOrAsk uses the signed-in user's email, prompting when there is none.
func (a *App) emailOrAsk() (string, error) {
	if snap := a.state.Snapshot(); snap.IsLoggedIn() && snap.User.Email != "" {
		return snap.User.Email, nil
	}
	return a.ask("Enter email")
}

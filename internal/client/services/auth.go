// Package services contains application services for the coursehub client.
// This file defines the auth action set: one method per auth use case, each
// moving its action through pending and then exactly one of fulfilled or
// rejected in the client auth state.
package services

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/client/diagnostics"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/state"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

// AuthService defines the auth operations available to the CLI.
//
// Contract:
//   - every action returns nil or a *Rejection;
//   - SignIn, VerifyUser and a token-bearing SetNewPassword store the
//     credential before the state changes;
//   - SignOut and a RefreshUser rejected for a dead credential clear the
//     credential and the user together;
//   - Bootstrap restores a persisted credential and refreshes the user.
//
// All methods honor context cancellation.
type AuthService interface {
	SignUp(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	SignIn(ctx context.Context, req models.LoginRequest) (*models.User, error)
	SignOut(ctx context.Context) error
	RefreshUser(ctx context.Context) (*models.User, error)
	VerifyUser(ctx context.Context, verificationToken string) (*models.User, error)
	ResendVerifyUser(ctx context.Context, req models.EmailRequest) error
	SetNewPassword(ctx context.Context, req models.NewPasswordRequest) error
	ForgotPassword(ctx context.Context, req models.EmailRequest) error
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	ChangeName(ctx context.Context, req models.ChangeNameRequest) error
	CheckPaymentStatus(ctx context.Context) (*models.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, req models.UnsubscribeRequest) error
	CallSupport(ctx context.Context) (*models.SupportResponse, error)
	ReportSupport(ctx context.Context, req models.ReportRequest) (*models.SupportResponse, error)

	Bootstrap(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// TokenStore is the credential holder shared with the HTTP client.
type TokenStore interface {
	Token() string
	SetToken(token string)
	DelToken()
	// DelTokenIf removes the credential only while it is still token.
	DelTokenIf(token string) bool
}

// Reporter receives failures worth a diagnostics entry.
type Reporter interface {
	Report(ctx context.Context, ev diagnostics.Event)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, diagnostics.Event) {}

type authService struct {
	api    client.API
	tokens TokenStore
	state  *state.Store
	notify Notifier
	diag   Reporter
	log    logging.Logger
}

// Option configures the auth service built by NewAuthService.
type Option func(*authService)

// WithNotifier routes success and failure texts to n.
func WithNotifier(n Notifier) Option {
	return func(s *authService) { s.notify = n }
}

// WithReporter forwards transport and server failures to r.
func WithReporter(r Reporter) Option {
	return func(s *authService) { s.diag = r }
}

// WithLogger sets the logger for action outcomes.
func WithLogger(l logging.Logger) Option {
	return func(s *authService) { s.log = l }
}

// NewAuthService binds the action set to an API client, the token store
// the client reads from, and the state it drives.
func NewAuthService(api client.API, tokens TokenStore, st *state.Store, opts ...Option) AuthService {
	s := &authService{
		api:    api,
		tokens: tokens,
		state:  st,
		notify: nopNotifier{},
		diag:   nopReporter{},
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// run drives one action through its lifecycle. call returns the action's
// result and the state change it causes.
func run[T any](ctx context.Context, s *authService, action state.Action,
	call func(ctx context.Context) (T, state.Fulfilled, error)) (T, error) {

	s.state.Dispatch(state.Pending{Action: action})
	sent := s.tokens.Token()

	out, change, err := call(ctx)
	if err != nil {
		var zero T
		return zero, s.reject(ctx, action, sent, err)
	}

	change.Action = action
	s.state.Dispatch(change)
	if msg, ok := SuccessText(action); ok {
		s.notify.Success(msg)
	}
	s.log.Debug(ctx, "action fulfilled", "action", action)
	return out, nil
}

// reject settles a failed action. A dead credential is dropped only while
// it is still the one the call was sent with; a newer login survives.
func (s *authService) reject(ctx context.Context, action state.Action, sent string, err error) error {
	rej := Classify(action, err)

	drop := invalidatesSession(rej) && s.tokens.DelTokenIf(sent)
	s.state.Dispatch(state.Rejected{
		Action:       action,
		Failure:      rej.failure(),
		ClearSession: drop,
		Token:        sent,
	})

	if msg, ok := FailureText(rej); ok {
		s.notify.Error(msg)
	}
	if reportable(rej) {
		evType := diagnostics.TypeActionFailed
		if rej.Kind == KindTransport {
			evType = diagnostics.TypeUnavailable
		}
		s.diag.Report(ctx, diagnostics.Event{
			Type:      evType,
			Message:   rej.Message,
			Action:    string(action),
			Status:    rej.Status,
			RequestID: rej.RequestID,
		})
	}

	s.log.Warn(ctx, "action rejected", "action", action, "kind", rej.Kind,
		"status", rej.Status, "message", rej.Message)
	return rej
}

// startSession stores the credential, then describes the state change.
// The token store is written first so any action observing the new
// state already sends the credential. A body without an identity is
// refused before anything is stored.
func (s *authService) startSession(resp *models.AuthResponse) (state.Fulfilled, error) {
	if !resp.HasUser() {
		return state.Fulfilled{}, ErrNoIdentity
	}
	s.tokens.SetToken(resp.Token)
	user := resp.User
	return state.Fulfilled{Effect: state.EffectSetSession, Token: resp.Token, User: &user}, nil
}

func (s *authService) SignUp(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return run(ctx, s, state.ActionSignUp, func(ctx context.Context) (*models.User, state.Fulfilled, error) {
		resp, err := s.api.Register(ctx, req)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		return resp.User.Clone(), state.Fulfilled{}, nil
	})
}

func (s *authService) SignIn(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	return run(ctx, s, state.ActionSignIn, func(ctx context.Context) (*models.User, state.Fulfilled, error) {
		resp, err := s.api.Login(ctx, req)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		if resp.Token == "" {
			return nil, state.Fulfilled{}, ErrNoCredential
		}
		change, err := s.startSession(resp)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		return resp.User.Clone(), change, nil
	})
}

func (s *authService) SignOut(ctx context.Context) error {
	_, err := run(ctx, s, state.ActionSignOut, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		if err := s.api.Logout(ctx); err != nil {
			return struct{}{}, state.Fulfilled{}, err
		}
		s.tokens.DelToken()
		return struct{}{}, state.Fulfilled{Effect: state.EffectClearSession}, nil
	})
	return err
}

// RefreshUser re-reads the user behind the stored credential. Without a
// credential it rejects with ErrNotLoggedIn and sends nothing.
func (s *authService) RefreshUser(ctx context.Context) (*models.User, error) {
	return run(ctx, s, state.ActionRefreshUser, func(ctx context.Context) (*models.User, state.Fulfilled, error) {
		if s.tokens.Token() == "" {
			return nil, state.Fulfilled{}, ErrNotLoggedIn
		}
		user, err := s.api.Current(ctx)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		// Pair the user with whatever credential is current now; a logout
		// that raced this call leaves both absent.
		return user.Clone(), state.Fulfilled{
			Effect: state.EffectSetSession,
			Token:  s.tokens.Token(),
			User:   user,
		}, nil
	})
}

func (s *authService) VerifyUser(ctx context.Context, verificationToken string) (*models.User, error) {
	return run(ctx, s, state.ActionVerifyUser, func(ctx context.Context) (*models.User, state.Fulfilled, error) {
		resp, err := s.api.Verify(ctx, verificationToken)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		if resp.Token == "" {
			return nil, state.Fulfilled{}, ErrNoCredential
		}
		change, err := s.startSession(resp)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		return resp.User.Clone(), change, nil
	})
}

func (s *authService) ResendVerifyUser(ctx context.Context, req models.EmailRequest) error {
	_, err := run(ctx, s, state.ActionResendVerifyUser, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		_, err := s.api.ResendVerify(ctx, req)
		return struct{}{}, state.Fulfilled{}, err
	})
	return err
}

// SetNewPassword logs the user in when the backend answers with a token.
func (s *authService) SetNewPassword(ctx context.Context, req models.NewPasswordRequest) error {
	_, err := run(ctx, s, state.ActionSetNewPassword, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		resp, err := s.api.ResetPassword(ctx, req)
		if err != nil {
			return struct{}{}, state.Fulfilled{}, err
		}
		if resp.Token == "" {
			return struct{}{}, state.Fulfilled{}, nil
		}
		change, err := s.startSession(resp)
		return struct{}{}, change, err
	})
	return err
}

func (s *authService) ForgotPassword(ctx context.Context, req models.EmailRequest) error {
	_, err := run(ctx, s, state.ActionForgotPassword, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		_, err := s.api.ForgotPassword(ctx, req)
		return struct{}{}, state.Fulfilled{}, err
	})
	return err
}

func (s *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	_, err := run(ctx, s, state.ActionChangePassword, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		_, err := s.api.ChangePassword(ctx, req)
		return struct{}{}, state.Fulfilled{}, err
	})
	return err
}

// ChangeName touches user.name only; the credential is left alone.
func (s *authService) ChangeName(ctx context.Context, req models.ChangeNameRequest) error {
	_, err := run(ctx, s, state.ActionChangeName, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		resp, err := s.api.ChangeName(ctx, req)
		if err != nil {
			return struct{}{}, state.Fulfilled{}, err
		}
		name := req.Name
		if resp != nil && resp.Name != "" {
			name = resp.Name
		}
		return struct{}{}, state.Fulfilled{Effect: state.EffectRename, Name: name}, nil
	})
	return err
}

func (s *authService) CheckPaymentStatus(ctx context.Context) (*models.SubscriptionResponse, error) {
	return run(ctx, s, state.ActionCheckPaymentStatus, func(ctx context.Context) (*models.SubscriptionResponse, state.Fulfilled, error) {
		resp, err := s.api.PaymentStatus(ctx)
		if err != nil {
			return nil, state.Fulfilled{}, err
		}
		if resp == nil {
			resp = &models.SubscriptionResponse{}
		}
		return resp, state.Fulfilled{Effect: state.EffectSetTier, Tier: resp.Subscription}, nil
	})
}

// Unsubscribe drops the user to the tier the backend reports, "free" when
// it reports none.
func (s *authService) Unsubscribe(ctx context.Context, req models.UnsubscribeRequest) error {
	_, err := run(ctx, s, state.ActionUnsubscribe, func(ctx context.Context) (struct{}, state.Fulfilled, error) {
		resp, err := s.api.Unsubscribe(ctx, req)
		if err != nil {
			return struct{}{}, state.Fulfilled{}, err
		}
		tier := models.TierFree
		if resp != nil && resp.Subscription != "" {
			tier = resp.Subscription
		}
		return struct{}{}, state.Fulfilled{Effect: state.EffectSetTier, Tier: tier}, nil
	})
	return err
}

func (s *authService) CallSupport(ctx context.Context) (*models.SupportResponse, error) {
	return run(ctx, s, state.ActionCallSupport, func(ctx context.Context) (*models.SupportResponse, state.Fulfilled, error) {
		resp, err := s.api.CallSupport(ctx)
		return resp, state.Fulfilled{}, err
	})
}

func (s *authService) ReportSupport(ctx context.Context, req models.ReportRequest) (*models.SupportResponse, error) {
	return run(ctx, s, state.ActionReportSupport, func(ctx context.Context) (*models.SupportResponse, state.Fulfilled, error) {
		resp, err := s.api.ReportSupport(ctx, req)
		return resp, state.Fulfilled{}, err
	})
}

// Bootstrap mirrors a persisted credential into the state and refreshes
// the user behind it. It is a no-op when nothing was persisted.
func (s *authService) Bootstrap(ctx context.Context) error {
	token := s.tokens.Token()
	if token == "" {
		return nil
	}
	s.state.Dispatch(state.Hydrated{Token: token})
	_, err := s.RefreshUser(ctx)
	return err
}

// Ping checks server liveness.
func (s *authService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

// Close releases the underlying client.
func (s *authService) Close() error {
	return s.api.Close()
}

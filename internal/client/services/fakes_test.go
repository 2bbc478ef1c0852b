package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/client/diagnostics"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// fakeAPI implements client.API for unit tests of the action set.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	// token observed by each call, as the HTTP client would send it
	tokens       TokenStore
	sentTokens   []string
	onCurrent    func()
	RegisterResp *models.AuthResponse
	LoginResp    *models.AuthResponse
	CurrentResp  *models.User
	VerifyResp   *models.AuthResponse
	ResetResp    *models.AuthResponse
	NameResp     *models.NameResponse
	PaymentResp  *models.SubscriptionResponse
	UnsubResp    *models.SubscriptionResponse
	SupportResp  *models.SupportResponse

	Err map[string]error
}

func newFakeAPI(tokens TokenStore) *fakeAPI {
	return &fakeAPI{tokens: tokens, Err: map[string]error{}}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.tokens != nil {
		f.sentTokens = append(f.sentTokens, f.tokens.Token())
	}
	return f.Err[name]
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := f.record("Register"); err != nil {
		return nil, err
	}
	return orEmpty(f.RegisterResp), nil
}

func (f *fakeAPI) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := f.record("Login"); err != nil {
		return nil, err
	}
	return orEmpty(f.LoginResp), nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	return f.record("Logout")
}

func (f *fakeAPI) Current(ctx context.Context) (*models.User, error) {
	err := f.record("Current")
	if f.onCurrent != nil {
		f.onCurrent()
	}
	if err != nil {
		return nil, err
	}
	if f.CurrentResp == nil {
		return &models.User{}, nil
	}
	return f.CurrentResp.Clone(), nil
}

func (f *fakeAPI) Verify(ctx context.Context, verificationToken string) (*models.AuthResponse, error) {
	if err := f.record("Verify"); err != nil {
		return nil, err
	}
	return orEmpty(f.VerifyResp), nil
}

func (f *fakeAPI) ResendVerify(ctx context.Context, req models.EmailRequest) (*models.MessageResponse, error) {
	if err := f.record("ResendVerify"); err != nil {
		return nil, err
	}
	return &models.MessageResponse{Message: "sent"}, nil
}

func (f *fakeAPI) ResetPassword(ctx context.Context, req models.NewPasswordRequest) (*models.AuthResponse, error) {
	if err := f.record("ResetPassword"); err != nil {
		return nil, err
	}
	return orEmpty(f.ResetResp), nil
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, req models.EmailRequest) (*models.MessageResponse, error) {
	if err := f.record("ForgotPassword"); err != nil {
		return nil, err
	}
	return &models.MessageResponse{Message: "sent"}, nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	if err := f.record("ChangePassword"); err != nil {
		return nil, err
	}
	return &models.MessageResponse{Message: "changed"}, nil
}

func (f *fakeAPI) ChangeName(ctx context.Context, req models.ChangeNameRequest) (*models.NameResponse, error) {
	if err := f.record("ChangeName"); err != nil {
		return nil, err
	}
	if f.NameResp == nil {
		return &models.NameResponse{}, nil
	}
	return f.NameResp, nil
}

func (f *fakeAPI) PaymentStatus(ctx context.Context) (*models.SubscriptionResponse, error) {
	if err := f.record("PaymentStatus"); err != nil {
		return nil, err
	}
	if f.PaymentResp == nil {
		return &models.SubscriptionResponse{}, nil
	}
	return f.PaymentResp, nil
}

func (f *fakeAPI) Unsubscribe(ctx context.Context, req models.UnsubscribeRequest) (*models.SubscriptionResponse, error) {
	if err := f.record("Unsubscribe"); err != nil {
		return nil, err
	}
	if f.UnsubResp == nil {
		return &models.SubscriptionResponse{}, nil
	}
	return f.UnsubResp, nil
}

func (f *fakeAPI) CallSupport(ctx context.Context) (*models.SupportResponse, error) {
	if err := f.record("CallSupport"); err != nil {
		return nil, err
	}
	if f.SupportResp == nil {
		return &models.SupportResponse{}, nil
	}
	return f.SupportResp, nil
}

func (f *fakeAPI) ReportSupport(ctx context.Context, req models.ReportRequest) (*models.SupportResponse, error) {
	if err := f.record("ReportSupport"); err != nil {
		return nil, err
	}
	if f.SupportResp == nil {
		return &models.SupportResponse{}, nil
	}
	return f.SupportResp, nil
}

func (f *fakeAPI) Ping(ctx context.Context) error {
	return f.record("Ping")
}

func (f *fakeAPI) ClientLog(ctx context.Context, event models.ClientLogEvent) error {
	return f.record("ClientLog")
}

func (f *fakeAPI) Close() error {
	return f.record("Close")
}

func orEmpty(r *models.AuthResponse) *models.AuthResponse {
	if r == nil {
		return &models.AuthResponse{}
	}
	c := *r
	return &c
}

var _ client.API = (*fakeAPI)(nil)

// apiErr builds the error the HTTP client returns for a non-2xx answer.
func apiErr(status int, message string, sent any) *client.APIError {
	var body []byte
	if sent != nil {
		body, _ = json.Marshal(sent)
	}
	raw, _ := json.Marshal(map[string]string{"message": message})
	return &client.APIError{Status: status, Message: message, RawBody: raw, RequestBody: body}
}

func transportErr() *client.APIError {
	return &client.APIError{Status: 0, Message: client.ErrUnavailable.Error()}
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

type recordingReporter struct {
	mu     sync.Mutex
	events []diagnostics.Event
}

func (r *recordingReporter) Report(ctx context.Context, ev diagnostics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

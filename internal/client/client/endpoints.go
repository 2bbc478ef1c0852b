package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

var _ API = (*HTTPClient)(nil)

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.Do(ctx, http.MethodGet, "/auth/current", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Verify(ctx context.Context, verificationToken string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, http.MethodGet, "/auth/verify/"+url.PathEscape(verificationToken), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResendVerify(ctx context.Context, req models.EmailRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/verify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.NewPasswordRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/reset-password/"+url.PathEscape(req.Token), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req models.EmailRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/forgot-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/change-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ChangeName(ctx context.Context, req models.ChangeNameRequest) (*models.NameResponse, error) {
	var resp models.NameResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/change-name", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) PaymentStatus(ctx context.Context) (*models.SubscriptionResponse, error) {
	var resp models.SubscriptionResponse
	if err := c.Do(ctx, http.MethodGet, "/auth/payment-status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Unsubscribe(ctx context.Context, req models.UnsubscribeRequest) (*models.SubscriptionResponse, error) {
	var resp models.SubscriptionResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/unsubscribe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CallSupport(ctx context.Context) (*models.SupportResponse, error) {
	var resp models.SupportResponse
	if err := c.Do(ctx, http.MethodGet, "/auth/callsupport", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ReportSupport(ctx context.Context, req models.ReportRequest) (*models.SupportResponse, error) {
	var resp models.SupportResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/callsupport", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks reachability; the /ping body is plain text and is ignored.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.Do(ctx, http.MethodGet, "/ping", nil, nil)
}

// ClientLog posts a diagnostic event. The sink answers 204.
func (c *HTTPClient) ClientLog(ctx context.Context, event models.ClientLogEvent) error {
	return c.Do(ctx, http.MethodPost, "/client-log", event, nil)
}

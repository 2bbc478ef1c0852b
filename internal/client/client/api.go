package client

import (
	"context"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// API is the backend auth surface consumed by the auth action set.
type API interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
	Verify(ctx context.Context, verificationToken string) (*models.AuthResponse, error)
	ResendVerify(ctx context.Context, req models.EmailRequest) (*models.MessageResponse, error)
	ResetPassword(ctx context.Context, req models.NewPasswordRequest) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, req models.EmailRequest) (*models.MessageResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error)
	ChangeName(ctx context.Context, req models.ChangeNameRequest) (*models.NameResponse, error)
	PaymentStatus(ctx context.Context) (*models.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, req models.UnsubscribeRequest) (*models.SubscriptionResponse, error)
	CallSupport(ctx context.Context) (*models.SupportResponse, error)
	ReportSupport(ctx context.Context, req models.ReportRequest) (*models.SupportResponse, error)
	Ping(ctx context.Context) error
	ClientLog(ctx context.Context, event models.ClientLogEvent) error
	Close() error
}

package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest is the body of POST /auth/verify and POST /auth/forgot-password.
type EmailRequest struct {
	Email string `json:"email"`
}

// NewPasswordRequest carries the reset token (path segment) and new password.
type NewPasswordRequest struct {
	Token    string `json:"-"`
	Password string `json:"newPassword"`
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangeNameRequest is the body of POST /auth/change-name.
type ChangeNameRequest struct {
	Name string `json:"name"`
}

// UnsubscribeRequest is the body of POST /auth/unsubscribe.
type UnsubscribeRequest struct {
	Reason string `json:"reason"`
}

// ReportRequest is the body of POST /auth/callsupport.
type ReportRequest struct {
	Report string `json:"report"`
}

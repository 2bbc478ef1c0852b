package models

import "encoding/json"

// AuthResponse is the flat success body of the session-producing endpoints:
// an optional token next to the user fields.
type AuthResponse struct {
	Token string `json:"token,omitempty"`
	User
}

// HasUser reports whether the body carried an identity.
func (r *AuthResponse) HasUser() bool {
	return r != nil && (r.ID != "" || r.Email != "")
}

// MessageResponse is the generic {message} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// NameResponse is returned by POST /auth/change-name.
type NameResponse struct {
	Name string `json:"name"`
}

// SubscriptionResponse is returned by payment-status and unsubscribe.
type SubscriptionResponse struct {
	Subscription string `json:"subscription,omitempty"`
	Message      string `json:"message,omitempty"`
}

// SupportResponse is the body of the support endpoints. Data keeps whatever
// else the backend sends.
type SupportResponse struct {
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"-"`
}

func (r *SupportResponse) UnmarshalJSON(b []byte) error {
	var m MessageResponse
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	r.Message = m.Message
	r.Data = append(json.RawMessage(nil), b...)
	return nil
}

// ClientLogEvent is posted to /client-log.
type ClientLogEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Action    string `json:"action,omitempty"`
	Status    int    `json:"status,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	UserAgent string `json:"userAgent"`
	Timestamp string `json:"ts"`
}

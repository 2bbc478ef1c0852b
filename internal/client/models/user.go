package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	TierFree = "free"
)

// User is the identity record returned by the auth endpoints.
type User struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Avatar           string `json:"avatar,omitempty"`
	Role             string `json:"role"`
	SubscriptionTier string `json:"subscription,omitempty"`
	Verified         bool   `json:"verify"`
}

// Tier returns the subscription tier, "free" when unset.
func (u *User) Tier() string {
	if u == nil || u.SubscriptionTier == "" {
		return TierFree
	}
	return u.SubscriptionTier
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Clone returns an independent copy; nil stays nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

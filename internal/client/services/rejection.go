package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/client/client"
	"github.com/dmitrijs2005/coursehub/internal/client/state"
)

var (
	// ErrNotLoggedIn is the local precondition failure of RefreshUser.
	ErrNotLoggedIn = errors.New("please log in first")
	// ErrNoCredential rejects a session-producing response without a token.
	ErrNoCredential = errors.New("response carries no credential")
	// ErrNoIdentity rejects a session-producing response without user fields.
	ErrNoIdentity = errors.New("response carries no user")
)

type Kind string

const (
	// KindPrecondition: rejected locally, nothing was sent.
	KindPrecondition Kind = "precondition"
	// KindTransport: no response arrived.
	KindTransport Kind = "transport"
	// KindServer: the backend answered with a non-2xx status.
	KindServer Kind = "server"
)

// Rejection is the uniform failure value of every auth action.
type Rejection struct {
	Action  state.Action
	Kind    Kind
	Status  int
	Message string
	// Body is the raw response body, RequestBody the serialized payload sent.
	Body        []byte
	RequestBody []byte
	RequestID   string

	err error
}

func (r *Rejection) Error() string {
	if r.Status != 0 {
		return fmt.Sprintf("%s rejected: %d %s", r.Action, r.Status, r.Message)
	}
	return fmt.Sprintf("%s rejected: %s", r.Action, r.Message)
}

// Unwrap yields the *client.APIError or ErrNotLoggedIn behind the rejection.
func (r *Rejection) Unwrap() error { return r.err }

func (r *Rejection) failure() state.Failure {
	return state.Failure{Action: r.Action, Kind: string(r.Kind), Status: r.Status, Message: r.Message}
}

// Classify turns any action error into a Rejection. It does no I/O.
func Classify(action state.Action, err error) *Rejection {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	r := &Rejection{Action: action, err: err}

	if errors.Is(err, ErrNotLoggedIn) {
		r.Kind = KindPrecondition
		r.Message = ErrNotLoggedIn.Error()
		return r
	}

	apiErr, ok := client.AsAPIError(err)
	if !ok {
		r.Kind = KindServer
		r.Message = err.Error()
		return r
	}
	if apiErr.Transport() {
		r.Kind = KindTransport
		r.Message = client.ErrUnavailable.Error()
		r.RequestBody = apiErr.RequestBody
		r.RequestID = apiErr.RequestID
		return r
	}

	r.Kind = KindServer
	r.Status = apiErr.Status
	r.Message = apiErr.Message
	r.Body = apiErr.RawBody
	r.RequestBody = apiErr.RequestBody
	r.RequestID = apiErr.RequestID

	// The conflicting address is read back from what was sent; the 409 body
	// does not carry it.
	if action == state.ActionSignUp && r.Status == http.StatusConflict {
		if email := payloadEmail(r.RequestBody); email != "" {
			r.Message = fmt.Sprintf("Email %s is already in use. Please log in.", email)
		}
	}
	return r
}

// invalidatesSession reports whether r means the stored credential is dead.
// Only a refresh can tell; transport and 5xx failures keep the session.
func invalidatesSession(r *Rejection) bool {
	if r.Action != state.ActionRefreshUser {
		return false
	}
	if r.Kind == KindPrecondition {
		return true
	}
	return r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden
}

// reportable reports whether r goes to the diagnostics channel.
func reportable(r *Rejection) bool {
	return r.Kind == KindTransport || r.Status >= http.StatusInternalServerError
}

var notifyOnFailure = map[state.Action]bool{
	state.ActionSignUp:           true,
	state.ActionSignIn:           true,
	state.ActionSignOut:          true,
	state.ActionResendVerifyUser: true,
	state.ActionSetNewPassword:   true,
	state.ActionForgotPassword:   true,
	state.ActionChangePassword:   true,
	state.ActionChangeName:       true,
}

// FailureText returns the notification for r, false when the action fails
// silently.
func FailureText(r *Rejection) (string, bool) {
	if !notifyOnFailure[r.Action] {
		return "", false
	}
	if r.Action == state.ActionSignUp && r.Status == http.StatusConflict && payloadEmail(r.RequestBody) != "" {
		return r.Message, true
	}
	return strings.TrimRight(r.Message, ". ") + ". Try again", true
}

// payloadEmail reads the email field back out of the serialized request.
func payloadEmail(body []byte) string {
	var p struct {
		Email string `json:"email"`
	}
	if len(body) == 0 || json.Unmarshal(body, &p) != nil {
		return ""
	}
	return p.Email
}

var successText = map[state.Action]string{
	state.ActionSignUp:           "Welcome! You have registered successfully",
	state.ActionSignIn:           "You have logged in successfully",
	state.ActionSignOut:          "You have logged out successfully",
	state.ActionVerifyUser:       "Your email address has been verified",
	state.ActionResendVerifyUser: "Verification email sent",
	state.ActionSetNewPassword:   "Your password has been changed",
	state.ActionForgotPassword:   "Password reset email sent",
	state.ActionChangePassword:   "Password changed successfully",
}

// SuccessText returns the notification for a fulfilled action, false when
// the action is silent.
func SuccessText(action state.Action) (string, bool) {
	msg, ok := successText[action]
	return msg, ok
}

package state

// Action names one auth use case. The values double as log and
// diagnostics labels.
type Action string

const (
	ActionSignUp             Action = "auth/signup"
	ActionSignIn             Action = "auth/login"
	ActionSignOut            Action = "auth/logout"
	ActionRefreshUser        Action = "auth/refresh"
	ActionVerifyUser         Action = "auth/verify"
	ActionResendVerifyUser   Action = "auth/resendverify"
	ActionSetNewPassword     Action = "auth/resetpassword"
	ActionForgotPassword     Action = "auth/forgotpassword"
	ActionChangePassword     Action = "auth/changepassword"
	ActionChangeName         Action = "user/changename"
	ActionCheckPaymentStatus Action = "auth/checkpayment"
	ActionUnsubscribe        Action = "user/unsubscribe"
	ActionCallSupport        Action = "user/callsupport"
	ActionReportSupport      Action = "user/reportsupport"
)

// Actions lists every action in a stable order.
var Actions = []Action{
	ActionSignUp,
	ActionSignIn,
	ActionSignOut,
	ActionRefreshUser,
	ActionVerifyUser,
	ActionResendVerifyUser,
	ActionSetNewPassword,
	ActionForgotPassword,
	ActionChangePassword,
	ActionChangeName,
	ActionCheckPaymentStatus,
	ActionUnsubscribe,
	ActionCallSupport,
	ActionReportSupport,
}

// Status is the lifecycle of one action call.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "idle"
	}
}

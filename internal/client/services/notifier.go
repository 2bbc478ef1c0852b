package services

// Notifier shows user-facing toasts. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

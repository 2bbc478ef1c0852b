// Package state holds the client auth state: the current credential, the
// current user and the lifecycle of every auth action. It changes only
// through Dispatch, which runs the pure Reduce function.
package state

import (
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

// Snapshot is an immutable view of the state. Callers must not modify
// the returned User.
type Snapshot struct {
	Token     string
	User      *models.User
	LastError *Failure

	statuses map[Action]Status
}

// Status returns the lifecycle of the last call of a.
func (s Snapshot) Status(a Action) Status {
	return s.statuses[a]
}

// IsLoggedIn holds when both halves of the session are present.
func (s Snapshot) IsLoggedIn() bool {
	return s.Token != "" && s.User != nil
}

func (s Snapshot) IsAdmin() bool {
	return s.User.IsAdmin()
}

// SubscriptionTier defaults to "free".
func (s Snapshot) SubscriptionTier() string {
	return s.User.Tier()
}

func (s Snapshot) withStatus(a Action, st Status) Snapshot {
	statuses := make(map[Action]Status, len(s.statuses)+1)
	for k, v := range s.statuses {
		statuses[k] = v
	}
	statuses[a] = st
	s.statuses = statuses
	return s
}

func (s Snapshot) withSession(token string, user *models.User) Snapshot {
	if token == "" || user == nil {
		s.Token, s.User = "", nil
		return s
	}
	s.Token, s.User = token, user.Clone()
	return s
}

// Reduce returns the state after ev. It never mutates prev.
func Reduce(prev Snapshot, ev Event) Snapshot {
	switch e := ev.(type) {
	case Pending:
		return prev.withStatus(e.Action, StatusPending)

	case Hydrated:
		next := prev
		next.Token, next.User = e.Token, nil
		return next

	case Rejected:
		next := prev.withStatus(e.Action, StatusRejected)
		f := e.Failure
		f.Action = e.Action
		next.LastError = &f
		if e.ClearSession && next.Token == e.Token {
			next = next.withSession("", nil)
		}
		return next

	case Fulfilled:
		next := prev.withStatus(e.Action, StatusFulfilled)
		if next.LastError != nil && next.LastError.Action == e.Action {
			next.LastError = nil
		}
		switch e.Effect {
		case EffectSetSession:
			next = next.withSession(e.Token, e.User)
		case EffectClearSession:
			next = next.withSession("", nil)
		case EffectRename:
			if next.User != nil {
				u := next.User.Clone()
				u.Name = e.Name
				next.User = u
			}
		case EffectSetTier:
			if next.User != nil && e.Tier != "" {
				u := next.User.Clone()
				u.SubscriptionTier = e.Tier
				next.User = u
			}
		}
		return next
	}
	return prev
}

// Store is the single authoritative holder of the auth state.
type Store struct {
	mu        sync.Mutex
	current   Snapshot
	observers []func(Snapshot)
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dispatch applies ev and notifies observers with the resulting snapshot.
// Observers run outside the lock, in subscription order.
func (s *Store) Dispatch(ev Event) Snapshot {
	s.mu.Lock()
	s.current = Reduce(s.current, ev)
	next := s.current
	observers := append([]func(Snapshot){}, s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	return next
}

// Subscribe registers fn for every subsequent dispatch.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

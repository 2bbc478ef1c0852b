package state

import "github.com/dmitrijs2005/coursehub/internal/client/models"

// Event is anything the reducer accepts.
type Event interface {
	event()
}

// Effect tells the reducer what a fulfilled action does to the session.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSetSession replaces token and user together.
	EffectSetSession
	// EffectClearSession drops token and user together.
	EffectClearSession
	// EffectRename changes user.name only.
	EffectRename
	// EffectSetTier changes the subscription tier only.
	EffectSetTier
)

// Failure is the state-side view of a rejection.
type Failure struct {
	Action  Action
	Kind    string
	Status  int
	Message string
}

type Pending struct {
	Action Action
}

type Fulfilled struct {
	Action Action
	Effect Effect
	Token  string
	User   *models.User
	Name   string
	Tier   string
}

type Rejected struct {
	Action  Action
	Failure Failure
	// ClearSession logs the client out as part of the same transition,
	// provided the state still holds Token.
	ClearSession bool
	// Token is the credential the failed call was sent with.
	Token string
}

// Hydrated restores a persisted credential on startup. The user stays
// absent until a refresh confirms it.
type Hydrated struct {
	Token string
}

func (Pending) event()   {}
func (Fulfilled) event() {}
func (Rejected) event()  {}
func (Hydrated) event()  {}

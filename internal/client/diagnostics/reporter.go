// Package diagnostics forwards client-side failures to the backend
// /client-log sink. Delivery is fire-and-forget: a failed report is logged
// and dropped, never returned to the caller.
package diagnostics

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/google/uuid"
)

const (
	TypeActionFailed = "action_failed"
	TypeUnavailable  = "server_unavailable"

	sendTimeout = 5 * time.Second
)

// Sink is the part of the backend client the reporter needs.
type Sink interface {
	ClientLog(ctx context.Context, event models.ClientLogEvent) error
}

type Event struct {
	Type      string
	Message   string
	Action    string
	Status    int
	RequestID string
}

// Reporter is safe for concurrent use. A nil *Reporter drops everything.
type Reporter struct {
	sink      Sink
	userAgent string
	log       logging.Logger
	now       func() time.Time
	wg        sync.WaitGroup
}

func NewReporter(sink Sink, userAgent string, log logging.Logger) *Reporter {
	if log == nil {
		log = logging.Nop()
	}
	return &Reporter{sink: sink, userAgent: userAgent, log: log, now: time.Now}
}

// Report posts ev in the background. The caller's cancellation does not
// abort the post.
func (r *Reporter) Report(ctx context.Context, ev Event) {
	if r == nil || r.sink == nil {
		return
	}
	payload := models.ClientLogEvent{
		ID:        uuid.NewString(),
		Type:      ev.Type,
		Message:   ev.Message,
		Action:    ev.Action,
		Status:    ev.Status,
		RequestID: ev.RequestID,
		UserAgent: r.userAgent,
		Timestamp: r.now().UTC().Format(time.RFC3339Nano),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		if err := r.sink.ClientLog(sendCtx, payload); err != nil {
			r.log.Warn(sendCtx, "client log not delivered", "id", payload.ID, "action", payload.Action, "error", err)
			return
		}
		r.log.Debug(sendCtx, "client log delivered", "id", payload.ID, "action", payload.Action)
	}()
}

// Wait blocks until every in-flight report has finished.
func (r *Reporter) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

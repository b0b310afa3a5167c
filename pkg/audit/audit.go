// Package audit records the mutating admin operations this tool performs
// against the backend: logins, logouts, availability edits, and resource
// CRUD. The default sink writes structured log lines; a PostgreSQL sink is
// available for deployments that keep a central trail.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is one auditable admin operation.
type Event struct {
	ID           string         `json:"id"`
	Timestamp    time.Time      `json:"timestamp"`
	DurationMS   int64          `json:"duration_ms"`
	RequestID    string         `json:"request_id,omitempty"`
	Actor        string         `json:"actor,omitempty"`
	Action       string         `json:"action"`
	Resource     string         `json:"resource,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewEvent creates an event for an action, stamped now.
func NewEvent(action string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    action,
	}
}

// WithActor sets the operator identity (email or token subject).
func (e *Event) WithActor(actor string) *Event {
	e.Actor = actor
	return e
}

// WithResource sets the affected resource, e.g. "property/3/room/7".
func (e *Event) WithResource(resource string) *Event {
	e.Resource = resource
	return e
}

// WithParameters attaches the operation parameters.
func (e *Event) WithParameters(params map[string]any) *Event {
	e.Parameters = params
	return e
}

// WithDuration records how long the operation took.
func (e *Event) WithDuration(d time.Duration) *Event {
	e.DurationMS = d.Milliseconds()
	return e
}

// WithError marks the outcome. A nil error marks success.
func (e *Event) WithError(err error) *Event {
	e.Success = err == nil
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	return e
}

// QueryFilter selects events when querying a sink that supports it.
type QueryFilter struct {
	StartTime *time.Time
	EndTime   *time.Time
	Actor     string
	Action    string
	Success   *bool
	Limit     int
	Offset    int
}

// Logger is an audit sink.
type Logger interface {
	// Log records an event.
	Log(ctx context.Context, event Event) error

	// Query retrieves events matching the filter. Sinks without storage
	// return nil.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Close releases resources.
	Close() error
}

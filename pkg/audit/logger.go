package audit

import (
	"context"
	"log/slog"
)

// SlogLogger writes audit events as structured log lines. It keeps no
// history, so Query always returns nil.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates an audit sink backed by a structured logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Log writes the event at info level, or warn when the operation failed.
func (l *SlogLogger) Log(ctx context.Context, event Event) error {
	attrs := []any{
		slog.String("audit_id", event.ID),
		slog.String("action", event.Action),
		slog.Bool("success", event.Success),
		slog.Int64("duration_ms", event.DurationMS),
	}
	if event.Actor != "" {
		attrs = append(attrs, slog.String("actor", event.Actor))
	}
	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.ErrorMessage != "" {
		attrs = append(attrs, slog.String("error", event.ErrorMessage))
	}

	if event.Success {
		l.logger.InfoContext(ctx, "audit event", attrs...)
	} else {
		l.logger.WarnContext(ctx, "audit event", attrs...)
	}
	return nil
}

// Query returns nil. Log lines are the only record this sink keeps.
func (l *SlogLogger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return nil, nil
}

// Close is a no-op.
func (l *SlogLogger) Close() error {
	return nil
}

// NopLogger discards all events. Used when auditing is disabled.
type NopLogger struct{}

func (NopLogger) Log(ctx context.Context, event Event) error { return nil }

func (NopLogger) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	return nil, nil
}

func (NopLogger) Close() error { return nil }

// Verify interface compliance.
var (
	_ Logger = (*SlogLogger)(nil)
	_ Logger = NopLogger{}
)

package cli

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotprogrammers/walc-admin/pkg/audit"
	"github.com/dotprogrammers/walc-admin/pkg/session"
)

type captureSink struct {
	events []audit.Event
}

func (s *captureSink) Log(_ context.Context, event audit.Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) Query(_ context.Context, _ audit.QueryFilter) ([]audit.Event, error) {
	return nil, nil
}

func (s *captureSink) Close() error { return nil }

func newTestContext(sink audit.Logger) *Context {
	return &Context{
		Sessions: session.NewManager(session.ManagerConfig{Store: session.NewMemoryStore()}),
		Audit:    sink,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Out:      io.Discard,
	}
}

func TestRecord(t *testing.T) {
	t.Run("keeps an actor captured before the session was cleared", func(t *testing.T) {
		sink := &captureSink{}
		appCtx := newTestContext(sink)

		event := audit.NewEvent("logout").WithActor("ops@example.com")
		appCtx.record(context.Background(), event, time.Now().Add(-20*time.Millisecond), nil)

		require.Len(t, sink.events, 1)
		got := sink.events[0]
		assert.Equal(t, "ops@example.com", got.Actor)
		assert.True(t, got.Success)
		assert.GreaterOrEqual(t, got.DurationMS, int64(20))
	})

	t.Run("anonymous session records an empty actor", func(t *testing.T) {
		sink := &captureSink{}
		appCtx := newTestContext(sink)

		appCtx.record(context.Background(), audit.NewEvent("booking.cancel"), time.Now(), nil)

		require.Len(t, sink.events, 1)
		assert.Empty(t, sink.events[0].Actor)
	})
}

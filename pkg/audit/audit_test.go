package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent("availability.set")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "availability.set", e.Action)
	assert.WithinDuration(t, time.Now(), e.Timestamp, time.Second)

	other := NewEvent("availability.set")
	assert.NotEqual(t, e.ID, other.ID)
}

func TestEventWithers(t *testing.T) {
	e := NewEvent("property.delete").
		WithActor("admin@example.com").
		WithResource("property/3").
		WithParameters(map[string]any{"cascade": true}).
		WithDuration(1500 * time.Millisecond)

	assert.Equal(t, "admin@example.com", e.Actor)
	assert.Equal(t, "property/3", e.Resource)
	assert.Equal(t, true, e.Parameters["cascade"])
	assert.Equal(t, int64(1500), e.DurationMS)

	t.Run("nil error marks success", func(t *testing.T) {
		e.WithError(nil)
		assert.True(t, e.Success)
		assert.Empty(t, e.ErrorMessage)
	})

	t.Run("error marks failure", func(t *testing.T) {
		e.WithError(errors.New("backend returned 422"))
		assert.False(t, e.Success)
		assert.Equal(t, "backend returned 422", e.ErrorMessage)
	})
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	event := NewEvent("login").WithActor("admin@example.com").WithError(nil)
	require.NoError(t, logger.Log(context.Background(), *event))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "action=login")
	assert.Contains(t, out, "actor=admin@example.com")

	buf.Reset()
	failed := NewEvent("login").WithError(errors.New("invalid credentials"))
	require.NoError(t, logger.Log(context.Background(), *failed))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "invalid credentials")
}

func TestSlogLogger_QueryIsEmpty(t *testing.T) {
	logger := NewSlogLogger(nil)
	events, err := logger.Query(context.Background(), QueryFilter{})
	assert.NoError(t, err)
	assert.Nil(t, events)
	assert.NoError(t, logger.Close())
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	assert.NoError(t, l.Log(context.Background(), Event{}))
	events, err := l.Query(context.Background(), QueryFilter{})
	assert.NoError(t, err)
	assert.Nil(t, events)
	assert.NoError(t, l.Close())
}

package session

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

// scriptedTransport returns canned responses per path and records calls.
type scriptedTransport struct {
	mu        sync.Mutex
	responses map[string][]byte
	errs      map[string]error
	calls     []string
	blockOn   map[string]chan struct{}
}

func newScriptedTransport() *scriptedTransport {
	return &scriptedTransport{
		responses: map[string][]byte{},
		errs:      map[string]error{},
		blockOn:   map[string]chan struct{}{},
	}
}

func (t *scriptedTransport) Do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	t.mu.Lock()
	t.calls = append(t.calls, method+" "+path)
	block := t.blockOn[path]
	resp := t.responses[path]
	err := t.errs[path]
	t.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (t *scriptedTransport) callCount(path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		if c == "POST "+path {
			n++
		}
	}
	return n
}

func newTestManager(api Transport) *Manager {
	return NewManager(ManagerConfig{API: api, Store: NewMemoryStore()})
}

func TestLogin_ResponseShapes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantAccess  string
		wantRefresh string
	}{
		{
			name:        "flat access_token",
			body:        `{"access_token":"at-1","refresh_token":"rt-1"}`,
			wantAccess:  "at-1",
			wantRefresh: "rt-1",
		},
		{
			name:       "legacy token field",
			body:       `{"token":"at-2"}`,
			wantAccess: "at-2",
		},
		{
			name:        "nested under data",
			body:        `{"success":true,"data":{"token":"at-3","refresh_token":"rt-3"}}`,
			wantAccess:  "at-3",
			wantRefresh: "rt-3",
		},
		{
			name:        "flat access token with nested refresh",
			body:        `{"access_token":"at-4","data":{"refresh_token":"rt-4"}}`,
			wantAccess:  "at-4",
			wantRefresh: "rt-4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newScriptedTransport()
			api.responses[client.PathLogin] = []byte(tt.body)
			m := newTestManager(api)

			err := m.Login(context.Background(), "admin@example.com", "pw")
			require.NoError(t, err)

			sess, err := m.Current()
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, sess.AccessToken)
			assert.Equal(t, tt.wantRefresh, sess.RefreshToken)
			assert.True(t, m.IsAuthenticated())
		})
	}
}

func TestLogin_NoTokenInResponse(t *testing.T) {
	api := newScriptedTransport()
	api.responses[client.PathLogin] = []byte(`{"success":true,"message":"welcome"}`)
	m := newTestManager(api)

	err := m.Login(context.Background(), "admin@example.com", "pw")
	assert.ErrorIs(t, err, ErrNoTokenInResponse)
	assert.False(t, m.IsAuthenticated())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	api := newScriptedTransport()
	api.errs[client.PathLogin] = fmt.Errorf("POST /login: %w", client.ErrUnauthorized)
	m := newTestManager(api)

	err := m.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	api := newScriptedTransport()
	api.responses[client.PathRefresh] = []byte(`{"access_token":"at-new","refresh_token":"rt-new"}`)

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at-old", RefreshToken: "rt-old", IssuedAt: time.Now()}))
	m := NewManager(ManagerConfig{API: api, Store: store})

	require.NoError(t, m.Refresh(context.Background()))

	sess, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, "at-new", sess.AccessToken)
	assert.Equal(t, "rt-new", sess.RefreshToken)
}

func TestRefresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	api := newScriptedTransport()
	api.responses[client.PathRefresh] = []byte(`{"access_token":"at-new"}`)

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at-old", RefreshToken: "rt-keep"}))
	m := NewManager(ManagerConfig{API: api, Store: store})

	require.NoError(t, m.Refresh(context.Background()))

	sess, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, "at-new", sess.AccessToken)
	assert.Equal(t, "rt-keep", sess.RefreshToken)
}

func TestRefresh_WithoutRefreshToken(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at-old"}))
	m := NewManager(ManagerConfig{API: newScriptedTransport(), Store: store})

	err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshFailed)
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefresh_EmptyResponse(t *testing.T) {
	api := newScriptedTransport()
	api.responses[client.PathRefresh] = []byte(`{"success":true}`)

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at-old", RefreshToken: "rt-old"}))
	m := NewManager(ManagerConfig{API: api, Store: store})

	err := m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshFailed)
	assert.ErrorIs(t, err, ErrNoTokenInResponse)
}

func TestRefresh_SingleFlight(t *testing.T) {
	api := newScriptedTransport()
	api.responses[client.PathRefresh] = []byte(`{"access_token":"at-new","refresh_token":"rt-new"}`)
	release := make(chan struct{})
	api.blockOn[client.PathRefresh] = release

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at-old", RefreshToken: "rt-old"}))
	m := NewManager(ManagerConfig{API: api, Store: store})

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.Refresh(context.Background())
		}(i)
	}

	// Wait for the first flight to reach the transport, give the rest time
	// to queue behind it, then let it finish.
	for api.callCount(client.PathRefresh) == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, 1, api.callCount(client.PathRefresh), "queued callers share the first flight")
	assert.Equal(t, "at-new", m.AccessToken())
}

func TestLogout_RevokesAndClears(t *testing.T) {
	api := newScriptedTransport()
	api.responses[client.PathLogout] = []byte(`{"success":true}`)

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at", RefreshToken: "rt"}))
	m := NewManager(ManagerConfig{API: api, Store: store})

	m.Logout(context.Background())

	assert.Equal(t, 1, api.callCount(client.PathLogout))
	assert.False(t, m.IsAuthenticated())
	sess, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.RefreshToken)
}

func TestLogout_NetworkFailureStillClears(t *testing.T) {
	api := newScriptedTransport()
	api.errs[client.PathLogout] = fmt.Errorf("dial tcp: connection refused")

	store := NewMemoryStore()
	require.NoError(t, store.Save(Session{AccessToken: "at"}))
	m := NewManager(ManagerConfig{API: api, Store: store})

	m.Logout(context.Background())

	assert.False(t, m.IsAuthenticated())
}

func TestLogout_AnonymousSkipsRequest(t *testing.T) {
	api := newScriptedTransport()
	m := newTestManager(api)

	m.Logout(context.Background())

	assert.Equal(t, 0, api.callCount(client.PathLogout))
	assert.False(t, m.IsAuthenticated())
}

func TestExpire_FiresHookOnlyWhenAuthenticated(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		fired := 0
		store := NewMemoryStore()
		require.NoError(t, store.Save(Session{AccessToken: "at"}))
		m := NewManager(ManagerConfig{
			API:       newScriptedTransport(),
			Store:     store,
			OnExpired: func() { fired++ },
		})

		m.Expire()
		assert.Equal(t, 1, fired)
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("anonymous", func(t *testing.T) {
		fired := 0
		m := NewManager(ManagerConfig{
			API:       newScriptedTransport(),
			Store:     NewMemoryStore(),
			OnExpired: func() { fired++ },
		})

		m.Expire()
		assert.Equal(t, 0, fired, "a failed login is not an expiry")
	})
}

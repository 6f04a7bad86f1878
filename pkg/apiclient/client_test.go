package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/apiclient"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	removed int
}

func (f *fakeTokens) Token() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeTokens) RemoveToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.removed++
}

func (f *fakeTokens) removedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.removed
}

type fakeNav struct {
	mu      sync.Mutex
	current string
	pushes  []string
	queries []url.Values
}

func (f *fakeNav) CurrentPath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeNav) Push(path string, query url.Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = path
	f.pushes = append(f.pushes, path)
	f.queries = append(f.queries, query)
}

func TestRequestDecoration(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		captured http.Header
		method   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		captured = r.Header.Clone()
		method = r.Method
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "tok-123"}
	client, err := apiclient.New(srv.URL,
		apiclient.WithTokenSource(tokens),
		apiclient.WithClock(func() time.Time { return time.UnixMilli(1700000000000) }),
	)
	require.NoError(t, err)

	t.Run("post carries all headers", func(t *testing.T) {
		require.NoError(t, client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, nil))

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "Bearer tok-123", captured.Get("Authorization"))
		assert.Equal(t, "application/json", captured.Get("Content-Type"))
		assert.Equal(t, "XMLHttpRequest", captured.Get("X-Requested-With"))
		assert.Equal(t, "1700000000000", captured.Get("X-Timestamp"))
		_, err := uuid.Parse(captured.Get("X-Request-ID"))
		assert.NoError(t, err, "X-Request-ID must be a UUID")
	})

	t.Run("get carries no timestamp", func(t *testing.T) {
		require.NoError(t, client.Get(context.Background(), "/auth/verify", nil))

		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, captured.Get("X-Timestamp"))
		assert.Equal(t, "Bearer tok-123", captured.Get("Authorization"))
	})

	t.Run("no authorization without token", func(t *testing.T) {
		tokens.RemoveToken()
		require.NoError(t, client.Get(context.Background(), "/health", nil))

		mu.Lock()
		defer mu.Unlock()
		assert.Empty(t, captured.Get("Authorization"))
	})
}

func TestUnauthorizedForcesLogout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	t.Run("clears token and redirects once", func(t *testing.T) {
		t.Parallel()
		tokens := &fakeTokens{token: "stale"}
		nav := &fakeNav{current: "/dashboard"}
		client, err := apiclient.New(srv.URL,
			apiclient.WithTokenSource(tokens),
			apiclient.WithNavigator(nav),
		)
		require.NoError(t, err)

		err = client.Get(context.Background(), "/auth/verify", nil)
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "token expired", apiErr.Message)

		assert.Equal(t, 1, tokens.removedCount())
		require.Len(t, nav.pushes, 1)
		assert.Equal(t, "/sign-in", nav.pushes[0])
		assert.Equal(t, "token-invalid", nav.queries[0].Get("notification"))
		assert.Equal(t, "error", nav.queries[0].Get("notificationType"))
	})

	t.Run("no redirect when already on login route", func(t *testing.T) {
		t.Parallel()
		tokens := &fakeTokens{token: "stale"}
		nav := &fakeNav{current: "/sign-in"}
		client, err := apiclient.New(srv.URL,
			apiclient.WithTokenSource(tokens),
			apiclient.WithNavigator(nav),
		)
		require.NoError(t, err)

		err = client.Post(context.Background(), "/auth/login", map[string]string{}, nil)
		require.ErrorIs(t, err, apiclient.ErrUnauthorized)

		assert.Equal(t, 1, tokens.removedCount())
		assert.Empty(t, nav.pushes)
	})
}

func TestStatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusForbidden, apiclient.ErrForbidden},
		{http.StatusNotFound, apiclient.ErrNotFound},
		{http.StatusUnprocessableEntity, apiclient.ErrValidation},
		{http.StatusTooManyRequests, apiclient.ErrRateLimited},
		{http.StatusInternalServerError, apiclient.ErrServer},
		{http.StatusBadGateway, apiclient.ErrServer},
		{http.StatusServiceUnavailable, apiclient.ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer srv.Close()

			tokens := &fakeTokens{token: "tok"}
			client, err := apiclient.New(srv.URL, apiclient.WithTokenSource(tokens))
			require.NoError(t, err)

			err = client.Get(context.Background(), "/x", nil)
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *apiclient.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Message)

			// Only 401 touches the credential.
			assert.Equal(t, 0, tokens.removedCount())
		})
	}
}

func TestSuccessDecoding(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"1","name":"Ana"}}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	var out struct {
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, client.Get(context.Background(), "/auth/verify", &out))
	assert.Equal(t, "Ana", out.User.Name)
}

func TestInvalidResponseBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	var out map[string]any
	err = client.Get(context.Background(), "/x", &out)
	require.ErrorIs(t, err, apiclient.ErrInvalidResponse)
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	err = client.Get(context.Background(), "/slow", nil)
	require.ErrorIs(t, err, apiclient.ErrTimeout)
}

func TestTimeoutWhileOffline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL,
		apiclient.WithTimeout(50*time.Millisecond),
		apiclient.WithConnectivityProbe(func() bool { return false }),
	)
	require.NoError(t, err)

	// Offline wins over the timeout shape of the failure.
	err = client.Get(context.Background(), "/slow", nil)
	require.ErrorIs(t, err, apiclient.ErrOffline)
}

func TestTransportFailure(t *testing.T) {
	t.Parallel()

	// A server that is immediately closed yields connection-refused errors.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	t.Run("offline", func(t *testing.T) {
		t.Parallel()
		client, err := apiclient.New(srv.URL, apiclient.WithConnectivityProbe(func() bool { return false }))
		require.NoError(t, err)

		err = client.Get(context.Background(), "/x", nil)
		require.ErrorIs(t, err, apiclient.ErrOffline)
	})

	t.Run("online but unreachable", func(t *testing.T) {
		t.Parallel()
		client, err := apiclient.New(srv.URL)
		require.NoError(t, err)

		err = client.Get(context.Background(), "/x", nil)
		require.ErrorIs(t, err, apiclient.ErrNetwork)
	})
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := apiclient.New("not a url")
	require.Error(t, err)
}

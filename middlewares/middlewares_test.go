package middlewares

import (
	"context"
	"dashboard/schemas"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryUserCache struct {
	mu    sync.Mutex
	users map[string]*schemas.User
}

func newMemoryUserCache() *memoryUserCache {
	return &memoryUserCache{users: map[string]*schemas.User{}}
}

func (c *memoryUserCache) Get(ctx context.Context, token string) (*schemas.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	user, ok := c.users[token]
	return user, ok
}

func (c *memoryUserCache) Set(ctx context.Context, token string, user *schemas.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[token] = user
}

func newAuthServer(t *testing.T, calls *atomic.Int32, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAuthPutsUserInContextAndCaches(t *testing.T) {
	var calls atomic.Int32
	server := newAuthServer(t, &calls, `{"id":"u1","name":"Ana","email":"ana@example.com","publicMetadata":{"is_admin":true}}`)
	auth := NewAuthenticator(server.URL, newMemoryUserCache(), zap.NewNop().Sugar())

	handler := auth.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u1", user.ID)
		assert.True(t, user.PublicMetadata.IsAdmin)
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/v1/funnels", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestAuthRejectsMissingAndInvalidToken(t *testing.T) {
	var calls atomic.Int32
	server := newAuthServer(t, &calls, `{}`)
	auth := NewAuthenticator(server.URL, newMemoryUserCache(), zap.NewNop().Sugar())
	handler := auth.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/funnels", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, int32(0), calls.Load())

	req := httptest.NewRequest(http.MethodGet, "/v1/funnels", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenFromQueryForWebsockets(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/ws/funnels/F1?token=abc", nil)
	assert.Equal(t, "Bearer abc", TokenFromRequest(req))
}

func TestRequireAdmin(t *testing.T) {
	var reached atomic.Int32
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached.Add(1)
		w.WriteHeader(http.StatusOK)
	}))

	for name, user := range map[string]schemas.User{
		"no metadata": {ID: "u1"},
		"not admin":   {ID: "u2", PublicMetadata: schemas.PublicMetadata{IsAdmin: false}},
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserContextKey, user))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			body := schemas.ApiResponse{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]any{"accessDenied": true, "redirect": "/"}, body.Data)
		})
	}
	assert.Equal(t, int32(0), reached.Load())

	req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
	admin := schemas.User{ID: "u3", PublicMetadata: schemas.PublicMetadata{IsAdmin: true}}
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, admin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCorsPreflight(t *testing.T) {
	handler := Cors("https://app.example.com", true)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/funnels", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogSetsRequestID(t *testing.T) {
	var seen string
	handler := RequestLog(zap.NewNop().Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/funnels", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(REQUEST_ID_HEADER))

	req := httptest.NewRequest(http.MethodGet, "/v1/funnels", nil)
	req.Header.Set(REQUEST_ID_HEADER, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "req-1", seen)
}

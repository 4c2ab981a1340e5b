package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/fieldwork/internal/audit"
	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/middleware"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := tokens.Generate(userID, "ana@example.test")
	require.NoError(t, err)

	var seen uuid.UUID
	handler := middleware.AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.token", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, want: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, userID, seen)
}

func TestRequestInfo(t *testing.T) {
	var info audit.RequestInfo
	handler := chimw.RequestID(middleware.RequestInfo(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info = audit.RequestInfoFromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/trips", nil)
	req.RemoteAddr = "10.0.0.7:5123"
	req.Header.Set("User-Agent", "fieldctl/1.0")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEmpty(t, info.RequestID)
	assert.Equal(t, "10.0.0.7:5123", info.ClientIP)
	assert.Equal(t, "fieldctl/1.0", info.UserAgent)
}

func TestRateLimiter(t *testing.T) {
	rl := middleware.NewRateLimiter(2)
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

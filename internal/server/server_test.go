package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-profiles/internal/server/ratelimit"
	"github.com/jonathan/talent-profiles/internal/types"
)

func TestWithCORS(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeBuilder{}, nil)
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/profiles", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithCORSPreflight(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeBuilder{}, nil)
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/import-profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithRateLimit(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeBuilder{}, nil)
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Rules: []ratelimit.Rule{
			{
				Tier:   ratelimit.TierAggregation,
				Path:   "/import-profile",
				Method: "POST",
				Quota:  ratelimit.Quota{Limit: 2, Window: time.Hour, Burst: 2},
			},
		},
	})
	defer s.rateLimiter.Stop()

	handler := s.withRateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/import-profile", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	req := httptest.NewRequest("POST", "/import-profile", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeBuilder{}, nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.5:51234"
	assert.Equal(t, "192.168.1.5", s.extractClientID(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", s.extractClientID(req))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Invalid request", &types.InvalidRequestError{Message: "bad"}, http.StatusBadRequest},
		{"Unsupported kind", &types.UnsupportedSourceKindError{Kind: "instagram"}, http.StatusBadRequest},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

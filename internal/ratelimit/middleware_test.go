package ratelimit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
}

func TestMiddlewareAllowsThenRejects(t *testing.T) {
	log, _ := test.NewNullLogger()
	denied := 0
	h := Middleware(Options{
		Limiter: New(NewMemoryStore(), 1, time.Minute),
		Logger:  log,
		OnDenied: func(w http.ResponseWriter, r *http.Request, d Decision) {
			denied++
			w.WriteHeader(http.StatusTooManyRequests)
		},
	})(okHandler())

	r1 := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	r1.RemoteAddr = "10.0.0.1:1234"
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "1", w1.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w1.Header().Get("X-RateLimit-Remaining"))

	r2 := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	r2.RemoteAddr = "10.0.0.1:5678"
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
	assert.Equal(t, "60", w2.Header().Get("Retry-After"))
	assert.Equal(t, 1, denied)
}

func TestMiddlewareFailsOpen(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := Middleware(Options{Limiter: New(failingStore{}, 1, time.Minute), Logger: log})(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "rate limit check failed", hook.LastEntry().Message)
}

func TestMiddlewareDefaultRejection(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := Middleware(Options{Limiter: New(NewMemoryStore(), 1, time.Minute), Logger: log})(okHandler())

	for _, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, want, w.Code)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:4000"
	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")

	assert.Equal(t, "192.0.2.10", ClientIP(r, false))
	assert.Equal(t, "203.0.113.5", ClientIP(r, true))

	r.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", ClientIP(r, false))

	r.RemoteAddr = ""
	assert.Equal(t, "unknown", ClientIP(r, false))
}

func TestRetryAfterSecondsRoundsUp(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 2, retryAfterSeconds(1500*time.Millisecond))
}

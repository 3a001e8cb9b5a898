package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"leadcapture/internal/metrics"
)

// KeyFunc extracts the limiter key from a request.
type KeyFunc func(r *http.Request) string

// Options configures Middleware.
type Options struct {
	Limiter            *Limiter
	KeyFn              KeyFunc
	TrustXForwardedFor bool
	// OnDenied writes the rejection. The default is a plain 429.
	OnDenied func(w http.ResponseWriter, r *http.Request, d Decision)
	Logger   logrus.FieldLogger
}

// ClientIP returns the caller's address: the first X-Forwarded-For hop when
// trustXFF is set, otherwise the host part of RemoteAddr.
func ClientIP(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// DefaultKeyFunc keys requests by client IP.
func DefaultKeyFunc(trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		return ClientIP(r, trustXFF)
	}
}

// Middleware rejects requests over the limit. Limiter failures let the request
// through and are logged.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.TrustXForwardedFor)
	}
	if opts.OnDenied == nil {
		opts.OnDenied = func(w http.ResponseWriter, r *http.Request, d Decision) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	log := opts.Logger.WithField("component", "ratelimit")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			dec, err := opts.Limiter.Allow(r.Context(), key)
			metrics.RecordRateLimit(dec.Allowed, err)
			if err != nil {
				log.WithError(err).WithField("key", key).Error("rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			if !dec.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(dec.RetryAfter)))
				log.WithField("key", key).Warn("rate limit exceeded")
				opts.OnDenied(w, r, dec)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(d time.Duration) int {
	return max(int(math.Ceil(d.Seconds())), 1)
}

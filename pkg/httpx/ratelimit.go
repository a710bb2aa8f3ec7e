package httpx

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coffeelux/auth/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// Common rate limit profiles for different endpoint types.
// These can be overridden via environment variables (see init() below).
var (
	// StrictLimit for credential and OTP endpoints (brute force prevention).
	// Override with: RATELIMIT_STRICT_REQUESTS, RATELIMIT_STRICT_WINDOW_SEC, RATELIMIT_STRICT_BURST
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	// ModerateLimit for recovery-flow pages and resends.
	// Override with: RATELIMIT_MODERATE_REQUESTS, RATELIMIT_MODERATE_WINDOW_SEC, RATELIMIT_MODERATE_BURST
	ModerateLimit = RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		Burst:             20,
	}

	// LenientLimit for authenticated pages and health probes.
	// Override with: RATELIMIT_LENIENT_REQUESTS, RATELIMIT_LENIENT_WINDOW_SEC, RATELIMIT_LENIENT_BURST
	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

func init() {
	// Allow overriding rate limits via environment variables (useful for testing)
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
}

// ParseRateLimitFromEnv reads rate limit configuration from environment
// variables following the pattern RATELIMIT_{prefix}_{field}.
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if requests, err := strconv.Atoi(val); err == nil && requests > 0 {
			config.RequestsPerWindow = requests
		}
	}

	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if windowSec, err := strconv.Atoi(val); err == nil && windowSec > 0 {
			config.Window = time.Duration(windowSec) * time.Second
		}
	}

	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if burst, err := strconv.Atoi(val); err == nil && burst > 0 {
			config.Burst = burst
		}
	}

	return config
}

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes (e.g., IP address, form field, session user).
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP address from the request.
// It handles X-Forwarded-For and X-Real-IP headers for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// UserKeyExtractor extracts the resolved identity from the request context.
// Returns empty string for unauthenticated requests.
func UserKeyExtractor(r *http.Request) string {
	return userKeyFromCtx(r.Context())
}

// CompositeKeyExtractor combines multiple key extractors with a separator.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// FormFieldKeyExtractor extracts a key from a form field (works for both GET and POST).
// Use this for extracting email etc. from request parameters.
func FormFieldKeyExtractor(fieldName string) KeyExtractor {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err == nil {
			return r.FormValue(fieldName)
		}
		return ""
	}
}

// rateLimiter manages rate limiters for different keys
type rateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	mu       sync.Mutex
	// Cleanup old limiters periodically
	lastCleanup time.Time
}

// getLimiter retrieves or creates a rate limiter for the given key
func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	// Fast path: limiter already exists
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	actual, _ := rl.limiters.LoadOrStore(key, limiter)

	rl.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup removes limiters that haven't been used recently so ephemeral
// keys don't accumulate forever.
func (rl *rateLimiter) maybeCleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if time.Since(rl.lastCleanup) < 5*time.Minute {
		return
	}

	rl.lastCleanup = time.Now()

	// A limiter with a full token bucket has been idle for at least a window.
	rl.limiters.Range(func(key, value any) bool {
		limiter := value.(*rate.Limiter)
		if limiter.Tokens() >= float64(rl.burst) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware creates a rate limiting middleware with the given configuration.
// The keyExtractor determines how requests are grouped for rate limiting.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	ratePerSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	rl := &rateLimiter{
		rate:        rate.Limit(ratePerSecond),
		burst:       config.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			key := keyExtractor(r)
			if key == "" {
				// If we can't extract a key, allow the request but log it
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			limiter := rl.getLimiter(key)

			if !limiter.Allow() {
				// Calculate retry-after (when the next token will be available)
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel() // Don't actually consume the reservation

				retryAfter := max(int(delay.Seconds()), 1)

				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				http.Error(w, "Too many requests. Please try again later.",
					http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP creates a rate limiter that limits by IP address only.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByUser creates a rate limiter keyed on the authenticated identity
// from the request context. Requests carrying no identity are allowed
// through, so this belongs on routes behind the session gate.
func RateLimitByUser(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, UserKeyExtractor)
}

// RateLimitByIPAndFormField creates a rate limiter that limits by IP + form field.
// Useful for limiting login attempts by IP + email.
func RateLimitByIPAndFormField(config RateLimitConfig, fieldName string) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		IPKeyExtractor,
		FormFieldKeyExtractor(fieldName),
	))
}

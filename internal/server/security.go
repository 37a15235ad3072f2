package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// rateLimitMax requests per rateLimitWindow per client IP.
	rateLimitMax    = 1000
	rateLimitWindow = 5 * time.Minute
)

// RequestSizeLimitMiddleware caps request body size with MaxBytesReader.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter counts requests per client IP over a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	byIP    map[string]int
	resetAt time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		byIP:    make(map[string]int),
		resetAt: time.Now().Add(rateLimitWindow),
	}
}

// Allow records a request for ip and reports whether it stays under the
// window limit.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now := time.Now(); now.After(l.resetAt) {
		l.byIP = make(map[string]int)
		l.resetAt = now.Add(rateLimitWindow)
	}

	l.byIP[ip]++
	count := l.byIP[ip]
	if count <= rateLimitMax {
		return true
	}

	// Log every 100th rejection to keep a flood from flooding the logs too.
	if count%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

// RateLimitMiddleware rejects clients that exceed the per-IP request rate.
func RateLimitMiddleware(trustedProxies []string, limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)
			if !limiter.Allow(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the client address, honoring X-Forwarded-For only when
// the direct peer is a trusted proxy. The rightmost entry is used since that
// is the hop the trusted proxy actually saw.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			// Prevent clickjacking
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			// Enable XSS protection (for older browsers)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			// Control referrer information
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

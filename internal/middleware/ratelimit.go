package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type window struct {
	hits    int
	resetAt time.Time
}

type clientLimiter struct {
	mu     sync.Mutex
	limit  int
	period time.Duration
	seen   map[string]*window
}

func (l *clientLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	w, ok := l.seen[ip]
	if !ok || now.After(w.resetAt) {
		l.seen[ip] = &window{hits: 1, resetAt: now.Add(l.period)}
		return true
	}
	if w.hits >= l.limit {
		return false
	}
	w.hits++
	return true
}

// RateLimit caps requests per client IP over a fixed window. Windows reset
// wholesale rather than sliding, which is enough to blunt scripted abuse of
// the auth and notification fan-out endpoints.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	l := &clientLimiter{limit: limit, period: per, seen: make(map[string]*window)}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP trusts the first parseable X-Forwarded-For hop, then the socket
// peer.
func clientIP(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := strings.TrimSpace(part); ip != "" && net.ParseIP(ip) != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}

package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

// CallerRateLimiter hands out one token bucket per caller key.
type CallerRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

func NewCallerRateLimiter(r rate.Limit, b int) *CallerRateLimiter {
	return &CallerRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *CallerRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	return limiter
}

// RateLimit keys on the caller's employee id, or the remote IP when no scope is on the request.
func (l *CallerRateLimiter) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + remoteIP(r)
		if scope, err := identity.FromContext(r.Context()); err == nil {
			key = "employee:" + scope.EmployeeID
		}

		if !l.limiter(key).Allow() {
			response.TooManyRequests(w, "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

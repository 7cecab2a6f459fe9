package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential attempts per client IP. Entries are
// created on first sight and never expire; the map stays small because the
// keyspace is the set of IPs that ever tried to log in.
type LoginRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewLoginRateLimiter(rps float64, burst int) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *LoginRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// Handler wraps an endpoint with the per-IP limit.
func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !l.limiterFor(ip).Allow() {
			response.TooManyRequests(w, "Too many login attempts, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

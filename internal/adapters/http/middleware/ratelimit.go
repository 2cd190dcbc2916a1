package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/auditforce/internal/adapters/http/dto"
)

// clientIdleTTL is how long an idle client's bucket is kept.
const clientIdleTTL = 5 * time.Minute

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiter holds one token bucket per client address.
type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	rps       rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func (l *limiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > clientIdleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > clientIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[client] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// RateLimit returns middleware that applies a token bucket of rps requests
// per second with the given burst to each client address. Rejected requests
// receive an RFC 9457 429 response. A non-positive rps disables limiting.
// The client address is the TCP peer unless trustProxy is set, in which case
// the first X-Forwarded-For entry is used.
func RateLimit(rps float64, burst int, trustProxy bool) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &limiter{
		buckets: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   max(burst, 1),
		now:     time.Now,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r, trustProxy)) {
				w.Header().Set("Retry-After", "1")
				dto.WriteErrorResponse(w, r, dto.ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote host, or the first X-Forwarded-For address
// when trustProxy is set.
func clientIP(r *http.Request, trustProxy bool) string {
	if xff := r.Header.Get("X-Forwarded-For"); trustProxy && xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bryanmylee/LetsMeetService/internal/api/http/handler"
)

const (
	bucketTTL     = 5 * time.Minute
	pruneInterval = time.Minute
)

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter is a token bucket per client IP for the credential endpoints.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSecond rate.Limit
	burst     int
	trusted   []netip.Prefix
	now       func() time.Time
}

// NewRateLimiter builds a limiter. X-Forwarded-For is only honored on
// connections from trustedProxies.
func NewRateLimiter(perSecond float64, burst int, trustedProxies []netip.Prefix) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		trusted:   trustedProxies,
		now:       time.Now,
	}
}

// Run prunes idle buckets until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.prune()
		}
	}
}

func (l *RateLimiter) prune() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.buckets {
		if now.Sub(b.seen) > bucketTTL {
			delete(l.buckets, k)
		}
	}
}

// Reserve reports whether ip may proceed and, if not, how long to wait.
func (l *RateLimiter) Reserve(ip string) (bool, time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.perSecond, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now

	if b.lim.AllowN(now, 1) {
		return true, 0
	}
	if l.perSecond <= 0 {
		return false, time.Second
	}
	return false, time.Duration(float64(time.Second) / float64(l.perSecond))
}

// Handle rejects requests over the limit with 429 and a Retry-After header.
func (l *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := l.Reserve(l.clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			handler.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the peer address, or, when the peer is a trusted proxy, the
// right-most X-Forwarded-For entry that is not itself a trusted proxy.
func (l *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteIP(r)
	addr, err := netip.ParseAddr(remote)
	if err != nil || !l.isTrusted(addr) {
		return remote
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		hopAddr, err := netip.ParseAddr(hop)
		if err != nil {
			return remote
		}
		if !l.isTrusted(hopAddr) {
			return hopAddr.Unmap().String()
		}
	}
	return remote
}

func (l *RateLimiter) isTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range l.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return host
}

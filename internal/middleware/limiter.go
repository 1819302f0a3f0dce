package middleware

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"travel-admin/internal/auth"
	"travel-admin/internal/utils"

	"golang.org/x/time/rate"
)

// Tier is one rate limit policy.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

// Rate Limit Tiers
var (
	// Login (Strict)
	Strict = Tier{Name: "strict", Limit: rate.Limit(2), Burst: 5}

	// General (Default)
	General = Tier{Name: "general", Limit: rate.Limit(10), Burst: 20}
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per identity and tier.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idle     time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewLimiter starts the background cleanup routine; Close stops it.
func NewLimiter(idle time.Duration) *Limiter {
	if idle <= 0 {
		idle = 3 * time.Minute
	}
	l := &Limiter{
		visitors: make(map[string]*visitor),
		idle:     idle,
		done:     make(chan struct{}),
	}
	go l.cleanupVisitors()
	return l
}

func (l *Limiter) Close() {
	l.once.Do(func() { close(l.done) })
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, tier Tier) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(tier.Limit, tier.Burst)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes idle entries from the visitors map to prevent memory leaks.
func (l *Limiter) cleanupVisitors() {
	ticker := time.NewTicker(l.idle / 3)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evict(time.Now())
		}
	}
}

func (l *Limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Middleware checks if the request is allowed by the limiter for tier.
func (l *Limiter) Middleware(tier Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Combine for final bucket key (e.g., "user:admin:strict")
			// This ensures the same user has separate quotas for strict vs general actions.
			key := fmt.Sprintf("%s:%s", identity(r), tier.Name)

			if !l.getVisitor(key, tier).Allow() {
				utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func identity(r *http.Request) string {
	// Prefer the session user if authenticated
	if sess, ok := auth.FromCtx(r.Context()); ok && sess.Username != "" {
		return "user:" + sess.Username
	}
	// Use Device ID if provided by the client
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	// Fallback to IP for anonymous requests
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

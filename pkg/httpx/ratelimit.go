package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"
	"golang.org/x/time/rate"
)

// Limit is a token bucket profile: Requests per Window, refilled evenly,
// with up to Burst requests allowed back to back.
type Limit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Every returns the interval between refilled tokens.
func (l Limit) Every() rate.Limit {
	if l.Requests <= 0 || l.Window <= 0 {
		return rate.Inf
	}
	return rate.Every(l.Window / time.Duration(l.Requests))
}

var (
	// StrictLimit guards the credential check against brute force.
	// Override with RATELIMIT_STRICT_REQUESTS, _WINDOW_SEC, _BURST.
	StrictLimit = Limit{Requests: 5, Window: time.Minute, Burst: 5}

	// ReadLimit is applied per user on authenticated endpoints.
	// Override with RATELIMIT_READ_REQUESTS, _WINDOW_SEC, _BURST.
	ReadLimit = Limit{Requests: 300, Window: time.Minute, Burst: 300}

	// WriteLimit is applied per user on mutating endpoints.
	// Override with RATELIMIT_WRITE_REQUESTS, _WINDOW_SEC, _BURST.
	WriteLimit = Limit{Requests: 60, Window: time.Minute, Burst: 20}
)

func init() {
	StrictLimit = LimitFromEnv("STRICT", StrictLimit)
	ReadLimit = LimitFromEnv("READ", ReadLimit)
	WriteLimit = LimitFromEnv("WRITE", WriteLimit)
}

// LimitFromEnv overlays RATELIMIT_{prefix}_{REQUESTS|WINDOW_SEC|BURST} on def.
// Non-positive or unparsable values are ignored.
func LimitFromEnv(prefix string, def Limit) Limit {
	l := def
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		l.Requests = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		l.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_BURST"); ok {
		l.Burst = n
	}
	return l
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyFunc groups requests into buckets. An empty key bypasses the limiter.
type KeyFunc func(*http.Request) string

// ClientIP uses the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AuthenticatedUser keys by the principal set by AuthnMiddleware.
func AuthenticatedUser(r *http.Request) string {
	u, _ := UserFromContext(r.Context())
	return u
}

// QueryParam keys by a query string parameter, e.g. the login user name.
func QueryParam(name string) KeyFunc {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}

// JoinKeys concatenates the non-empty keys of fns with sep.
func JoinKeys(sep string, fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, sep)
	}
}

const sweepInterval = 5 * time.Minute

type buckets struct {
	limit Limit
	every rate.Limit

	m sync.Map // key -> *rate.Limiter

	mu        sync.Mutex
	lastSweep time.Time
}

func (b *buckets) get(key string) *rate.Limiter {
	if l, ok := b.m.Load(key); ok {
		return l.(*rate.Limiter)
	}
	// Sweep before storing: a new bucket is full and would be swept at once.
	b.sweep()
	l, _ := b.m.LoadOrStore(key, rate.NewLimiter(b.every, b.limit.Burst))
	return l.(*rate.Limiter)
}

// sweep drops buckets that have refilled completely, i.e. idle keys.
func (b *buckets) sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if time.Since(b.lastSweep) < sweepInterval {
		return
	}
	b.lastSweep = time.Now()
	b.m.Range(func(k, v any) bool {
		if v.(*rate.Limiter).Tokens() >= float64(b.limit.Burst) {
			b.m.Delete(k)
		}
		return true
	})
}

// RateLimit rejects requests beyond limit per key with 429 and Retry-After.
func RateLimit(limit Limit, key KeyFunc) Middleware {
	b := &buckets{limit: limit, every: limit.Every(), lastSweep: time.Now()}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			l := b.get(k)
			if l.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Reserve()
			wait := res.Delay()
			res.Cancel()
			retry := max(int(wait.Round(time.Second)/time.Second), 1)

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
			w.Header().Set("X-RateLimit-Window", limit.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"path", r.URL.Path,
				"retry_after", retry,
			)
			WriteMessage(w, http.StatusTooManyRequests, "too many requests, try again later")
		})
	}
}

// RateLimitLogin limits credential checks per client IP and user name.
func RateLimitLogin(limit Limit, userParam string) Middleware {
	return RateLimit(limit, JoinKeys(":", ClientIP, QueryParam(userParam)))
}

// RateLimitByUser limits authenticated traffic per principal, falling back
// to the client IP.
func RateLimitByUser(limit Limit) Middleware {
	return RateLimit(limit, func(r *http.Request) string {
		if u := AuthenticatedUser(r); u != "" {
			return "user:" + u
		}
		return "ip:" + ClientIP(r)
	})
}

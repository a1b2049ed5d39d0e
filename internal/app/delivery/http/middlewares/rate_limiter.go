package middlewares

import (
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// visitorIdleTTL is how long an unblocked client is remembered after its
// last request.
const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter      *rate.Limiter
	lastSeen     time.Time
	blockedUntil time.Time
}

// RateLimiter is a per-IP token bucket. A client that empties its bucket is
// blocked for blockTime and then starts again with a full one.
type RateLimiter struct {
	log       *zap.Logger
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
}

func NewRateLimiter(log *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	return &RateLimiter{
		log:       log,
		visitors:  make(map[string]*visitor),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
	}
}

// LoginRateLimiter throttles sign-in attempts using the App login settings.
func (m *Middlewares) LoginRateLimiter() *RateLimiter {
	attempts := m.InternalConfig.App.LoginMaxAttemptsPerMinute
	if attempts <= 0 {
		attempts = 5
	}
	return NewRateLimiter(
		m.Log,
		attempts,
		time.Minute/time.Duration(attempts),
		time.Duration(m.InternalConfig.App.LoginBlockTimeInMinutes)*time.Minute,
	)
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if retryAfter, allowed := r.allow(ip); !allowed {
			r.log.Warn("RateLimiter rejected request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
				zap.String("ip", ip),
				zap.Duration("retry_after", retryAfter),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}

		next.ServeHTTP(w, req)
	})
}

// allow reports whether ip may proceed, and otherwise how long it stays blocked.
func (r *RateLimiter) allow(ip string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	v, found := r.visitors[ip]
	if found && now.Before(v.blockedUntil) {
		return v.blockedUntil.Sub(now), false
	}
	if !found || !v.blockedUntil.IsZero() {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(r.per), r.requests)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	if !v.limiter.AllowN(now, 1) {
		v.blockedUntil = now.Add(r.blockTime)
		return r.blockTime, false
	}
	return 0, true
}

func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < time.Minute {
		return
	}
	r.lastSweep = now
	for ip, v := range r.visitors {
		if now.After(v.blockedUntil) && now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(r.visitors, ip)
		}
	}
}

// Package ratelimit throttles document generation per client with token buckets.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Rule limits requests whose method matches and whose path starts with Prefix.
// A Limit of zero or less means unlimited.
type Rule struct {
	Method string
	Prefix string
	Limit  int
	Window time.Duration
	Burst  int
}

// Info describes the state of the bucket that served a request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	last       time.Time
}

func (b *bucket) take(now time.Time) bool {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.refillRate)
	b.last = now
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *bucket) wait() time.Duration {
	if b.tokens >= 1 || b.refillRate <= 0 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
}

// Limiter keeps one bucket per client and rule.
type Limiter struct {
	cfg     Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a limiter. A zero Config disables limiting.
func NewLimiter(cfg Config) *Limiter {
	return &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Match returns the first rule for the request, falling back to the default rule.
func (c Config) Match(method, path string) Rule {
	if path == "/health" {
		return Rule{}
	}
	for _, r := range c.Rules {
		if r.Method == method && strings.HasPrefix(path, r.Prefix) {
			return r
		}
	}
	return Rule{Method: method, Prefix: "", Limit: c.DefaultLimit, Window: c.DefaultWindow}
}

// Allow consumes a token for the client if one is available.
func (l *Limiter) Allow(clientID, method, path string) Info {
	if !l.cfg.Enabled || l.cfg.Trusted[clientID] {
		return Info{Allowed: true}
	}

	rule := l.cfg.Match(method, path)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Info{Allowed: true}
	}

	key := clientID + " " + rule.Method + " " + rule.Prefix
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = &bucket{
			capacity:   float64(capacity),
			refillRate: float64(rule.Limit) / rule.Window.Seconds(),
			tokens:     float64(capacity),
			last:       now,
		}
		l.buckets[key] = b
	}

	allowed := b.take(now)
	info := Info{Allowed: allowed, Limit: rule.Limit, Remaining: int(b.tokens)}
	if !allowed {
		info.RetryAfter = b.wait()
	}
	return info
}

// Prune drops buckets that have refilled completely; they carry no state.
func (l *Limiter) Prune() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.tokens+now.Sub(b.last).Seconds()*b.refillRate >= b.capacity {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

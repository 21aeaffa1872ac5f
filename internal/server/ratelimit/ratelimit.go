// Package ratelimit throttles the API's expensive operations. Aggregation
// runs and vision calls each burn external-source fetches and AI quota, so
// every client gets one token bucket per metered endpoint.
package ratelimit

import (
	"sync"
	"time"
)

// bucketIdleTTL is how long a client's bucket may sit unused before the
// sweeper reclaims it.
const bucketIdleTTL = time.Hour

// bucket is a token bucket refilled continuously at the quota's steady
// rate. All time arithmetic takes an explicit clock reading so the refill
// behavior is testable without sleeping.
type bucket struct {
	mu       sync.Mutex
	level    float64
	capacity float64
	perSec   float64
	tickedAt time.Time
	seenAt   time.Time
}

func newBucket(q Quota, now time.Time) *bucket {
	capacity := q.Burst
	if capacity <= 0 {
		capacity = q.Limit
	}
	return &bucket{
		level:    float64(capacity),
		capacity: float64(capacity),
		perSec:   float64(q.Limit) / q.Window.Seconds(),
		tickedAt: now,
		seenAt:   now,
	}
}

// takeResult reports one spend attempt: whether it was granted, the whole
// tokens left, when the bucket is full again, and how long a denied caller
// must wait for the next token.
type takeResult struct {
	allowed   bool
	remaining int
	fullAt    time.Time
	retryIn   time.Duration
}

// take refills the bucket for the time elapsed since the last call, then
// tries to spend one token.
func (b *bucket) take(now time.Time) takeResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.level += now.Sub(b.tickedAt).Seconds() * b.perSec
	if b.level > b.capacity {
		b.level = b.capacity
	}
	b.tickedAt = now
	b.seenAt = now

	res := takeResult{}
	if b.level >= 1 {
		b.level--
		res.allowed = true
	} else {
		res.retryIn = time.Duration((1 - b.level) / b.perSec * float64(time.Second))
	}

	res.remaining = int(b.level)
	res.fullAt = now
	if missing := b.capacity - b.level; missing > 0 {
		res.fullAt = now.Add(time.Duration(missing / b.perSec * float64(time.Second)))
	}
	return res
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seenAt.Before(cutoff)
}

// Info carries the rate limit state exposed through response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter meters requests per client and endpoint. Buckets are created
// lazily on first use and swept once idle past bucketIdleTTL.
type Limiter struct {
	cfg *Config

	mu      sync.Mutex
	buckets map[string]*bucket

	done chan struct{}
}

// NewLimiter creates a limiter. A nil config gets a permissive default
// quota with the standard sweep cadence.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:       true,
			DefaultLimit:  1000,
			DefaultWindow: time.Minute,
			SweepInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}

	if cfg.Enabled && cfg.SweepInterval > 0 {
		go l.sweepLoop(cfg.SweepInterval)
	}
	return l
}

// Allow reports whether one request from clientID against the endpoint may
// proceed, together with the quota state for response headers.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.cfg.Blacklist[clientID] {
		return false, Info{}
	}

	quota, metered := l.quotaFor(path, method)
	if !metered {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	res := l.bucketFor(clientID, path, method, quota, now).take(now)

	info := Info{
		Allowed:   res.allowed,
		Limit:     quota.Limit,
		Remaining: res.remaining,
		ResetTime: res.fullAt,
	}
	if !res.allowed {
		info.RetryAfter = res.retryIn
	}
	return res.allowed, info
}

// quotaFor resolves the quota governing an endpoint. Unmetered rules and a
// non-positive default limit both mean the endpoint runs unthrottled.
func (l *Limiter) quotaFor(path, method string) (Quota, bool) {
	if rule := MatchRule(path, method, l.cfg.Rules); rule != nil {
		if rule.Quota.Limit <= 0 {
			return Quota{}, false
		}
		return rule.Quota, true
	}
	if l.cfg.DefaultLimit <= 0 {
		return Quota{}, false
	}
	return Quota{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}, true
}

func (l *Limiter) bucketFor(clientID, path, method string, q Quota, now time.Time) *bucket {
	key := clientID + "|" + method + " " + path

	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(q, now)
		l.buckets[key] = b
	}
	return b
}

func (l *Limiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now().Add(-bucketIdleTTL))
		case <-l.done:
			return
		}
	}
}

// sweep drops every bucket last used before cutoff. A reclaimed client
// simply starts over with a full burst on its next request.
func (l *Limiter) sweep(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the sweeper goroutine.
func (l *Limiter) Stop() {
	close(l.done)
}

// Package ratelimit throttles rewrite requests per client with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucketIdleTTL is how long an unused bucket survives cleanup.
const bucketIdleTTL = time.Hour

// TokenBucket holds up to capacity tokens that refill continuously at refillRate per second.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// refill must be called with mu held.
func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now
}

// take consumes one token if available and reports the state after the attempt.
func (tb *TokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.refill(now)

	if tb.tokens >= 1.0 {
		tb.tokens--
		allowed = true
	}

	remaining = int(tb.tokens)
	resetTime = now
	if tb.tokens < float64(tb.capacity) && tb.refillRate > 0 {
		secondsUntilFull := (float64(tb.capacity) - tb.tokens) / tb.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Info describes the rate limit state returned with each decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter keeps one bucket per client and endpoint.
type Limiter struct {
	config *Config

	mu         sync.Mutex
	buckets    map[string]*TokenBucket
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a limiter. A nil config enables limiting at 1000 requests per minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*TokenBucket),
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow reports whether a request from clientID to path is allowed. Requests whose path
// matches the same endpoint entry share one bucket.
func (l *Limiter) Allow(clientID string, path string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	key := clientID + ":" + method + ":" + path
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	} else {
		key = clientID + ":" + method + ":" + endpoint.Path
	}

	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	bucket := l.bucket(key, *endpoint)
	allowed, remaining, resetTime := bucket.take()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpoint.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucket(key string, endpoint EndpointConfig) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastAccess[key] = time.Now()
	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := endpoint.Burst
	if capacity <= 0 {
		capacity = endpoint.Limit
	}
	refillRate := 0.0
	if endpoint.Window > 0 {
		refillRate = float64(endpoint.Limit) / endpoint.Window.Seconds()
	}

	b := newTokenBucket(capacity, refillRate)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(time.Now().Add(-bucketIdleTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets not used since cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
			evicted++
		}
	}
	return evicted
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

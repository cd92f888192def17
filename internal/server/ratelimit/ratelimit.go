// Package ratelimit provides per-client request rate limiting on top of golang.org/x/time/rate.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// EndpointConfig overrides the default rate for one endpoint.
type EndpointConfig struct {
	Path   string     // exact path, or a prefix when it ends with "/"
	Method string     // HTTP method (GET, POST, etc.)
	Rate   rate.Limit // requests per second; 0 means unlimited
	Burst  int
}

// Config holds rate limiting configuration.
type Config struct {
	Rate            rate.Limit // default requests per second; 0 leaves unmatched paths unlimited
	Burst           int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Endpoints       []EndpointConfig
}

type clientLimiter struct {
	limiter    *rate.Limiter
	burst      int
	lastAccess time.Time
}

// Limiter manages one token bucket per client and endpoint.
type Limiter struct {
	mu          sync.Mutex
	config      Config
	clients     map[string]*clientLimiter
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config Config) *Limiter {
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = time.Hour
	}
	l := &Limiter{
		config:  config,
		clients: make(map[string]*clientLimiter),
	}

	// Start cleanup goroutine if enabled
	if l.Enabled() && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Enabled reports whether any limiting applies, either by default or for some endpoint.
func (l *Limiter) Enabled() bool {
	if l.config.Rate > 0 {
		return true
	}
	for _, ep := range l.config.Endpoints {
		if ep.Rate > 0 {
			return true
		}
	}
	return false
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Endpoint overrides apply even when the default rate is 0.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	r, burst := l.config.Rate, l.config.Burst
	if ep := MatchEndpoint(path, method, l.config.Endpoints); ep != nil {
		r, burst = ep.Rate, ep.Burst
		path = ep.Path
	} else {
		path = "*"
	}
	if r <= 0 {
		return true, Info{Allowed: true}
	}
	if burst <= 0 {
		burst = int(math.Max(1, float64(r)))
	}

	key := clientID + ":" + method + ":" + path
	now := time.Now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(r, burst), burst: burst}
		l.clients[key] = c
	}
	c.lastAccess = now
	l.mu.Unlock()

	allowed := c.limiter.AllowN(now, 1)
	info := Info{
		Allowed:   allowed,
		Limit:     c.burst,
		Remaining: int(math.Max(0, math.Floor(c.limiter.TokensAt(now)))),
	}
	if !allowed {
		info.RetryAfter = time.Duration(float64(time.Second) / float64(r))
	}
	return allowed, info
}

// cleanup removes limiters that have been idle for longer than IdleTimeout.
func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupIdle(time.Now())
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) cleanupIdle(now time.Time) {
	cutoff := now.Add(-l.config.IdleTimeout)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.clients {
		if c.lastAccess.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

package telemetry

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-client rate limiters: client address -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

// NewPerMinuteRateLimiterStore configures the bucket so a client can make at
// most perMinute requests within any one-minute window.
func NewPerMinuteRateLimiterStore(perMinute int) *RateLimiterStore {
	return NewRateLimiterStore(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func (s *RateLimiterStore) GetLimiter(clientAddr string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[clientAddr]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[clientAddr] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(clientAddr string, clientRate rate.Limit, clientBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[clientAddr] = rate.NewLimiter(clientRate, clientBurst)
}

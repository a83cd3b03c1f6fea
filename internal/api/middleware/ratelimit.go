package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BookingClient/internal/api/handlers"
)

const msgRateLimited = "Rate limit exceeded. Try again later."

const (
	// limiterIdleTTL лимитер адреса без запросов дольше этого срока удаляется
	limiterIdleTTL = 10 * time.Minute
	// maxLimiters верхняя граница числа адресов в памяти
	maxLimiters = 4096
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	maxSize   int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(limit rate.Limit, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
		idleTTL:  limiterIdleTTL,
		maxSize:  maxLimiters,
		now:      time.Now,
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	if now.Sub(s.lastSweep) >= s.idleTTL || len(s.limiters) >= s.maxSize {
		s.sweep(now)
	}
	if len(s.limiters) >= s.maxSize {
		s.evictOldest()
	}

	entry := &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst), lastSeen: now}
	s.limiters[key] = entry
	return entry.limiter
}

// sweep удаляет простаивающие лимитеры, вызывается под s.mu
func (s *limiterStore) sweep(now time.Time) {
	for key, entry := range s.limiters {
		if now.Sub(entry.lastSeen) >= s.idleTTL {
			delete(s.limiters, key)
		}
	}
	s.lastSweep = now
}

func (s *limiterStore) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range s.limiters {
		if oldestKey == "" || entry.lastSeen.Before(oldest) {
			oldestKey, oldest = key, entry.lastSeen
		}
	}
	delete(s.limiters, oldestKey)
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimit ограничивает запросы с одного адреса; rps <= 0 выключает ограничение
func RateLimit(rps float64, burst int, log Logger) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	store := newLimiterStore(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !store.get(ip).Allow() {
				log.Warn("%s %s - rate limit exceeded for ip=%s", r.Method, r.URL.Path, ip)
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

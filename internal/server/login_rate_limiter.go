package server

import (
	"sync"
	"time"
)

// loginRateLimiter blocks a key after too many failed logins inside a window.
type loginRateLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*loginAttempts
	maxFailures int
	window      time.Duration
	blockedFor  time.Duration
	sweepEvery  int
	ops         int
}

type loginAttempts struct {
	failures     int
	windowStart  time.Time
	blockedUntil time.Time
	touched      time.Time
}

func newLoginRateLimiter(maxFailures int, window, blockedFor time.Duration) *loginRateLimiter {
	if maxFailures <= 0 || window <= 0 || blockedFor <= 0 {
		return nil
	}
	return &loginRateLimiter{
		attempts:    make(map[string]*loginAttempts),
		maxFailures: maxFailures,
		window:      window,
		blockedFor:  blockedFor,
		sweepEvery:  64,
	}
}

// Allow reports whether key may attempt a login at now.
func (l *loginRateLimiter) Allow(key string, now time.Time) bool {
	if l == nil || key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.sweepLocked(now)

	a, ok := l.attempts[key]
	if !ok {
		return true
	}
	a.touched = now
	return !now.Before(a.blockedUntil)
}

// Fail records a failed login for key.
func (l *loginRateLimiter) Fail(key string, now time.Time) {
	if l == nil || key == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.sweepLocked(now)

	a, ok := l.attempts[key]
	if !ok {
		a = &loginAttempts{}
		l.attempts[key] = a
	}
	if a.windowStart.IsZero() || now.Sub(a.windowStart) > l.window {
		a.failures = 0
		a.windowStart = now
	}
	a.failures++
	a.touched = now
	if a.failures >= l.maxFailures {
		a.blockedUntil = now.Add(l.blockedFor)
		a.failures = 0
		a.windowStart = time.Time{}
	}
}

// Succeed clears any failures recorded for key.
func (l *loginRateLimiter) Succeed(key string) {
	if l == nil || key == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

func (l *loginRateLimiter) sweepLocked(now time.Time) {
	l.ops++
	if l.ops%l.sweepEvery != 0 {
		return
	}
	idle := 2 * max(l.window, l.blockedFor)
	for key, a := range l.attempts {
		if now.Sub(a.touched) > idle && !now.Before(a.blockedUntil) {
			delete(l.attempts, key)
		}
	}
}

package testutil

import (
	"sync"
	"time"
)

// Sleeper records requested sleeps instead of blocking.
type Sleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
	// OnSleep, when set, is called for each sleep.
	OnSleep func(time.Duration)
}

// Sleep records d.
func (s *Sleeper) Sleep(d time.Duration) {
	s.mu.Lock()
	s.sleeps = append(s.sleeps, d)
	hook := s.OnSleep
	s.mu.Unlock()
	if hook != nil {
		hook(d)
	}
}

// Sleeps returns the recorded durations.
func (s *Sleeper) Sleeps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.sleeps...)
}

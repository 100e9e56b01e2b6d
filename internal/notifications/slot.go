// Package notifications holds the transient, self-expiring UI state (feedback
// message, "just added" markers) and the hub that streams its changes.
package notifications

import (
	"sync"
	"time"
)

// slot holds at most one value that clears itself after ttl. Setting a new
// value cancels the pending timer. Every Set bumps a generation counter and
// the expiry callback only clears the generation it was scheduled for, so a
// stale timer can never wipe a newer value.
type slot[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	value    T
	set      bool
	gen      uint64
	timer    *time.Timer
	onChange func(value T, set bool)
}

func newSlot[T any](ttl time.Duration, onChange func(T, bool)) *slot[T] {
	return &slot[T]{ttl: ttl, onChange: onChange}
}

func (s *slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.value, s.set = v, true
	s.timer = time.AfterFunc(s.ttl, func() { s.expire(gen) })
	if s.onChange != nil {
		s.onChange(v, true)
	}
}

func (s *slot[T]) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || !s.set {
		return
	}
	var zero T
	s.value, s.set, s.timer = zero, false, nil
	if s.onChange != nil {
		s.onChange(zero, false)
	}
}

func (s *slot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Stop cancels the pending timer and clears the slot without notifying.
func (s *slot[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	var zero T
	s.value, s.set = zero, false
}

// Package debouncetest provides a manually advanced scheduler for tests.
package debouncetest

import (
	"sort"
	"sync"
	"time"

	"github.com/eduzap/eduzap/utils/debounce"
)

// Scheduler fires callbacks only when Advance moves its clock past their
// deadline. Callbacks run synchronously on the goroutine calling Advance.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers []*timer
}

type timer struct {
	s        *Scheduler
	id       int
	deadline time.Duration
	fn       func()
	stopped  bool
	fired    bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func New() *Scheduler {
	return &Scheduler{}
}

// AfterFunc satisfies debounce.AfterFunc.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) debounce.Stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &timer{s: s, id: s.nextID, deadline: s.now + d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward and fires every due timer in deadline order.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	now := s.now
	s.mu.Unlock()

	for {
		t := s.nextDue(now)
		if t == nil {
			return
		}
		t.fn()
	}
}

// Pending returns the number of timers that are neither stopped nor fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(now time.Duration) *timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].deadline == s.timers[j].deadline {
			return s.timers[i].id < s.timers[j].id
		}
		return s.timers[i].deadline < s.timers[j].deadline
	})
	for _, t := range s.timers {
		if t.stopped || t.fired {
			continue
		}
		if t.deadline > now {
			return nil
		}
		t.fired = true
		return t
	}
	return nil
}

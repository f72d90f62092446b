// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package selector owns the id of the question currently on screen.
package selector

import (
	"math/rand/v2"
	"sync"
)

// Default id range, inclusive
const (
	DefaultMin = 1
	DefaultMax = 10
)

// Change is one value of the current question id. Seq grows by one on every
// change, so two changes to the same id are still distinguishable.
type Change struct {
	ID  int64
	Seq uint64
}

// Selector draws question ids uniformly from [min, max]. Repeats are allowed.
type Selector struct {
	mu      sync.Mutex
	min     int64
	max     int64
	rng     *rand.Rand
	current Change
	subs    map[int]chan Change
	nextSub int
}

// New creates a selector and draws the initial id. A nil src seeds a PCG
// source randomly. It panics if the range is empty.
func New(min, max int64, src rand.Source) *Selector {
	if min > max {
		panic("selector: min > max")
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	s := &Selector{
		min:  min,
		max:  max,
		rng:  rand.New(src),
		subs: make(map[int]chan Change),
	}
	s.current = Change{ID: s.draw(), Seq: 1}
	return s
}

func (s *Selector) draw() int64 {
	return s.min + s.rng.Int64N(s.max-s.min+1)
}

// Range returns the inclusive id range.
func (s *Selector) Range() (min, max int64) {
	return s.min, s.max
}

// Current returns the current id and its sequence number.
func (s *Selector) Current() Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Advance draws a new id and notifies subscribers.
func (s *Selector) Advance() Change {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

// AdvanceFrom advances only if the current sequence number is still seq.
// It reports whether it advanced.
func (s *Selector) AdvanceFrom(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Seq != seq {
		return false
	}
	s.advanceLocked()
	return true
}

func (s *Selector) advanceLocked() Change {
	s.current = Change{ID: s.draw(), Seq: s.current.Seq + 1}
	for _, ch := range s.subs {
		publish(ch, s.current)
	}
	return s.current
}

// publish replaces whatever is pending on ch with c. Only the latest id
// matters to a subscriber, so a slow reader skips intermediate ones.
func publish(ch chan Change, c Change) {
	select {
	case ch <- c:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- c
	}
}

// Subscribe returns a channel that receives the current id immediately and
// every later change. Call cancel to stop delivery; the channel is closed.
func (s *Selector) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Change, 1)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.current

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

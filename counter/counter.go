// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package counter animates vote counts toward their latest value.
package counter

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	fps          = 60
	angularFreq  = 6.0
	dampingRatio = 1.0 // critically damped, no overshoot

	// snapDistance is how close the spring must get before Value reports the
	// target exactly.
	snapDistance = 0.5

	// maxFrames bounds the simulation; by then the spring has long settled.
	maxFrames = fps * 10
)

var frame = time.Second / fps

var spring = harmonica.NewSpring(harmonica.FPS(fps), angularFreq, dampingRatio)

// Value returns the animated value elapsed after starting at from and heading
// to to. The result moves monotonically from from to to, never leaves that
// interval, and is never negative.
func Value(from, to float64, elapsed time.Duration) float64 {
	from = math.Max(from, 0)
	to = math.Max(to, 0)
	if elapsed <= 0 {
		return from
	}

	frames := int(elapsed / frame)
	if frames >= maxFrames {
		return to
	}

	pos, vel := from, 0.0
	for i := 0; i < frames; i++ {
		pos, vel = spring.Update(pos, vel, to)
		if math.Abs(to-pos) < snapDistance {
			return to
		}
	}
	return clamp(pos, from, to)
}

func clamp(v, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return math.Min(math.Max(v, lo), hi)
}

// Counter is an animated display value. The zero value shows 0 at rest.
// It is not safe for concurrent use.
type Counter struct {
	from  float64
	to    float64
	start time.Time
}

// Set shows to immediately, without animation.
func (c *Counter) Set(to int64) {
	c.to = math.Max(float64(to), 0)
	c.from = c.to
	c.start = time.Time{}
}

// Retarget starts a new animation toward to from whatever is displayed at now.
func (c *Counter) Retarget(to int64, now time.Time) {
	c.from = c.value(now)
	c.to = math.Max(float64(to), 0)
	c.start = now
}

// Target returns the value the counter is heading to.
func (c *Counter) Target() int64 {
	return int64(c.to)
}

// Display returns the floored value shown at now.
func (c *Counter) Display(now time.Time) int64 {
	return int64(math.Floor(c.value(now)))
}

// Moving reports whether the counter has yet to reach its target at now.
func (c *Counter) Moving(now time.Time) bool {
	return c.value(now) != c.to
}

func (c *Counter) value(now time.Time) float64 {
	if c.start.IsZero() {
		return c.to
	}
	return Value(c.from, c.to, now.Sub(c.start))
}

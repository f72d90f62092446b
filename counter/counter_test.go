// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package counter

import (
	"math"
	"testing"
	"time"
)

func TestValue_Endpoints(t *testing.T) {
	tests := []struct {
		name    string
		from    float64
		to      float64
		elapsed time.Duration
		want    float64
	}{
		{"zero elapsed", 3, 10, 0, 3},
		{"negative elapsed", 3, 10, -time.Second, 3},
		{"long after", 3, 10, time.Minute, 10},
		{"already there", 7, 7, 50 * time.Millisecond, 7},
		{"negative from clamps", -5, 2, 0, 0},
		{"negative to clamps", 5, -2, time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.from, tt.to, tt.elapsed); got != tt.want {
				t.Errorf("Value(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestValue_MonotonicUp(t *testing.T) {
	prev := 0.0
	for ms := 0; ms <= 3000; ms += 5 {
		v := Value(0, 1234, time.Duration(ms)*time.Millisecond)
		if v < prev {
			t.Fatalf("not monotonic at %dms: %v < %v", ms, v, prev)
		}
		if v > 1234 {
			t.Fatalf("overshoot at %dms: %v", ms, v)
		}
		prev = v
	}
	if prev != 1234 {
		t.Errorf("did not converge within 3s, ended at %v", prev)
	}
}

func TestValue_MonotonicDown(t *testing.T) {
	prev := 500.0
	for ms := 0; ms <= 3000; ms += 5 {
		v := Value(500, 2, time.Duration(ms)*time.Millisecond)
		if v > prev {
			t.Fatalf("not monotonic at %dms: %v > %v", ms, v, prev)
		}
		if v < 0 || v < 2 {
			t.Fatalf("undershoot at %dms: %v", ms, v)
		}
		prev = v
	}
	if prev != 2 {
		t.Errorf("did not converge within 3s, ended at %v", prev)
	}
}

func TestValue_SnapsWithinHalfUnit(t *testing.T) {
	for ms := 0; ms <= 2000; ms += 1 {
		v := Value(3, 4, time.Duration(ms)*time.Millisecond)
		if v != 4 && math.Abs(4-v) < snapDistance {
			t.Fatalf("value %v within snap distance at %dms but not snapped", v, ms)
		}
	}
}

func TestCounter_ZeroValue(t *testing.T) {
	var c Counter
	now := time.Now()
	if got := c.Display(now); got != 0 {
		t.Errorf("Display() = %d, want 0", got)
	}
	if c.Moving(now) {
		t.Error("zero Counter should be at rest")
	}
}

func TestCounter_Retarget(t *testing.T) {
	var c Counter
	start := time.Unix(1700000000, 0)

	c.Retarget(5, start)
	if got := c.Display(start); got != 0 {
		t.Errorf("Display at start = %d, want 0", got)
	}
	if !c.Moving(start) {
		t.Error("expected counter to be moving")
	}
	if got := c.Target(); got != 5 {
		t.Errorf("Target() = %d, want 5", got)
	}

	later := start.Add(5 * time.Second)
	if got := c.Display(later); got != 5 {
		t.Errorf("Display after settle = %d, want 5", got)
	}
	if c.Moving(later) {
		t.Error("expected counter to be at rest")
	}
}

func TestCounter_RetargetMidFlightContinuesFromDisplayed(t *testing.T) {
	var c Counter
	start := time.Unix(1700000000, 0)
	c.Retarget(1000, start)

	mid := start.Add(200 * time.Millisecond)
	shown := c.Display(mid)
	if shown <= 0 || shown >= 1000 {
		t.Fatalf("expected mid-flight value, got %d", shown)
	}

	c.Retarget(2000, mid)
	if got := c.Display(mid); got != shown {
		t.Errorf("Display right after retarget = %d, want %d", got, shown)
	}
	if got := c.Display(mid.Add(10 * time.Second)); got != 2000 {
		t.Errorf("Display after settle = %d, want 2000", got)
	}
}

func TestCounter_FloorsDuringAnimation(t *testing.T) {
	var c Counter
	start := time.Unix(1700000000, 0)
	c.Retarget(3, start.Add(-time.Minute))
	c.Retarget(4, start)

	// Up to the snap the display stays on the old integer.
	for ms := 0; ms < 2000; ms += 16 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		got := c.Display(now)
		if got != 3 && got != 4 {
			t.Fatalf("Display at %dms = %d, want 3 or 4", ms, got)
		}
	}
}

func TestCounter_Set(t *testing.T) {
	var c Counter
	start := time.Unix(1700000000, 0)
	c.Retarget(1000, start)

	mid := start.Add(100 * time.Millisecond)
	c.Set(7)
	if got := c.Display(mid); got != 7 {
		t.Errorf("Display after Set = %d, want 7", got)
	}
	if c.Moving(mid) {
		t.Error("Set should not animate")
	}

	// A later retarget animates from the set value.
	c.Retarget(8, mid)
	if got := c.Display(mid); got != 7 {
		t.Errorf("Display right after retarget = %d, want 7", got)
	}

	c.Set(-3)
	if got := c.Display(mid); got != 0 {
		t.Errorf("Display after negative Set = %d, want 0", got)
	}
}

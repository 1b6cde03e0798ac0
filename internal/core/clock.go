package core

import "time"

// Stopwatch measures seconds since it was last reset. The caller supplies
// the current time so simulations stay deterministic under test.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch creates a stopwatch started at now.
func NewStopwatch(now time.Time) Stopwatch {
	return Stopwatch{start: now}
}

// Get returns the seconds elapsed between the last reset and now.
func (s Stopwatch) Get(now time.Time) float64 {
	return now.Sub(s.start).Seconds()
}

// Reset restarts the stopwatch at now.
func (s *Stopwatch) Reset(now time.Time) {
	s.start = now
}

// Counter is a plain integer counter.
type Counter struct {
	value int
}

// Get returns the current value.
func (c Counter) Get() int { return c.value }

// Set replaces the current value.
func (c *Counter) Set(v int) { c.value = v }

// Inc adds one.
func (c *Counter) Inc() { c.value++ }

// ToggleRelease is how long, in seconds, a key must stay absent before a
// Toggle treats it as released. Terminals send no key-up events and start
// auto-repeat only after a delay of up to half a second.
const ToggleRelease = 0.5

// Toggle is a boolean that flips once per press. A key that comes back
// within ToggleRelease counts as still held.
type Toggle struct {
	On   bool
	held bool
	idle float64
}

// Update feeds this frame's key state and the frame time in seconds, and
// reports whether the value flipped.
func (t *Toggle) Update(pressed bool, dt float64) bool {
	if pressed {
		t.idle = 0
		if t.held {
			return false
		}
		t.held = true
		t.On = !t.On
		return true
	}
	if t.held && dt > 0 {
		t.idle += dt
		if t.idle >= ToggleRelease {
			t.held = false
			t.idle = 0
		}
	}
	return false
}

// FPSMeter counts frames and publishes the count once per second of
// frame time.
type FPSMeter struct {
	window float64
	frames Counter
	last   int
}

// Frame records one frame that took dt seconds and returns the latest
// published rate.
func (m *FPSMeter) Frame(dt float64) int {
	m.frames.Inc()
	m.window += dt
	if m.window >= 1.0 {
		m.last = m.frames.Get()
		m.frames.Set(0)
		m.window -= 1.0
	}
	return m.last
}

// FPS returns the last published rate.
func (m *FPSMeter) FPS() int {
	return m.last
}

// Reset drops the frames counted so far.
func (m *FPSMeter) Reset() {
	*m = FPSMeter{}
}

package session

import (
	"fmt"
	"time"
)

// Timer tracks elapsed wall-clock time for rapid-fire sessions. The elapsed
// value is always derived from the clock, never accumulated from ticks, so a
// slow or missed display refresh cannot drift it.
type Timer struct {
	now     func() time.Time
	running bool
	start   time.Time
	elapsed time.Duration // frozen value while stopped
}

// NewTimer creates a stopped timer. A nil clock means time.Now.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start resets the elapsed value and begins running.
func (t *Timer) Start() {
	t.running = true
	t.start = t.now()
	t.elapsed = 0
}

// Stop freezes the elapsed value. Stopping a stopped timer keeps the frozen
// value.
func (t *Timer) Stop() {
	if t.running {
		t.elapsed = t.now().Sub(t.start)
	}
	t.running = false
}

// Elapsed returns the wall-clock delta since Start while running, or the
// frozen delta after Stop.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.now().Sub(t.start)
	}
	return t.elapsed
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// FormatDuration renders a duration as MM:SS.d with zero-padded minutes and
// seconds and one tenths digit.
func FormatDuration(d time.Duration) string {
	tenths := int(d / (100 * time.Millisecond))
	minutes := tenths / 600
	seconds := (tenths % 600) / 10
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, tenths%10)
}

package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake so weekday-relative
// estimates are deterministic.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for analysis. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}

// Today returns the current weekday index (Monday=0..Sunday=6) from the
// package clock.
func Today() int {
	return WeekdayIndex(clock.Now().Weekday())
}

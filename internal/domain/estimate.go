package domain

import (
	"strings"
	"time"
)

// weekdayNames positions follow the Monday=0..Sunday=6 convention used by the
// estimator throughout.
var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayIndex converts a time.Weekday (Sunday=0) into the Monday=0..Sunday=6
// index the estimator works in.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// DaysUntil scans one sentence for weekday names and returns the smallest
// number of days until a mentioned weekday next occurs, relative to today
// (Monday=0..Sunday=6). A mention of today's own weekday means the next
// occurrence, seven days out, never zero. The result is always in [1,7] when
// present; the second return is false when the sentence names no weekday.
func DaysUntil(sentence string, today int) (int, bool) {
	lower := strings.ToLower(sentence)

	best := 0
	found := false
	for d, name := range weekdayNames {
		if !strings.Contains(lower, name) {
			continue
		}
		offset := d - today
		if offset <= 0 {
			offset += 7
		}
		if !found || offset < best {
			best = offset
			found = true
		}
	}
	return best, found
}

package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		today    int
		expected int
	}{
		{"saturday seen on thursday", "Heavy rain may reach Florida by Saturday", 3, 2},
		{"monday seen on friday", "conditions deteriorate Monday", 4, 3},
		{"case-insensitive match", "expected by SATURDAY evening", 3, 2},
		{"mention of today means next week", "arriving Thursday", 3, 7},
		{"yesterday wraps to six days", "as seen Wednesday", 3, 6},
		{"two weekdays resolve to the soonest", "either Friday or Saturday", 3, 1},
		{"embedded in longer words still matches", "the system mondayish report", 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := DaysUntil(tt.sentence, tt.today)

			require.True(t, ok)
			assert.Equal(t, tt.expected, days)
		})
	}
}

func TestDaysUntil_NoWeekdayMentioned(t *testing.T) {
	sentences := []string{
		"",
		"A disturbance is producing showers near Puerto Rico",
		"gale warnings are in effect for the next 48 hours",
	}

	for _, sentence := range sentences {
		for today := 0; today < 7; today++ {
			_, ok := DaysUntil(sentence, today)
			assert.False(t, ok, "sentence %q, today %d", sentence, today)
		}
	}
}

// Every (weekday, today) pair must estimate within [1,7], and a weekday equal
// to today must estimate exactly 7 — the wraparound never yields zero.
func TestDaysUntil_RangeProperty(t *testing.T) {
	for d, name := range weekdayNames {
		for today := 0; today < 7; today++ {
			t.Run(fmt.Sprintf("%s_today_%d", name, today), func(t *testing.T) {
				days, ok := DaysUntil("expected by "+name, today)

				require.True(t, ok)
				assert.GreaterOrEqual(t, days, 1)
				assert.LessOrEqual(t, days, 7)
				if d == today {
					assert.Equal(t, 7, days)
				}
			})
		}
	}
}

// A sentence naming two weekdays must resolve to the minimum of the two
// individual estimates.
func TestDaysUntil_MinimumProperty(t *testing.T) {
	for _, d1 := range weekdayNames {
		for _, d2 := range weekdayNames {
			if d1 == d2 {
				continue
			}
			for today := 0; today < 7; today++ {
				one, ok := DaysUntil(d1, today)
				require.True(t, ok)
				two, ok := DaysUntil(d2, today)
				require.True(t, ok)

				both, ok := DaysUntil(d1+" or "+d2, today)
				require.True(t, ok)
				assert.Equal(t, min(one, two), both, "%s+%s today=%d", d1, d2, today)
			}
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		weekday  time.Weekday
		expected int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Wednesday, 2},
		{time.Thursday, 3},
		{time.Friday, 4},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}

	for _, tt := range tests {
		t.Run(tt.weekday.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, WeekdayIndex(tt.weekday))
		})
	}
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// NoThreatSummary is the snapshot message written when no tracked location
// has an arrival estimate.
const NoThreatSummary = "No hurricane or tropical storm detected to arrive to the tracked locations in the coming days."

// Outcome is the analyzer's per-location result for one run. Days is nil when
// the location has no current threat; Excerpt holds the sentence the estimate
// came from.
type Outcome struct {
	Location TrackedLocation `json:"location"`
	Days     *int            `json:"days,omitempty"`
	Excerpt  string          `json:"excerpt,omitempty"`
}

// Notify reports whether the outcome carries an arrival estimate.
func (o Outcome) Notify() bool {
	return o.Days != nil
}

// AnalyzeSection produces one outcome per tracked location from the special
// features section text.
func AnalyzeSection(section string, today int) []Outcome {
	outcomes := make([]Outcome, 0, len(TrackedLocations))
	for _, loc := range TrackedLocations {
		outcomes = append(outcomes, analyzeLocation(section, loc, today))
	}
	return outcomes
}

// NoThreatOutcomes produces the all-clear result set used when the bulletin
// has no special features section.
func NoThreatOutcomes() []Outcome {
	outcomes := make([]Outcome, 0, len(TrackedLocations))
	for _, loc := range TrackedLocations {
		outcomes = append(outcomes, Outcome{Location: loc})
	}
	return outcomes
}

// analyzeLocation scans the section for one location. The location name match
// is a case-sensitive substring test. Only the first sentence naming the
// location is estimated; an estimator miss on that sentence does not fall
// through to later sentences. That can miss a detection when the timing
// appears in a follow-up sentence, and is kept deliberately so behavior stays
// predictable; revisit together with splitSentences.
func analyzeLocation(section string, loc TrackedLocation, today int) Outcome {
	out := Outcome{Location: loc}
	if !strings.Contains(section, loc.Name) {
		return out
	}

	for _, sentence := range splitSentences(section) {
		if !strings.Contains(sentence, loc.Name) {
			continue
		}
		if days, ok := DaysUntil(sentence, today); ok {
			out.Days = &days
			out.Excerpt = strings.TrimSpace(sentence)
		}
		return out
	}
	return out
}

// Summary renders the aggregate human-readable message for one run: one line
// per notifying location, or the fixed no-threat sentence.
func Summary(outcomes []Outcome) string {
	var lines []string
	for _, o := range outcomes {
		if o.Notify() {
			lines = append(lines, fmt.Sprintf("%s: %d days till arrival", o.Location.Name, *o.Days))
		}
	}
	if len(lines) == 0 {
		return NoThreatSummary
	}
	return strings.Join(lines, "\n")
}

// SummaryDocument is the JSON snapshot overwritten after every run.
type SummaryDocument struct {
	Message     string    `json:"message"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ArrivalRecord is one appended history row: the result for one location in
// one run. Days is nil for the "no current threat" sentinel.
type ArrivalRecord struct {
	Location   string    `db:"location"`
	RecordedAt time.Time `db:"recorded_at"`
	Days       *int      `db:"days_to_arrival"`
	Excerpt    string    `db:"excerpt"`
}

// Notification is the message fanned out to a location's topic.
type Notification struct {
	Location string    `json:"location"`
	Days     int       `json:"days"`
	Message  string    `json:"message"`
	Excerpt  string    `json:"excerpt,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// NewNotification formats the outbound warning for a notifying outcome.
// Calling it for a no-threat outcome is a programming error.
func NewNotification(o Outcome) Notification {
	return Notification{
		Location: o.Location.Name,
		Days:     *o.Days,
		Message:  fmt.Sprintf("WARNING: Potential storm approaching %s in %d days", o.Location.Name, *o.Days),
		Excerpt:  o.Excerpt,
		IssuedAt: clock.Now(),
	}
}

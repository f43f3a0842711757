package domain

import (
	"errors"
	"strings"
)

const (
	startMarker = "...SPECIAL FEATURES..."
	endMarker   = "...TROPICAL WAVES..."
)

// ErrSectionNotFound reports that the bulletin carries no special features
// section. This is the normal "nothing to report" state, not a failure.
var ErrSectionNotFound = errors.New("special features section not found")

// ExtractSpecialFeatures returns the bulletin substring from the first
// special-features marker (inclusive) to the first tropical-waves marker
// (exclusive). A missing start marker, a missing end marker, or an end marker
// ahead of the start marker all yield ErrSectionNotFound.
func ExtractSpecialFeatures(bulletin string) (string, error) {
	start := strings.Index(bulletin, startMarker)
	end := strings.Index(bulletin, endMarker)
	if start < 0 || end < 0 || end < start {
		return "", ErrSectionNotFound
	}
	return bulletin[start:end], nil
}

// splitSentences splits section text on the period character. Abbreviations
// and decimals produce false splits; the estimator tolerates them.
func splitSentences(text string) []string {
	return strings.Split(text, ".")
}

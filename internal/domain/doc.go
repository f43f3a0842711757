// Package domain models National Hurricane Center (NHC) tropical weather
// bulletins and the arrival-estimate analysis run against them.
//
// # Data Source
//
// Bulletins are the Atlantic Tropical Weather Discussion (TWD) text products
// published at https://www.nhc.noaa.gov/text/MIATWDAT.shtml. The fetch adapter
// extracts the plain-text product from the page and hands it to the analyzer
// unchanged.
//
// # Bulletin Conventions
//
// Section markers:
//
//	"...SPECIAL FEATURES..." opens the section describing active systems that
//	may affect land. "...TROPICAL WAVES..." opens the following section. The
//	analyzer only reads the text between those two markers. A bulletin without
//	both markers, in that order, simply has nothing to report.
//
// Arrival language:
//
//	Forecasters phrase arrival timing relative to weekdays, e.g. "heavy rain
//	is expected to reach Florida by Saturday". The estimator converts each
//	weekday mention into a day offset from the current weekday using the
//	Monday=0..Sunday=6 convention. An offset of zero or less wraps forward a
//	week: a bulletin naming today's own weekday means the next occurrence,
//	seven days out, never "today".
//
// Sentence boundaries are approximated by splitting on the period character.
// That misfires on abbreviations and decimals; the heuristic is kept behind
// splitSentences so it can be replaced without touching the estimator.
package domain

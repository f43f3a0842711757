package domain

import "strings"

// TrackedLocation binds a monitored region name to its notification topic.
// Scanning matches Name as an exact literal; Topic keys both the publisher
// and the subscription gateway.
type TrackedLocation struct {
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// TrackedLocations is the fixed set of regions monitored for mentions in the
// special features section. The topic mapping is enumerated here rather than
// derived from the name so a typo cannot silently produce a wrong topic.
var TrackedLocations = []TrackedLocation{
	{Name: "Puerto Rico", Topic: "PuertoRico-topic"},
	{Name: "Florida", Topic: "Florida-topic"},
}

// LocationByName resolves a tracked location from user-supplied input.
// Matching is case-insensitive so "puerto rico" and "Puerto Rico" both resolve.
func LocationByName(name string) (TrackedLocation, bool) {
	name = strings.TrimSpace(name)
	for _, loc := range TrackedLocations {
		if strings.EqualFold(loc.Name, name) {
			return loc, true
		}
	}
	return TrackedLocation{}, false
}

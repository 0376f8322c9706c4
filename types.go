package arrivalboard

import (
	"sort"
	"time"
)

// MaxRows is the number of arrival rows the display shows per stop.
const MaxRows = 3

// Arrival is one predicted vehicle arrival at a stop, decoded from a
// realtime feed. Produced fresh on every fetch, never mutated.
type Arrival struct {
	RouteID     string
	When        time.Time // absolute arrival time, UTC
	Destination string    // headsign or destination stop id, may be empty
}

// SnapshotEntry is one render-ready row: route, minutes to arrival and the
// resolved destination text. Imminent marks trains arriving right now.
type SnapshotEntry struct {
	RouteID         string `json:"route_id"`
	MinutesUntil    int    `json:"minutes_until"`
	DestinationText string `json:"text"`
	ArrivalClock    string `json:"time"`
	Imminent        bool   `json:"imminent"`
}

// StopSnapshot is the render-ready projection of a stop's next arrivals.
// Entries are sorted by ascending arrival time and capped at MaxRows; the
// snapshot is recomputed wholesale on every successful poll.
type StopSnapshot struct {
	Entries []SnapshotEntry `json:"arrivals"`
}

// NameResolver turns a raw destination identifier into display text.
type NameResolver interface {
	// StopName returns the display name for a stop id and whether the id
	// was known. Callers fall back to the raw id on a miss.
	StopName(stopID string) (string, bool)
}

// StopDirectory is the static stop lookup the registry needs: existence
// checks for reconcile input plus names for rendering.
type StopDirectory interface {
	NameResolver
	HasStop(stopID string) bool
}

// BuildSnapshot projects arrivals into a StopSnapshot relative to now.
// Arrivals already in the past clamp to zero minutes rather than going
// negative; destination ids are resolved through names when possible.
func BuildSnapshot(arrivals []Arrival, now time.Time, names NameResolver) StopSnapshot {
	sorted := make([]Arrival, len(arrivals))
	copy(sorted, arrivals)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].When.Before(sorted[j].When) })
	if len(sorted) > MaxRows {
		sorted = sorted[:MaxRows]
	}

	entries := make([]SnapshotEntry, 0, len(sorted))
	for _, a := range sorted {
		dest := a.Destination
		if dest != "" && names != nil {
			if name, ok := names.StopName(dest); ok {
				dest = name
			}
		}
		mins := minutesUntil(a.When, now)
		entries = append(entries, SnapshotEntry{
			RouteID:         a.RouteID,
			MinutesUntil:    mins,
			DestinationText: dest,
			ArrivalClock:    clockHHMM(a.When),
			Imminent:        mins == 0,
		})
	}
	return StopSnapshot{Entries: entries}
}

package gtfs

import "sort"

// Index stores stop metadata in memory for fast lookups. It satisfies the
// board's StopDirectory contract.
type Index struct {
	stops map[string]Stop
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{stops: map[string]Stop{}}
}

// StopName returns the station name for a stop id and whether the id is
// known.
func (x *Index) StopName(stopID string) (string, bool) {
	s, ok := x.stops[stopID]
	if !ok || s.Name == "" {
		return "", false
	}
	return s.Name, true
}

// HasStop reports whether the id appears in the loaded stop data.
func (x *Index) HasStop(stopID string) bool {
	_, ok := x.stops[stopID]
	return ok
}

// Stop returns the full record for a stop id.
func (x *Index) Stop(stopID string) (Stop, bool) {
	s, ok := x.stops[stopID]
	return s, ok
}

// Len reports the number of indexed stops.
func (x *Index) Len() int {
	return len(x.stops)
}

// All returns every stop sorted by id for stable listings.
func (x *Index) All() []Stop {
	out := make([]Stop, 0, len(x.stops))
	for _, s := range x.stops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Directional returns the stops whose id encodes a platform direction,
// sorted by id. These are the selectable entries in the stop picker.
func (x *Index) Directional() []Stop {
	out := make([]Stop, 0, len(x.stops))
	for _, s := range x.stops {
		if s.Direction() != "" {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (x *Index) add(s Stop) {
	x.stops[s.ID] = s
}

package gtfs

import "strings"

// Mode is the transit mode a stop file was loaded for.
const (
	ModeTrain = "train"
	ModeBus   = "bus"
)

// Stop is one row of a GTFS stops.txt plus the mode it belongs to.
type Stop struct {
	ID            string  `json:"stop_id"`
	Name          string  `json:"stop_name"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Line          string  `json:"line"`
	Mode          string  `json:"mode"`
	LocationType  string  `json:"-"`
	ParentStation string  `json:"-"`
}

// Direction reports the platform direction encoded in the stop id suffix
// of directional subway stops ("L14N" -> "Northbound"), or "" when the id
// carries none.
func (s Stop) Direction() string {
	switch {
	case strings.HasSuffix(s.ID, "N"):
		return "Northbound"
	case strings.HasSuffix(s.ID, "S"):
		return "Southbound"
	}
	return ""
}

// LineForStop derives the line label from a stop id. Subway stop ids
// start with the route letter or number; bus stop ids are plain numbers
// and share a generic label.
func LineForStop(stopID, mode string) string {
	if mode == ModeBus {
		return "Bus"
	}
	first := strings.ToUpper(stopID[:1])
	switch first {
	case "7":
		return "MAIN"
	case "A":
		return "ACE"
	case "G":
		return "BDFM"
	}
	return first
}

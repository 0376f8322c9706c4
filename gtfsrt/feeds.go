package gtfsrt

import (
	"fmt"
	"strings"
)

const feedBase = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs"

// feedURLs maps a feed group to its GTFS-RT endpoint. The numbered lines
// share the main feed; letter lines are grouped the way the MTA splits
// them.
var feedURLs = map[string]string{
	"MAIN": feedBase,
	"ACE":  feedBase + "-ace",
	"BDFM": feedBase + "-bdfm",
	"G":    feedBase + "-g",
	"JZ":   feedBase + "-jz",
	"NQRW": feedBase + "-nqrw",
	"L":    feedBase + "-l",
	"SI":   feedBase + "-si",
}

// FeedGroupForStop maps a stop id to the feed group serving it. Subway
// stop ids start with the route designator.
func FeedGroupForStop(stopID string) string {
	if stopID == "" {
		return "MAIN"
	}
	switch strings.ToUpper(stopID[:1]) {
	case "1", "2", "3", "4", "5", "6", "7", "9":
		return "MAIN"
	case "A", "C", "E":
		return "ACE"
	case "B", "D", "F", "M":
		return "BDFM"
	case "G":
		return "G"
	case "J", "Z":
		return "JZ"
	case "N", "Q", "R", "W":
		return "NQRW"
	case "L":
		return "L"
	case "S", "H":
		return "SI"
	}
	return "MAIN"
}

// ResolveFeedURL returns the endpoint for a feed group.
func ResolveFeedURL(group string) (string, error) {
	key := strings.ToUpper(strings.TrimSpace(group))
	if key == "" {
		return "", fmt.Errorf("feed group is empty")
	}
	url, ok := feedURLs[key]
	if !ok {
		return "", fmt.Errorf("unknown feed group %q", group)
	}
	return url, nil
}

// Resolver implements the board's feed lookup on the endpoint table.
type Resolver struct{}

// FeedURL returns the GTFS-RT endpoint serving stopID.
func (Resolver) FeedURL(stopID string) (string, error) {
	return ResolveFeedURL(FeedGroupForStop(stopID))
}

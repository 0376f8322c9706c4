package gtfsrt

import (
	"fmt"
	"sort"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	board "github.com/transit-displays/arrival-board"
)

// MaxArrivals caps how many upcoming arrivals a decode returns. The
// display shows three; a small margin keeps the API listing useful.
const MaxArrivals = 6

// DecodeArrivals parses a GTFS-RT FeedMessage and returns the arrivals at
// stopID still in the future relative to now, sorted by time and capped
// at limit. The destination is the trip's final stop id; callers resolve
// it to a station name. Departure time wins over arrival time when both
// are present, matching how the MTA populates terminals.
func DecodeArrivals(raw []byte, stopID string, now time.Time, limit int) ([]board.Arrival, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	arrivals := make([]board.Arrival, 0)
	for _, ent := range fm.GetEntity() {
		tu := ent.GetTripUpdate()
		if tu == nil || tu.GetTrip() == nil {
			continue
		}
		routeID := tu.GetTrip().GetRouteId()
		stus := tu.GetStopTimeUpdate()

		dest := ""
		if len(stus) > 0 {
			dest = stus[len(stus)-1].GetStopId()
		}

		for _, stu := range stus {
			if stu.GetStopId() != stopID {
				continue
			}
			var epoch int64
			if dep := stu.GetDeparture(); dep.GetTime() != 0 {
				epoch = dep.GetTime()
			} else if arr := stu.GetArrival(); arr.GetTime() != 0 {
				epoch = arr.GetTime()
			}
			if epoch == 0 {
				continue
			}
			when := time.Unix(epoch, 0).UTC()
			if when.Before(now) {
				continue
			}
			arrivals = append(arrivals, board.Arrival{
				RouteID:     routeID,
				When:        when,
				Destination: dest,
			})
		}
	}

	sort.SliceStable(arrivals, func(i, j int) bool { return arrivals[i].When.Before(arrivals[j].When) })
	if limit > 0 && len(arrivals) > limit {
		arrivals = arrivals[:limit]
	}
	return arrivals, nil
}

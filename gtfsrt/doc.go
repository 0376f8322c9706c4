// Package gtfsrt fetches and decodes GTFS-Realtime trip-update feeds.
//
// Client is the board's ArrivalSource: it fetches a feed's protobuf over
// HTTP, decodes the FeedMessage and extracts the upcoming arrivals at one
// stop. The package also carries the MTA feed endpoint table and the
// stop-id-prefix routing that picks the right feed for a stop.
package gtfsrt

// Package gtfs loads GTFS static stop data and indexes it in memory.
//
// The board only needs stops.txt: stop ids, station names and coordinates.
// Subway and bus stop files are loaded into a single Index, which provides
// the name resolution and existence checks the core consumes. Parse once
// at startup and keep the index in memory; the data is static.
package gtfs

// Package arrivalboard implements the core of a transit arrival display:
// per-stop polling workers feeding single-slot snapshot buffers, a registry
// that reconciles running workers against a desired stop list, and a display
// scheduler that rotates the stops on a render surface and yields to
// operator broadcast messages.
//
// The package owns timing and lifecycle only. Fetching arrivals, resolving
// stop names and drawing pixels are all injected through small interfaces
// (ArrivalSource, StopDirectory, Surface).
package arrivalboard

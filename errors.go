package arrivalboard

import "errors"

var (
	// ErrAlreadyStarted is returned when Start is called on a running
	// worker or scheduler.
	ErrAlreadyStarted = errors.New("already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("not started")

	// ErrStopTimeout is returned when a worker or the scheduler does not
	// confirm shutdown within the allowed window. Cancellation stays
	// latched; the goroutine still exits at its next wait point.
	ErrStopTimeout = errors.New("did not confirm stop before timeout")

	// ErrUnknownStop is returned by reconciliation for a stop id absent
	// from the loaded stop data.
	ErrUnknownStop = errors.New("unknown stop id")
)

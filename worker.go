package arrivalboard

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// ArrivalSource fetches upcoming arrivals for one stop from a realtime
// feed. Implementations are stateless per call and may block on network
// I/O up to their own timeout; a failed fetch returns an error and no
// arrivals.
type ArrivalSource interface {
	Arrivals(ctx context.Context, feedURL, stopID string) ([]Arrival, error)
}

// PollingWorker owns the poll loop for a single stop: it calls the
// ArrivalSource on a fixed interval and writes each successful result
// into its StopBuffer. Fetch failures leave the buffer untouched; stale
// rows beat a blank display. There is never more than one fetch in
// flight, so snapshots apply in fetch order.
type PollingWorker struct {
	stopID   string
	feedURL  string
	interval time.Duration
	source   ArrivalSource
	names    NameResolver
	buf      *StopBuffer
	metrics  *Metrics

	started atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPollingWorker creates a stopped worker with an empty buffer.
func NewPollingWorker(stopID, feedURL string, interval time.Duration, source ArrivalSource, names NameResolver, metrics *Metrics) *PollingWorker {
	return &PollingWorker{
		stopID:   stopID,
		feedURL:  feedURL,
		interval: interval,
		source:   source,
		names:    names,
		buf:      NewStopBuffer(),
		metrics:  metrics,
		done:     make(chan struct{}),
	}
}

// StopID returns the stop this worker polls for.
func (w *PollingWorker) StopID() string { return w.stopID }

// Buffer returns the worker's single-slot snapshot cell.
func (w *PollingWorker) Buffer() *StopBuffer { return w.buf }

// Start launches the poll loop in its own goroutine. The first fetch
// happens immediately. Calling Start twice is a usage error.
func (w *PollingWorker) Start() error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.run(ctx)
	return nil
}

// Stop signals cancellation and blocks up to timeout for the loop to
// exit. On timeout the cancellation stays latched and ErrStopTimeout is
// returned; the worker still stops at its next wait point.
func (w *PollingWorker) Stop(timeout time.Duration) error {
	if !w.started.Load() {
		return ErrNotStarted
	}
	w.cancel()
	select {
	case <-w.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("worker %s: %w", w.stopID, ErrStopTimeout)
	}
}

func (w *PollingWorker) run(ctx context.Context) {
	defer close(w.done)
	log.Printf("worker %s: polling every %s", w.stopID, w.interval)

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("worker %s: stopped", w.stopID)
			return
		case <-timer.C:
		}
		if ctx.Err() != nil {
			log.Printf("worker %s: stopped", w.stopID)
			return
		}
		w.pollOnce(ctx)
		timer.Reset(w.interval)
	}
}

// pollOnce runs one fetch-transform-store cycle. Errors are swallowed:
// the next cycle retries on the same fixed cadence, no backoff.
func (w *PollingWorker) pollOnce(ctx context.Context) {
	start := time.Now()
	arrivals, err := w.source.Arrivals(ctx, w.feedURL, w.stopID)
	w.metrics.observePoll(w.stopID, time.Since(start), err)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("worker %s: fetch failed: %v", w.stopID, err)
		}
		return
	}
	w.buf.Write(BuildSnapshot(arrivals, time.Now(), w.names))
}

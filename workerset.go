package arrivalboard

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// FeedResolver maps a stop id to the realtime feed endpoint serving it.
type FeedResolver interface {
	FeedURL(stopID string) (string, error)
}

// WorkerSetConfig carries the knobs shared by every polling worker.
type WorkerSetConfig struct {
	PollInterval time.Duration // fixed fetch cadence, default 30s
	StopTimeout  time.Duration // per-worker stop confirmation window, default 5s
}

func (c WorkerSetConfig) withDefaults() WorkerSetConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 30 * time.Second
	}
	if c.StopTimeout <= 0 {
		c.StopTimeout = 5 * time.Second
	}
	return c
}

// WorkerSet is the registry of running polling workers, at most one per
// stop id. Reconcile brings the running set into agreement with a desired
// stop list; readers resolve buffers by id on every access so a removed
// stop is never read mid-discard.
type WorkerSet struct {
	cfg     WorkerSetConfig
	source  ArrivalSource
	feeds   FeedResolver
	stops   StopDirectory
	metrics *Metrics

	mu      sync.RWMutex
	workers map[string]*PollingWorker
	order   []string // desired-list order, drives rotation
}

// NewWorkerSet creates an empty registry.
func NewWorkerSet(cfg WorkerSetConfig, source ArrivalSource, feeds FeedResolver, stops StopDirectory, metrics *Metrics) *WorkerSet {
	return &WorkerSet{
		cfg:     cfg.withDefaults(),
		source:  source,
		feeds:   feeds,
		stops:   stops,
		metrics: metrics,
		workers: map[string]*PollingWorker{},
	}
}

// Reconcile brings the running workers into agreement with desired:
// workers for ids missing from desired are stopped and their buffers
// discarded, ids without a worker get a fresh one, ids in both sets are
// untouched. Unknown ids and stop-confirmation timeouts are reported per
// stop; the rest of the set is reconciled regardless. Safe to call
// repeatedly and concurrently with display-loop reads.
func (ws *WorkerSet) Reconcile(desired []string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	want := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	var errs []error
	for id, w := range ws.workers {
		if _, ok := want[id]; ok {
			continue
		}
		// The worker must confirm stop before its buffer is dropped from
		// the map; once out of the map no reader can resolve it.
		if err := w.Stop(ws.cfg.StopTimeout); err != nil {
			errs = append(errs, err)
		}
		delete(ws.workers, id)
		ws.metrics.workerStopped()
		log.Printf("workerset: stopped worker for %s", id)
	}

	order := make([]string, 0, len(desired))
	seen := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, running := ws.workers[id]; running {
			order = append(order, id)
			continue
		}
		if !ws.stops.HasStop(id) {
			errs = append(errs, fmt.Errorf("%s: %w", id, ErrUnknownStop))
			continue
		}
		feedURL, err := ws.feeds.FeedURL(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		w := NewPollingWorker(id, feedURL, ws.cfg.PollInterval, ws.source, ws.stops, ws.metrics)
		if err := w.Start(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		ws.workers[id] = w
		ws.metrics.workerStarted()
		order = append(order, id)
		log.Printf("workerset: started worker for %s", id)
	}
	ws.order = order
	return errors.Join(errs...)
}

// StopIDs returns the rotation order: the desired-list order of the
// stops that currently have a running worker.
func (ws *WorkerSet) StopIDs() []string {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	out := make([]string, len(ws.order))
	copy(out, ws.order)
	return out
}

// Len reports the number of running workers.
func (ws *WorkerSet) Len() int {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return len(ws.workers)
}

// Snapshot returns the latest snapshot for one stop. The second return
// is false when no worker is running for the id.
func (ws *WorkerSet) Snapshot(stopID string) (StopSnapshot, bool) {
	ws.mu.RLock()
	w, ok := ws.workers[stopID]
	ws.mu.RUnlock()
	if !ok {
		return StopSnapshot{}, false
	}
	return w.Buffer().Read(), true
}

// SnapshotAll returns the latest snapshot for every running stop,
// independent of the rendering loop's cadence.
func (ws *WorkerSet) SnapshotAll() map[string]StopSnapshot {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	out := make(map[string]StopSnapshot, len(ws.workers))
	for id, w := range ws.workers {
		out[id] = w.Buffer().Read()
	}
	return out
}

// DisplayName resolves a stop id to its station name, falling back to
// the raw id.
func (ws *WorkerSet) DisplayName(stopID string) string {
	if name, ok := ws.stops.StopName(stopID); ok && name != "" {
		return name
	}
	return stopID
}

// Close stops every worker. Equivalent to reconciling to an empty list.
func (ws *WorkerSet) Close() error {
	return ws.Reconcile(nil)
}

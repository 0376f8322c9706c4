package arrivalboard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Surface is the render target the scheduler draws to. Implementations
// own pixels and fonts; the core owns timing.
type Surface interface {
	RenderStop(stopID, stopName string, snap StopSnapshot)
	RenderScrollFrame(text string, x int)
	Clear()
	Width() int
}

// SchedulerState is the display loop's current phase.
type SchedulerState int32

const (
	// StateIdle means no stop buffers exist; the surface stays cleared.
	StateIdle SchedulerState = iota
	// StateRotating means the loop is cycling through stop snapshots.
	StateRotating
	// StateBroadcasting means a scrolling message owns the surface.
	StateBroadcasting
)

// String returns a string representation of the scheduler state.
func (s SchedulerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRotating:
		return "rotating"
	case StateBroadcasting:
		return "broadcasting"
	default:
		return "unknown"
	}
}

// SchedulerConfig carries the display loop's timing knobs.
type SchedulerConfig struct {
	Dwell           time.Duration // per-stop display time while rotating, default 5s
	FrameDelay      time.Duration // scroll frame cadence, default 30ms (~33 Hz)
	IdlePoll        time.Duration // re-check period while idle, default 1s
	CharWidth       int           // font advance in pixels, for scroll length, default 6
	DefaultDuration time.Duration // broadcast duration when the request has none, default 10s
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.Dwell <= 0 {
		c.Dwell = 5 * time.Second
	}
	if c.FrameDelay <= 0 {
		c.FrameDelay = 30 * time.Millisecond
	}
	if c.IdlePoll <= 0 {
		c.IdlePoll = time.Second
	}
	if c.CharWidth <= 0 {
		c.CharWidth = 6
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = 10 * time.Second
	}
	return c
}

// DisplayScheduler is the single consumer of the stop buffers. It rotates
// through the worker set's stops in reconcile order, holding each snapshot
// on the surface for the dwell time, and yields immediately to a pending
// broadcast. With no stops it idles with a cleared surface.
type DisplayScheduler struct {
	cfg     SchedulerConfig
	set     *WorkerSet
	surface Surface
	metrics *Metrics

	pending *broadcastCell
	state   atomic.Int32

	mu     sync.Mutex // guards cancel and done across start/stop cycles
	cancel context.CancelFunc
	done   chan struct{}
}

// NewDisplayScheduler creates a stopped scheduler.
func NewDisplayScheduler(cfg SchedulerConfig, set *WorkerSet, surface Surface, metrics *Metrics) *DisplayScheduler {
	return &DisplayScheduler{
		cfg:     cfg.withDefaults(),
		set:     set,
		surface: surface,
		metrics: metrics,
		pending: newBroadcastCell(),
	}
}

// State reports the loop's current phase.
func (d *DisplayScheduler) State() SchedulerState {
	return SchedulerState(d.state.Load())
}

// Running reports whether the display loop is currently active.
func (d *DisplayScheduler) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running()
}

func (d *DisplayScheduler) running() bool {
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

// Broadcast queues message to scroll across the surface for roughly
// duration. It preempts a rotation dwell immediately; an in-progress
// broadcast finishes first, and the new request replaces any request
// still pending.
func (d *DisplayScheduler) Broadcast(message string, duration time.Duration) BroadcastRequest {
	if duration <= 0 {
		duration = d.cfg.DefaultDuration
	}
	req := NewBroadcastRequest(message, duration)
	d.pending.set(req)
	log.Printf("scheduler: broadcast %s queued (%q for %s)", req.ID, message, duration)
	return req
}

// Start launches the display loop. Unlike a polling worker the scheduler
// is restartable: operators stop it to hand the surface to something else
// and start it again later. Starting a running scheduler is an error.
func (d *DisplayScheduler) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running() {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	go d.run(ctx, d.done)
	log.Printf("scheduler: started")
	return nil
}

// Stop signals cancellation and blocks up to timeout for the loop to
// exit; the surface is cleared on the way out. On timeout the
// cancellation stays latched and ErrStopTimeout is returned.
func (d *DisplayScheduler) Stop(timeout time.Duration) error {
	d.mu.Lock()
	if !d.running() {
		d.mu.Unlock()
		return ErrNotStarted
	}
	done := d.done
	d.cancel()
	d.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("scheduler: %w", ErrStopTimeout)
	}
}

func (d *DisplayScheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer d.surface.Clear()
	defer d.state.Store(int32(StateIdle))
	defer log.Printf("scheduler: stopped")

	for ctx.Err() == nil {
		// Pending broadcasts outrank everything, including the very first
		// rotation after they were queued.
		if req, ok := d.pending.take(); ok {
			d.broadcast(ctx, req)
			continue
		}
		ids := d.set.StopIDs()
		if len(ids) == 0 {
			d.idle(ctx)
			continue
		}
		d.rotate(ctx, ids)
	}
}

// idle keeps the surface cleared and re-checks for buffers or a pending
// broadcast on a short cadence.
func (d *DisplayScheduler) idle(ctx context.Context) {
	d.state.Store(int32(StateIdle))
	d.surface.Clear()
	select {
	case <-ctx.Done():
	case <-d.pending.ready():
	case <-time.After(d.cfg.IdlePoll):
	}
}

// rotate renders each stop in order, dwelling on each. It returns early
// when woken by a broadcast or cancellation; the outer loop decides what
// runs next. Snapshots are re-resolved by id on every step, never cached
// across steps, so a reconciled-away stop is simply skipped.
func (d *DisplayScheduler) rotate(ctx context.Context, ids []string) {
	d.state.Store(int32(StateRotating))
	for _, id := range ids {
		snap, ok := d.set.Snapshot(id)
		if !ok {
			continue
		}
		d.surface.RenderStop(id, d.set.DisplayName(id), snap)
		d.metrics.rotation()
		select {
		case <-ctx.Done():
			return
		case <-d.pending.ready():
			// Abandon the rest of the dwell and the rotation pass.
			return
		case <-time.After(d.cfg.Dwell):
		}
	}
}

// broadcast scrolls req.Message from off the right edge to fully off the
// left edge within req.Duration, at the fixed frame cadence. The loop
// does not recheck the pending cell: a broadcast only interrupts
// rotation, never another broadcast.
func (d *DisplayScheduler) broadcast(ctx context.Context, req BroadcastRequest) {
	d.state.Store(int32(StateBroadcasting))
	d.metrics.broadcastShown()
	log.Printf("scheduler: broadcasting %s", req.ID)

	width := d.surface.Width()
	textWidth := len(req.Message) * d.cfg.CharWidth
	distance := float64(width + textWidth)
	step := distance / req.Duration.Seconds() * d.cfg.FrameDelay.Seconds()

	x := float64(width)
	deadline := time.Now().Add(req.Duration)
	for time.Now().Before(deadline) {
		d.surface.RenderScrollFrame(req.Message, int(x))
		x -= step
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.cfg.FrameDelay):
		}
	}
	log.Printf("scheduler: broadcast %s complete", req.ID)
}

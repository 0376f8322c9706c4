package arrivalboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// BroadcastRequest is an operator message that preempts rotation and
// scrolls across the surface for roughly Duration. Consumed at most once.
type BroadcastRequest struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

// NewBroadcastRequest tags a message with a fresh id for log correlation.
func NewBroadcastRequest(message string, duration time.Duration) BroadcastRequest {
	return BroadcastRequest{ID: uuid.NewString(), Message: message, Duration: duration}
}

// broadcastCell is the single-slot pending-broadcast mailbox. A new
// request overwrites a still-pending one. Every set signals wake so a
// blocked rotation dwell returns immediately; the signal is a hint only,
// consumers confirm by calling take.
type broadcastCell struct {
	mu      sync.Mutex
	pending *BroadcastRequest
	wake    chan struct{}
}

func newBroadcastCell() *broadcastCell {
	return &broadcastCell{wake: make(chan struct{}, 1)}
}

func (c *broadcastCell) set(req BroadcastRequest) {
	c.mu.Lock()
	c.pending = &req
	c.mu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// take consumes the pending request, if any.
func (c *broadcastCell) take() (BroadcastRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return BroadcastRequest{}, false
	}
	req := *c.pending
	c.pending = nil
	return req, true
}

// ready returns the wake channel observed by the scheduler's waits.
func (c *broadcastCell) ready() <-chan struct{} {
	return c.wake
}

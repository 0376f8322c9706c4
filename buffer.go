package arrivalboard

import "sync"

// StopBuffer is the single-slot cell holding the latest snapshot for one
// stop. Exactly one writer (the stop's polling worker), any number of
// readers. A write replaces the snapshot wholesale; readers never see a
// partially applied one.
type StopBuffer struct {
	mu   sync.RWMutex
	snap StopSnapshot
}

// NewStopBuffer returns a buffer holding an empty snapshot.
func NewStopBuffer() *StopBuffer {
	return &StopBuffer{}
}

// Write replaces the held snapshot.
func (b *StopBuffer) Write(s StopSnapshot) {
	b.mu.Lock()
	b.snap = s
	b.mu.Unlock()
}

// Read returns the most recently written snapshot, or the initial empty
// snapshot if no write has happened yet.
func (b *StopBuffer) Read() StopSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

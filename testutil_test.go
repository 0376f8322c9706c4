package arrivalboard

import (
	"context"
	"sync"
	"time"
)

// fakeSource is a scriptable ArrivalSource: fixed arrivals per stop, an
// optional injected error, and per-stop call counting.
type fakeSource struct {
	mu       sync.Mutex
	byStop   map[string][]Arrival
	err      error
	perStop  map[string]int
	lastFeed string
}

func newFakeSource() *fakeSource {
	return &fakeSource{byStop: map[string][]Arrival{}, perStop: map[string]int{}}
}

func (f *fakeSource) Arrivals(_ context.Context, feedURL, stopID string) ([]Arrival, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.perStop[stopID]++
	f.lastFeed = feedURL
	if f.err != nil {
		return nil, f.err
	}
	src := f.byStop[stopID]
	out := make([]Arrival, len(src))
	copy(out, src)
	return out, nil
}

func (f *fakeSource) set(stopID string, arrivals []Arrival) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byStop[stopID] = arrivals
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) calls(stopID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perStop[stopID]
}

// fakeDirectory maps stop ids to names and doubles as the existence check.
type fakeDirectory map[string]string

func (d fakeDirectory) StopName(stopID string) (string, bool) {
	name, ok := d[stopID]
	return name, ok
}

func (d fakeDirectory) HasStop(stopID string) bool {
	_, ok := d[stopID]
	return ok
}

// fakeFeeds resolves every stop to a synthetic endpoint.
type fakeFeeds struct{}

func (fakeFeeds) FeedURL(stopID string) (string, error) {
	return "http://feed.test/" + stopID, nil
}

// fakeSurface records render calls for assertions. Channels are buffered
// generously so the display loop never blocks on the test.
type fakeSurface struct {
	mu      sync.Mutex
	stops   []string
	scrolls []string
	offsets []int
	clears  int

	stopRendered  chan string
	frameRendered chan string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		stopRendered:  make(chan string, 256),
		frameRendered: make(chan string, 4096),
	}
}

func (s *fakeSurface) RenderStop(stopID, _ string, _ StopSnapshot) {
	s.mu.Lock()
	s.stops = append(s.stops, stopID)
	s.mu.Unlock()
	select {
	case s.stopRendered <- stopID:
	default:
	}
}

func (s *fakeSurface) RenderScrollFrame(text string, x int) {
	s.mu.Lock()
	s.scrolls = append(s.scrolls, text)
	s.offsets = append(s.offsets, x)
	s.mu.Unlock()
	select {
	case s.frameRendered <- text:
	default:
	}
}

func (s *fakeSurface) Clear() {
	s.mu.Lock()
	s.clears++
	s.mu.Unlock()
}

func (s *fakeSurface) Width() int { return 64 }

func (s *fakeSurface) renderedStops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.stops))
	copy(out, s.stops)
	return out
}

func (s *fakeSurface) scrolledTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.scrolls))
	copy(out, s.scrolls)
	return out
}

func (s *fakeSurface) scrollOffsets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.offsets))
	copy(out, s.offsets)
	return out
}

func (s *fakeSurface) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func (s *fakeSurface) awaitStop(timeout time.Duration) (string, bool) {
	select {
	case id := <-s.stopRendered:
		return id, true
	case <-time.After(timeout):
		return "", false
	}
}

func (s *fakeSurface) awaitFrame(timeout time.Duration) (string, bool) {
	select {
	case text := <-s.frameRendered:
		return text, true
	case <-time.After(timeout):
		return "", false
	}
}

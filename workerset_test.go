package arrivalboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDirectory() fakeDirectory {
	return fakeDirectory{
		"A": "High St",
		"B": "Bedford Av",
		"C": "Court Sq",
	}
}

func newTestSet(source *fakeSource) *WorkerSet {
	return NewWorkerSet(WorkerSetConfig{
		PollInterval: 20 * time.Millisecond,
		StopTimeout:  time.Second,
	}, source, fakeFeeds{}, testDirectory(), nil)
}

func TestWorkerSet_ReconcileConverges(t *testing.T) {
	source := newFakeSource()
	ws := newTestSet(source)
	defer func() { _ = ws.Close() }()

	require.NoError(t, ws.Reconcile([]string{"A", "B"}))
	assert.Equal(t, []string{"A", "B"}, ws.StopIDs())

	require.NoError(t, ws.Reconcile([]string{"B", "C"}))
	assert.Equal(t, []string{"B", "C"}, ws.StopIDs())
	assert.Equal(t, 2, ws.Len())

	_, ok := ws.Snapshot("A")
	assert.False(t, ok, "removed stop must not resolve a buffer")

	// A's worker confirmed stop during reconcile; it must not fetch again.
	after := source.calls("A")
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, after, source.calls("A"))
}

func TestWorkerSet_ReconcileToEmptyStopsEverything(t *testing.T) {
	ws := newTestSet(newFakeSource())
	require.NoError(t, ws.Reconcile([]string{"A", "B", "C"}))
	require.Equal(t, 3, ws.Len())

	require.NoError(t, ws.Reconcile(nil))
	assert.Zero(t, ws.Len())
	assert.Empty(t, ws.StopIDs())
}

func TestWorkerSet_UnknownStopDoesNotAffectOthers(t *testing.T) {
	ws := newTestSet(newFakeSource())
	defer func() { _ = ws.Close() }()

	err := ws.Reconcile([]string{"A", "ZZ9"})
	require.ErrorIs(t, err, ErrUnknownStop)
	assert.Equal(t, []string{"A"}, ws.StopIDs())

	_, ok := ws.Snapshot("A")
	assert.True(t, ok)
}

func TestWorkerSet_ReconcileIsIdempotent(t *testing.T) {
	source := newFakeSource()
	ws := newTestSet(source)
	defer func() { _ = ws.Close() }()

	require.NoError(t, ws.Reconcile([]string{"A", "B"}))
	require.Eventually(t, func() bool { return source.calls("A") > 0 }, time.Second, 5*time.Millisecond)
	callsA := source.calls("A")

	require.NoError(t, ws.Reconcile([]string{"A", "B"}))
	assert.Equal(t, []string{"A", "B"}, ws.StopIDs())
	// The retained worker was not restarted: polling continued seamlessly.
	assert.GreaterOrEqual(t, source.calls("A"), callsA)
	assert.Equal(t, 2, ws.Len())
}

func TestWorkerSet_DuplicateDesiredIDsCollapse(t *testing.T) {
	ws := newTestSet(newFakeSource())
	defer func() { _ = ws.Close() }()

	require.NoError(t, ws.Reconcile([]string{"B", "A", "B"}))
	assert.Equal(t, []string{"B", "A"}, ws.StopIDs())
	assert.Equal(t, 2, ws.Len())
}

func TestWorkerSet_SnapshotAll(t *testing.T) {
	source := newFakeSource()
	source.set("A", []Arrival{{RouteID: "A", When: time.Now().UTC().Add(3 * time.Minute)}})
	ws := newTestSet(source)
	defer func() { _ = ws.Close() }()

	require.NoError(t, ws.Reconcile([]string{"A", "B"}))
	require.Eventually(t, func() bool {
		snap, ok := ws.Snapshot("A")
		return ok && len(snap.Entries) == 1
	}, time.Second, 5*time.Millisecond)

	all := ws.SnapshotAll()
	require.Len(t, all, 2)
	assert.Len(t, all["A"].Entries, 1)
	assert.Empty(t, all["B"].Entries, "never-fetched stop renders empty, not as an error")
}

func TestWorkerSet_DisplayNameFallsBackToID(t *testing.T) {
	ws := newTestSet(newFakeSource())
	assert.Equal(t, "Bedford Av", ws.DisplayName("B"))
	assert.Equal(t, "Q99X", ws.DisplayName("Q99X"))
}

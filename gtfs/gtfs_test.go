package gtfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subwayStops = `stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station
L14,1 Av,40.730953,-73.981628,1,
L14N,1 Av,40.730953,-73.981628,0,L14
L14S,1 Av,40.730953,-73.981628,0,L14
G22,Court Sq,40.747023,-73.945264,1,
G22N,Court Sq,40.747023,-73.945264,0,G22
BAD,No Coords,,,0,
`

// The bus export carries a different column set and no location_type.
const busStops = `stop_code,stop_id,stop_name,stop_desc,stop_lat,stop_lon
308209,308209,GRAND ST/HUMBOLDT ST,,40.712123,-73.941079
`

func writeStops(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadStopsFile(t *testing.T) {
	dir := t.TempDir()
	writeStops(t, dir, "stops.txt", subwayStops)

	x, err := LoadStopsFile(filepath.Join(dir, "stops.txt"), ModeTrain)
	require.NoError(t, err)
	assert.Equal(t, 5, x.Len(), "the row without coordinates is dropped")

	name, ok := x.StopName("L14N")
	require.True(t, ok)
	assert.Equal(t, "1 Av", name)
	assert.True(t, x.HasStop("G22"))
	assert.False(t, x.HasStop("BAD"))

	s, ok := x.Stop("L14S")
	require.True(t, ok)
	assert.Equal(t, "L14", s.ParentStation)
	assert.Equal(t, ModeTrain, s.Mode)
	assert.InDelta(t, 40.730953, s.Lat, 1e-9)
}

func TestLoadIndex_MergesSubwayAndBus(t *testing.T) {
	dir := t.TempDir()
	writeStops(t, dir, filepath.Join("gtfs_subway", "stops.txt"), subwayStops)
	writeStops(t, dir, filepath.Join("gtfs_busco", "stops.txt"), busStops)

	x, err := LoadIndex(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, x.Len())

	bus, ok := x.Stop("308209")
	require.True(t, ok)
	assert.Equal(t, ModeBus, bus.Mode)
	assert.Equal(t, "Bus", bus.Line)
}

func TestLoadIndex_SubwayOnly(t *testing.T) {
	dir := t.TempDir()
	writeStops(t, dir, filepath.Join("gtfs_subway", "stops.txt"), subwayStops)

	x, err := LoadIndex(dir)
	require.NoError(t, err)
	assert.True(t, x.HasStop("L14N"))
}

func TestLoadIndex_NoDataIsError(t *testing.T) {
	_, err := LoadIndex(t.TempDir())
	assert.Error(t, err)
}

func TestDirectional(t *testing.T) {
	dir := t.TempDir()
	writeStops(t, dir, "stops.txt", subwayStops)
	x, err := LoadStopsFile(filepath.Join(dir, "stops.txt"), ModeTrain)
	require.NoError(t, err)

	got := x.Directional()
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"G22N", "L14N", "L14S"}, ids)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "Northbound", Stop{ID: "L14N"}.Direction())
	assert.Equal(t, "Southbound", Stop{ID: "L14S"}.Direction())
	assert.Equal(t, "", Stop{ID: "L14"}.Direction())
}

func TestLineForStop(t *testing.T) {
	assert.Equal(t, "Bus", LineForStop("308209", ModeBus))
	assert.Equal(t, "MAIN", LineForStop("701N", ModeTrain))
	assert.Equal(t, "ACE", LineForStop("A41N", ModeTrain))
	assert.Equal(t, "BDFM", LineForStop("G22N", ModeTrain))
	assert.Equal(t, "L", LineForStop("L14N", ModeTrain))
	assert.Equal(t, "1", LineForStop("127N", ModeTrain))
}

package gtfs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadIndex loads every stop file found under dataDir. The subway file
// lives at gtfs_subway/stops.txt and the bus file at gtfs_busco/stops.txt;
// both are optional but at least one must exist.
func LoadIndex(dataDir string) (*Index, error) {
	x := NewIndex()
	loaded := 0
	for _, src := range []struct {
		path string
		mode string
	}{
		{filepath.Join(dataDir, "gtfs_subway", "stops.txt"), ModeTrain},
		{filepath.Join(dataDir, "gtfs_busco", "stops.txt"), ModeBus},
	} {
		f, err := os.Open(src.path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		err = x.consumeStops(f, src.mode)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.path, err)
		}
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no stops.txt found under %s", dataDir)
	}
	return x, nil
}

// LoadStopsFile loads a single stops.txt into a fresh index.
func LoadStopsFile(path, mode string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	x := NewIndex()
	if err := x.consumeStops(f, mode); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return x, nil
}

// consumeStops parses stops.txt rows into the index. The subway and bus
// exports carry different column sets, so columns are resolved by header
// name and rows missing coordinates are skipped.
func (x *Index) consumeStops(r io.Reader, mode string) error {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	cID := idx("stop_id")
	cName := idx("stop_name")
	cLat := idx("stop_lat")
	cLon := idx("stop_lon")
	cLoc := idx("location_type")
	cParent := idx("parent_station")
	if cID < 0 {
		return fmt.Errorf("stops.txt has no stop_id column")
	}

	field := func(row []string, c int) string {
		if c < 0 || c >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[c])
	}
	for _, row := range rec[1:] {
		id := field(row, cID)
		if id == "" {
			continue
		}
		lat, errLat := strconv.ParseFloat(field(row, cLat), 64)
		lon, errLon := strconv.ParseFloat(field(row, cLon), 64)
		if errLat != nil || errLon != nil {
			continue
		}
		x.add(Stop{
			ID:            id,
			Name:          strings.Trim(field(row, cName), `"`),
			Lat:           lat,
			Lon:           lon,
			Line:          LineForStop(id, mode),
			Mode:          mode,
			LocationType:  field(row, cLoc),
			ParentStation: field(row, cParent),
		})
	}
	return nil
}

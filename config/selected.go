package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type selectedStops struct {
	SelectedStops []string `json:"selected_stops"`
}

// LoadSelectedStops reads the persisted stop selection. A missing file is
// an empty selection, not an error.
func LoadSelectedStops(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var sel selectedStops
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, err
	}
	return sel.SelectedStops, nil
}

// SaveSelectedStops persists the stop selection atomically via a
// temp-file rename, so a crash mid-write never truncates the selection.
func SaveSelectedStops(path string, stopIDs []string) error {
	if stopIDs == nil {
		stopIDs = []string{}
	}
	data, err := json.MarshalIndent(selectedStops{SelectedStops: stopIDs}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".selected-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

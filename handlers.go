package arrivalboard

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type stopListEntry struct {
	StopID    string  `json:"stop_id"`
	StopName  string  `json:"stop_name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Line      string  `json:"line"`
	Direction string  `json:"direction"`
}

type stopArrivals struct {
	StopName string          `json:"stop_name"`
	Arrivals []SnapshotEntry `json:"arrivals"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"stops":   s.set.Len(),
		"display": s.sched.State().String(),
	})
}

func (s *Server) handleStops(w http.ResponseWriter, _ *http.Request) {
	stops := s.stops.Directional()
	out := make([]stopListEntry, 0, len(stops))
	for _, st := range stops {
		out = append(out, stopListEntry{
			StopID:    st.ID,
			StopName:  st.Name,
			Lat:       st.Lat,
			Lon:       st.Lon,
			Line:      st.Line,
			Direction: st.Direction(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSelectedStops(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"selected_stops": s.set.StopIDs()})
}

func (s *Server) handlePostSelectedStops(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SelectedStops []string `json:"selected_stops"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "selected_stops must be a list"})
		return
	}
	if s.opts.PersistSelection != nil {
		if err := s.opts.PersistSelection(body.SelectedStops); err != nil {
			log.Printf("server: persisting stop selection failed: %v", err)
		}
	}
	err := s.set.Reconcile(body.SelectedStops)
	applied := s.set.StopIDs()
	if err != nil {
		// Valid stops were still reconciled; report what failed.
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":          err.Error(),
			"selected_stops": applied,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"selected_stops": applied,
	})
}

func (s *Server) handleArrivals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.arrivalsPayload())
}

// arrivalsPayload snapshots every running stop, independent of the
// rendering loop's cadence.
func (s *Server) arrivalsPayload() map[string]stopArrivals {
	snaps := s.set.SnapshotAll()
	out := make(map[string]stopArrivals, len(snaps))
	for id, snap := range snaps {
		out[id] = stopArrivals{
			StopName: s.set.DisplayName(id),
			Arrivals: snap.Entries,
		}
	}
	return out
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message  string  `json:"message"`
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "message is required"})
		return
	}
	req := s.sched.Broadcast(body.Message, time.Duration(body.Duration*float64(time.Second)))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "message sent",
		"id":      req.ID,
		"message": req.Message,
	})
}

func (s *Server) handleDisplayStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"running":     s.sched.Running(),
		"state":       s.sched.State().String(),
		"stops_count": s.set.Len(),
	})
}

func (s *Server) handleDisplayStart(w http.ResponseWriter, _ *http.Request) {
	if err := s.sched.Start(); err != nil {
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "started", "running": true})
}

func (s *Server) handleDisplayStop(w http.ResponseWriter, _ *http.Request) {
	if err := s.sched.Stop(5 * time.Second); err != nil {
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "stopped", "running": false})
}

package arrivalboard

import (
	"log"
	"net/http"
	"time"
)

const (
	livePushInterval = time.Second
	liveWriteWait    = 5 * time.Second
)

// handleLive upgrades to a websocket and pushes the arrivals payload on a
// fixed cadence until the client goes away. The UI uses this instead of
// polling /api/arrivals.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()
	// The server's read timeout no longer applies after the hijack.
	_ = conn.UnderlyingConn().SetDeadline(time.Time{})

	// Drain client frames so pings and close handshakes are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(livePushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(s.arrivalsPayload()); err != nil {
				return
			}
		}
	}
}

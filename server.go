package arrivalboard

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/transit-displays/arrival-board/gtfs"
)

// ServerOptions configures the control API server.
type ServerOptions struct {
	Port int
	// PersistSelection stores the desired stop list so it survives a
	// restart. Optional; nil disables persistence.
	PersistSelection func([]string) error
}

// Server exposes the board's control surface over HTTP: stop selection,
// arrival snapshots, broadcasts, display lifecycle, metrics and a
// websocket live feed.
type Server struct {
	opts     ServerOptions
	set      *WorkerSet
	sched    *DisplayScheduler
	stops    *gtfs.Index
	registry *prometheus.Registry
	upgrader websocket.Upgrader

	httpServer *http.Server
}

// NewServer wires the control surface around a worker set and scheduler.
// registry may be nil to disable the /metrics endpoint.
func NewServer(opts ServerOptions, set *WorkerSet, sched *DisplayScheduler, stops *gtfs.Index, registry *prometheus.Registry) *Server {
	return &Server{
		opts:     opts,
		set:      set,
		sched:    sched,
		stops:    stops,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The board lives on a trusted LAN; the UI origin is not pinned.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the route table. Exported for httptest use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stops", s.handleStops)
	mux.HandleFunc("GET /api/selected-stops", s.handleGetSelectedStops)
	mux.HandleFunc("POST /api/selected-stops", s.handlePostSelectedStops)
	mux.HandleFunc("GET /api/arrivals", s.handleArrivals)
	mux.HandleFunc("POST /api/message", s.handleMessage)
	mux.HandleFunc("GET /api/display/status", s.handleDisplayStatus)
	mux.HandleFunc("POST /api/display/start", s.handleDisplayStart)
	mux.HandleFunc("POST /api/display/stop", s.handleDisplayStop)
	mux.HandleFunc("GET /api/live", s.handleLive)
	if s.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return mux
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	board "github.com/transit-displays/arrival-board"
	"github.com/transit-displays/arrival-board/config"
	"github.com/transit-displays/arrival-board/gtfs"
	"github.com/transit-displays/arrival-board/gtfsrt"
	"github.com/transit-displays/arrival-board/internal"
	"github.com/transit-displays/arrival-board/render"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config.yml")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	stops, err := gtfs.LoadIndex(cfg.Transit.StaticDataDir)
	if err != nil {
		log.Fatalf("loading stop data: %v", err)
	}
	log.Printf("loaded %d stops from %s", stops.Len(), cfg.Transit.StaticDataDir)

	metrics := board.NewMetrics()
	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	source := gtfsrt.NewClient(cfg.Transit.APIKey, cfg.Transit.FetchTimeout())
	set := board.NewWorkerSet(board.WorkerSetConfig{
		PollInterval: cfg.Transit.RefreshInterval(),
		StopTimeout:  cfg.Transit.StopTimeout(),
	}, source, gtfsrt.Resolver{}, stops, metrics)

	surface := render.NewConsole(cfg.Display.Width, cfg.Display.Height, os.Stdout)
	sched := board.NewDisplayScheduler(board.SchedulerConfig{
		Dwell:      cfg.Display.Dwell(),
		FrameDelay: cfg.Display.FrameDelay(),
		IdlePoll:   cfg.Display.IdlePoll(),
	}, set, surface, metrics)

	selected, err := config.LoadSelectedStops(cfg.SelectedStopsFile)
	if err != nil {
		log.Fatalf("loading stop selection: %v", err)
	}
	if err := set.Reconcile(selected); err != nil {
		log.Printf("reconciling saved stop selection: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("starting display: %v", err)
	}

	srv := board.NewServer(board.ServerOptions{
		Port: cfg.Server.Port,
		PersistSelection: func(ids []string) error {
			return config.SaveSelectedStops(cfg.SelectedStopsFile, ids)
		},
	}, set, sched, stops, registry)
	srv.Start()

	handleGracefulShutdown(srv, sched, set)
}

func handleGracefulShutdown(srv *board.Server, sched *board.DisplayScheduler, set *board.WorkerSet) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := sched.Stop(5 * time.Second); err != nil {
		log.Printf("display shutdown error: %v", err)
	}
	if err := set.Close(); err != nil {
		log.Printf("worker shutdown error: %v", err)
	}
	log.Printf("shut down successfully")
}

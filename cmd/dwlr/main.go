// Command dwlr serves the groundwater station API and runs the simulated
// DWLR telemetry feed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/dwlr-monitor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/dwlr-monitor/internal/adapter/kafka"
	"github.com/couchcryptid/dwlr-monitor/internal/adapter/mapbox"
	"github.com/couchcryptid/dwlr-monitor/internal/adapter/sqlite"
	"github.com/couchcryptid/dwlr-monitor/internal/config"
	"github.com/couchcryptid/dwlr-monitor/internal/dataset"
	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/monitor"
	"github.com/couchcryptid/dwlr-monitor/internal/observability"
	"github.com/couchcryptid/dwlr-monitor/internal/preference"
	"github.com/couchcryptid/dwlr-monitor/internal/report"
	"github.com/couchcryptid/dwlr-monitor/internal/simulator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stations, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded", "stations", len(stations), "path", cfg.DatasetPath)

	// Place-name enrichment is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		stations = domain.EnrichStations(ctx, stations, geocoder, logger)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	store, err := sqlite.Open(ctx, cfg.PreferencesDB, logger)
	if err != nil {
		logger.Error("failed to open preference store", "path", cfg.PreferencesDB, "error", err)
		os.Exit(1)
	}
	theme := preference.NewService(store, logger, metrics)
	theme.Load(ctx)

	var (
		publisher simulator.SnapshotPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka feed enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	simCfg := simulator.Config{
		Interval: cfg.SimulatorInterval,
		MaxDelta: cfg.SimulatorMaxDelta,
		Clock:    clock,
	}
	if cfg.SimulatorSeed != 0 {
		simCfg.Rand = rand.New(rand.NewPCG(cfg.SimulatorSeed, cfg.SimulatorSeed))
	}
	sim := simulator.New(stations, simCfg, publisher, logger, metrics)

	view := monitor.NewView(sim.Current(), logger)
	snapshots, unsubscribe := sim.Subscribe()

	var reporter *report.Reporter
	if cfg.SummarySchedule != "" {
		reporter, err = report.NewReporter(view, cfg.SummarySchedule, clock, logger, metrics)
		if err != nil {
			logger.Error("failed to schedule summary report", "error", err)
			os.Exit(1)
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Stations:         view,
		Theme:            theme,
		Simulator:        sim,
		Readiness:        []httpadapter.ReadinessChecker{sim, store},
		SimulatorContext: ctx,
	}, logger, metrics)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		view.Follow(gctx, snapshots)
		return nil
	})

	if cfg.SimulatorEnabled {
		sim.Start(gctx)
	}
	if reporter != nil {
		reporter.RunOnce()
		reporter.Start()
	}

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		if reporter != nil {
			reporter.Stop(shutdownCtx)
		}
		sim.Stop()
		unsubscribe()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("preference store close error", "error", err)
	}

	logger.Info("shutdown complete")
}

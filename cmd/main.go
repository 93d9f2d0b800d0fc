package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heating_scheduler/internal/climate"
	"heating_scheduler/internal/clock"
	"heating_scheduler/internal/config"
	"heating_scheduler/internal/ha"
	"heating_scheduler/internal/handlers"
	"heating_scheduler/internal/logger"
	"heating_scheduler/internal/mqtt"
	"heating_scheduler/internal/repository"
	"heating_scheduler/internal/repository/db"
	"heating_scheduler/internal/server"
	"heating_scheduler/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        Heating Scheduler API
// @version      1.0
// @description  Daily heating schedule, boost override and climate entity reconciliation.
// @BasePath     /
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.New(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalw("invalid schedule timezone", "err", err, "timezone", cfg.Schedule.Timezone)
	}

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB, cfg.Schedule.Path)

	// A corrupt schedule file is fatal; a missing one is replaced by the default.
	sched, created, err := service.LoadOrCreateSchedule(repos.Schedules, service.DefaultScheduleName)
	if err != nil {
		log.Fatalw("failed to load schedule", "err", err, "path", cfg.Schedule.Path)
	}
	if created {
		log.Infow("created default schedule", "path", cfg.Schedule.Path)
	}

	clk := clock.NewRealClock()
	entities, err := buildEntities(cfg, clk)
	if err != nil {
		log.Fatalw("failed to build climate entities", "err", err, "mode", cfg.Device.Mode)
	}
	registry := climate.NewRegistry(entities...)
	log.Infow("climate entities ready", "mode", cfg.Device.Mode, "entities", registry.IDs())

	publisher := newPublisher(cfg, log)
	defer func() { _ = publisher.Close() }()

	// wire dependencies
	services := service.NewService(repos, service.Deps{
		Schedule:      sched,
		Registry:      registry,
		Clock:         clk,
		Location:      loc,
		BoostDuration: cfg.Boost.Duration,
		Publisher:     publisher,
		Log:           log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Reconciler.Run(ctx, cfg.Reconciler.Tick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// buildEntities creates one entity per configured id for the selected device mode.
func buildEntities(cfg *config.Config, clk clock.Clock) ([]climate.Entity, error) {
	out := make([]climate.Entity, 0, len(cfg.Device.Entities))
	switch cfg.Device.Mode {
	case config.DeviceHomeAssistant:
		client, err := ha.NewClient(cfg.HomeAssistant.URL, cfg.HomeAssistant.Token, cfg.HomeAssistant.Timeout)
		if err != nil {
			return nil, err
		}
		for _, id := range cfg.Device.Entities {
			out = append(out, climate.NewHomeAssistantEntity(id, client))
		}
	default:
		for _, id := range cfg.Device.Entities {
			out = append(out, climate.NewSimulatedEntity(id, climate.NewSimulatedDevice(clk)))
		}
	}
	return out, nil
}

// newPublisher connects to the MQTT broker when one is configured. A broker
// that cannot be reached disables publishing rather than stopping the service.
func newPublisher(cfg *config.Config, log *logger.Logger) mqtt.Publisher {
	if cfg.MQTT.Broker == "" {
		return mqtt.NoopPublisher{}
	}
	p, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
	if err != nil {
		log.Warnw("mqtt disabled", "err", err, "broker", cfg.MQTT.Broker)
		return mqtt.NoopPublisher{}
	}
	log.Infow("mqtt publishing enabled", "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
	return p
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg *config.Config, handler *handlers.Handler, log *logger.Logger) {
	h := server.Wrap(handler.InitRoutes(), server.Options{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateLimit:   cfg.HTTP.RateLimit,
	})
	go func() {
		log.Infow("http server listening", "port", cfg.Port)
		if err := srv.Run(cfg.Port, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

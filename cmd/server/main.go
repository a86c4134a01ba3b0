/*
main.go - Application entry point

PURPOSE:
  Starts the vacation engine server: configuration, logging, SQLite
  store, HTTP router, the legacy scheduler loop, and graceful shutdown.

COMMAND-LINE FLAGS:
  -config  Path to the TOML configuration file (optional; built-in
           defaults apply without one)
  -port    Overrides the configured HTTP port when non-zero
  -db      Overrides the configured SQLite path when non-empty
           (":memory:" for an in-memory database)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop the legacy scheduler, drain active requests
  (30s timeout), close the database.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffhub/vacation-engine/api"
	"github.com/staffhub/vacation-engine/config"
	"github.com/staffhub/vacation-engine/logging"
	"github.com/staffhub/vacation-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	port := flag.Int("port", 0, "HTTP port override")
	dbPath := flag.String("db", "", "SQLite database path override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger := logging.Setup(cfg.Logging.File, logging.ParseLevel(cfg.Logging.Level))

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	calendar, err := cfg.ExclusionCalendar()
	if err != nil {
		logger.Error("failed to build exclusion calendar", slog.Any("error", err))
		os.Exit(1)
	}
	rate, err := cfg.LegacyRate()
	if err != nil {
		logger.Error("invalid legacy rate", slog.Any("error", err))
		os.Exit(1)
	}
	interval, err := cfg.CheckInterval()
	if err != nil {
		logger.Error("invalid scheduler interval", slog.Any("error", err))
		os.Exit(1)
	}

	handler := api.NewHandler(api.Deps{
		Staff:      store,
		Ledger:     store,
		LegacyRows: store,
		Calendar:   calendar,
		Params:     cfg.AccrualParams(),
		LegacyRate: rate,
		Logger:     logger,
	})

	var scheduler *api.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = api.NewScheduler(handler.LegacySched, interval, logger)
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.Any("error", err))
	}
}

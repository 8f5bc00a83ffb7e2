// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"checkin/internal/checkin"
	"checkin/internal/checkin/handler"
	httpapi "checkin/internal/http"
	"checkin/internal/platform/config"
	"checkin/internal/platform/httpserver"
	"checkin/internal/platform/logger"
	"checkin/internal/platform/metrics"
	"checkin/internal/sheets"
	"checkin/internal/state"
	"checkin/internal/window"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var client sheets.Client
	switch cfg.Backend {
	case config.BackendWorkbook:
		client = sheets.NewWorkbookClient(cfg.WorkbookPath)
	default:
		client = sheets.NewHTTPClient(cfg.SheetsBaseURL, cfg.SheetsAPIKey, cfg.SpreadsheetID)
	}

	m := metrics.New()
	container := state.NewContainer()
	refresher := state.NewRefresher(container, client, cfg, log, m)

	days := make([]window.DayWindow, 0, len(cfg.Days))
	for _, d := range cfg.Days {
		days = append(days, d.Window)
	}
	service := checkin.NewService(container, days, cfg.Location, log, m)

	h := handler.New(service, log)
	router := httpapi.NewRouter(h, log, cfg.AllowedOrigin)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Snapshot refresh runs independent of request traffic; until the first
	// successful build the service answers 503.
	go func() {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("refresher stopped", "error", err)
		}
	}()

	go func() {
		log.Info("starting check-in server", "addr", cfg.Addr, "backend", string(cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// README: Entry point; loads config, wires services, starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"tripdraft/internal/app"
	"tripdraft/internal/config"
	httptransport "tripdraft/internal/http"
	"tripdraft/internal/http/handlers"
	"tripdraft/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := app.NewLogger(os.Stdout, cfg.Log.Level)
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.MustNew(reg)

	a, err := app.Build(ctx, cfg, logger, m)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var images handlers.ImageSource
	if cfg.Maps.ProxyImages && a.Places != nil {
		images = a.Places
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:      a.Planner,
		Images:       images,
		ImageTimeout: cfg.Maps.Timeout,
		Verifier:     a.Verifier,
		Gatherer:     reg,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		Logger:       logger,
	})

	// Drafting takes at most the generation timeout, then enrichment and the
	// image run side by side within the maps budget.
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.AI.Timeout + cfg.Maps.Budget + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr, "store", cfg.Store.Backend, "auth", a.Verifier != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

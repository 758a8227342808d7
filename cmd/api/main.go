package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "review_dashboard/internal/adapters/http_server"
	"review_dashboard/internal/adapters/observability"
	"review_dashboard/internal/app"
	"review_dashboard/internal/shared"
	"review_dashboard/internal/wiring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	store, err := wiring.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.ApprovalStore).Msg("approval store unavailable")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("close approval store")
		}
	}()

	h, p := wiring.Clients(cfg)
	svc := app.NewReviewService(h, p, store.ApprovalStore, app.ServiceOptions{
		FixturesOnly:   cfg.FixturesOnly,
		DefaultPlaceID: cfg.DefaultPlaceID(),
		PropertyName:   cfg.PropertyName,
	})

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc, Health: store.Health})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("store", cfg.ApprovalStore).
			Bool("hostaway_live", h != nil && !cfg.FixturesOnly).
			Bool("places_live", p != nil && !cfg.FixturesOnly).
			Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

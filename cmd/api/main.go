package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medrec/records-gateway/internal/config"
	"github.com/medrec/records-gateway/internal/handler"
	"github.com/medrec/records-gateway/internal/handler/query"
	"github.com/medrec/records-gateway/internal/handler/record"
	"github.com/medrec/records-gateway/internal/middleware"
	"github.com/medrec/records-gateway/internal/repository/mysql"
	"github.com/medrec/records-gateway/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	store := mysql.NewStore(cfg.Database)

	// Schema init runs to completion before the listener starts, so the
	// first request never races table creation. A failure is logged but
	// not fatal: the server comes up and every query fails until the
	// database is reachable.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Error().Err(err).Msg("schema initialization failed; queries will fail until the database is reachable")
	}
	cancel()

	h := handler.NewHandler(store)
	recordHandler := record.NewHandler(store)
	queryHandler := query.NewHandler(store)

	r := router.New(recordHandler, queryHandler, h, router.Config{
		CORS:          middleware.DefaultCORSConfig(),
		MetricsPrefix: "records_gateway",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

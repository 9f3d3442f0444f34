package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/launches/internal/config"
	"github.com/Nixie-Tech-LLC/launches/internal/launchapi"
	"github.com/Nixie-Tech-LLC/launches/internal/view"
	"github.com/Nixie-Tech-LLC/launches/internal/web"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	SetupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// optional backends
	cache := InitCache(ctx, cfg)
	searches := InitSearchLog(cfg)

	opts := launchapi.Options{
		BaseURL:     cfg.LaunchAPIURL,
		Timeout:     cfg.LaunchAPITimeout,
		SearchLimit: cfg.SearchLimit,
		CacheTTL:    cfg.CacheTTL,
	}
	if cache != nil {
		opts.Cache = cache
		defer cache.Close()
	}
	client, err := launchapi.NewClient(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create launch api client")
	}

	var viewOpts []view.Option
	if searches != nil {
		viewOpts = append(viewOpts, view.WithSearchLog(searches, cfg.RecentLimit))
	}
	router := view.NewRouter(client, viewOpts...)

	tmpl, err := web.LoadTemplates()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, client, router, tmpl)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

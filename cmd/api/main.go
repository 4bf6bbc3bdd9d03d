package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "salon_site/internal/adapters/http_server"
	"salon_site/internal/adapters/observability"
	"salon_site/internal/adapters/places"
	"salon_site/internal/adapters/sheets"
	"salon_site/internal/adapters/upstream"
	"salon_site/internal/app"
	"salon_site/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// upstreams share one client and one limiter
	hc := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	rl := upstream.NewLimiter(cfg.UpstreamRPS)
	reviews := app.NewReviewsService(
		places.New(cfg.PlacesBase, cfg.PlacesLanguage, hc, rl),
		app.ReviewsConfig{APIKey: cfg.PlacesAPIKey, PlaceID: cfg.PlaceID},
	)
	prices := app.NewPriceService(sheets.New(cfg.PricesCSVURL, hc, rl))

	// http
	srv := server.New(cfg.RequestTimeout)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Reviews: reviews, Prices: prices, PricesMaxAge: cfg.PricesMaxAge})

	servers := []*http.Server{{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, observability.NewMetricsServer(cfg.MetricsAddr, reg))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Str("addr", s.Addr).Msg("shutdown failed")
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("stopped")
}

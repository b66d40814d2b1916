package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"

	httpapi "github.com/i474232898/prognoza/internal/api/http"
	"github.com/i474232898/prognoza/internal/config"
	"github.com/i474232898/prognoza/internal/places"
	"github.com/i474232898/prognoza/internal/scheduler"
	"github.com/i474232898/prognoza/internal/store"
	"github.com/i474232898/prognoza/internal/weather"
	"github.com/i474232898/prognoza/internal/weather/providers"
)

// backend is what both store implementations provide.
type backend interface {
	weather.Store
	places.Store
	scheduler.Pruner
}

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider and geocoder calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	db, closeDB := openStore(cfg)
	defer closeDB()

	// Providers with resilience (rate limit + backoff + circuit breaker).
	var provs []weather.Provider
	for _, name := range cfg.Providers {
		opts := providers.Options{
			UserAgent:         cfg.UserAgent,
			RequestsPerSecond: cfg.ProviderRPS,
		}
		switch name {
		case "metnorway":
			opts.BaseURL = cfg.MetNoBaseURL
			provs = append(provs, providers.NewMetNorwayProvider(httpClient, opts))
		case "openmeteo":
			opts.BaseURL = cfg.OpenMeteoBaseURL
			provs = append(provs, providers.NewOpenMeteoProvider(httpClient, opts))
		}
	}

	var geocoder places.Geocoder
	switch cfg.Geocoder {
	case config.GeocoderGoogle:
		geocoder = places.NewGoogleGeocoder(cfg.GoogleAPIKey)
	default:
		geocoder = places.NewNominatimGeocoder(httpClient, cfg.NominatimBaseURL, cfg.UserAgent)
	}
	placeSvc := places.NewService(db, geocoder, cfg.DefaultPlace)

	// Core service orchestrating providers and store.
	service := weather.NewService(db, placeSvc, provs, weather.ServiceConfig{
		DefaultExpiry: cfg.DefaultExpiry,
		Location:      cfg.TimeZone,
	})

	// Scheduler that keeps the known places fresh.
	sched := scheduler.New(placeSvc, service, db, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp("prognoza")
	httpapi.RegisterRoutes(app, service, placeSvc)

	go func() {
		log.Printf("INFO: listening on :%s with providers %v", cfg.Port, cfg.Providers)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// openStore connects to Postgres when a database URL is configured and
// falls back to the in-memory store otherwise.
func openStore(cfg *config.AppConfig) (backend, func()) {
	if cfg.DatabaseURL == "" {
		log.Printf("INFO: DATABASE_URL not set, keeping forecasts in memory")
		return store.NewMemoryStore(cfg.StoreMaxSpans, cfg.StoreMaxAge), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}
	if err := store.InitSchema(ctx, pool); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	return store.NewPostgresStore(pool, cfg.StoreMaxAge), pool.Close
}

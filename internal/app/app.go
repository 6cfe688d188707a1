// Package app wires configuration into a running pipeline: store, source
// client, enrichment chain, feed publisher, and orchestrator. Both the
// one-shot CLI and the daemon build the same App.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/config"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/enrich"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/feed"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/geocode"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/observability"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/pipeline"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/store"
)

// App holds the wired service graph.
type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	Metrics      *observability.Metrics
	Store        store.Store
	Orchestrator *pipeline.Orchestrator

	pg   *store.Postgres
	feed *feed.Publisher
}

// New builds the full service graph from configuration. Optional pieces
// (Postgres, weather, external geocoding, Kafka feed) are wired only when
// configured; the pipeline runs without them.
func New(ctx context.Context, cfg *config.Config, opts ...pipeline.Option) (*App, error) {
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}

	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.pg = pg
		a.Store = pg
		logger.Info("using postgres store")
	} else {
		a.Store = store.NewMemory()
		logger.Info("using in-memory store, data will not survive the process")
	}

	src := source.NewClient(cfg.SourceBaseURL, cfg.TeamID, cfg.SourceRateLimit, cfg.SourceTimeout, logger,
		source.WithRequestObserver(func(endpoint string, seconds float64) {
			metrics.SourceRequestDuration.WithLabelValues(endpoint).Observe(seconds)
		}))

	var external geocode.Lookup
	if cfg.GeocodeEnabled() {
		external = geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeUserAgent, cfg.GeocodeTimeout, logger)
		logger.Info("external geocoding enabled", "base_url", cfg.GeocodeBaseURL)
	}
	resolver := geocode.NewResolver(external, logger)

	var weather enrich.HistoryFetcher
	if cfg.WeatherEnabled() {
		weather = source.NewWeatherClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout, logger)
		logger.Info("weather enrichment enabled", "base_url", cfg.WeatherBaseURL)
	} else {
		logger.Info("weather enrichment disabled")
	}
	enricher := enrich.New(resolver, weather, cfg.StartHour, logger)

	var publisher pipeline.Publisher
	if cfg.FeedEnabled() {
		a.feed = feed.NewPublisher(cfg.KafkaBrokers, cfg.FeedTopic, logger)
		publisher = a.feed
		logger.Info("canonical feed enabled", "topic", cfg.FeedTopic)
	}

	a.Orchestrator = pipeline.New(src, enricher, a.Store, publisher, cfg.Team, metrics, logger, opts...)
	return a, nil
}

// CheckReadiness pings the backing store. The in-memory store is always ready.
func (a *App) CheckReadiness(ctx context.Context) error {
	if a.pg != nil {
		return a.pg.HealthCheck(ctx)
	}
	return nil
}

// Close releases the store pool and the feed writer.
func (a *App) Close() {
	if a.feed != nil {
		if err := a.feed.Close(); err != nil {
			a.Logger.Error("feed close error", "error", err)
		}
	}
	if a.pg != nil {
		a.pg.Close()
	}
}

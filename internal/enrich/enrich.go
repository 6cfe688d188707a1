// Package enrich attaches venue coordinates and game-time weather to game
// results. Enrichment degrades gracefully: an unresolvable venue or an
// unavailable weather provider leaves the game intact and is reported as a
// warning by the caller, never as a failed record.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/extract"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/geocode"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

// DefaultStartHour stands in for the local first pitch when the schedule only
// carries a date. Most regular-season games start in the evening.
const DefaultStartHour = 19

// CoordinateResolver maps a venue to coordinates.
type CoordinateResolver interface {
	Resolve(ctx context.Context, name, city, region string) (domain.Coordinates, geocode.Source, error)
}

// HistoryFetcher returns the raw hourly weather document for a location and
// calendar date.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, lat, lon float64, day time.Time, hour int) ([]byte, error)
}

// Enricher decorates game results with coordinates and weather.
type Enricher struct {
	resolver  CoordinateResolver
	weather   HistoryFetcher
	startHour int
	logger    *slog.Logger
}

// New creates an Enricher. startHour outside [0,23] falls back to
// DefaultStartHour.
func New(resolver CoordinateResolver, weather HistoryFetcher, startHour int, logger *slog.Logger) *Enricher {
	if startHour < 0 || startHour > 23 {
		startHour = DefaultStartHour
	}
	return &Enricher{
		resolver:  resolver,
		weather:   weather,
		startHour: startHour,
		logger:    logger,
	}
}

// EnrichGame resolves the game's venue and attaches the weather snapshot
// closest to first pitch. The resolved coordinates are returned so the caller
// can persist them on the venue; they are non-nil whenever resolution
// succeeded, even if the weather lookup then failed. Errors from the
// geocoding and weather layers pass through with their unwrap targets intact,
// so callers can distinguish the non-fatal cases (geocode.ErrUnresolved,
// source.ErrWeatherUnavailable) from real failures.
func (e *Enricher) EnrichGame(ctx context.Context, game *domain.GameResult) (*domain.Coordinates, error) {
	if game.VenueName == "" {
		e.logger.Debug("game has no venue, skipping enrichment", "game_id", game.ExternalID)
		return nil, fmt.Errorf("game %s has no venue: %w", game.ExternalID, geocode.ErrUnresolved)
	}

	coords, src, err := e.resolver.Resolve(ctx, game.VenueName, game.VenueCity, game.VenueRegion)
	if err != nil {
		return nil, fmt.Errorf("resolve venue for game %s: %w", game.ExternalID, err)
	}
	e.logger.Debug("venue resolved",
		"game_id", game.ExternalID,
		"venue", game.VenueName,
		"source", string(src),
	)

	if e.weather == nil {
		return &coords, nil
	}

	day := game.Start.UTC().Truncate(24 * time.Hour)
	doc, err := e.weather.FetchHistory(ctx, coords.Lat, coords.Lon, day, e.startHour)
	if err != nil {
		return &coords, fmt.Errorf("weather for game %s: %w", game.ExternalID, err)
	}

	hours, err := extract.WeatherHistory(doc)
	if err != nil {
		return &coords, fmt.Errorf("weather for game %s: %w", game.ExternalID, err)
	}

	snap, ok := closestHour(hours, e.startHour)
	if !ok {
		// Absence of a matching hour is a valid empty result.
		return &coords, fmt.Errorf("%w: no hourly data for game %s on %s",
			source.ErrWeatherUnavailable, game.ExternalID, day.Format("2006-01-02"))
	}
	game.Weather = &snap
	return &coords, nil
}

// NonFatal reports whether an enrichment error should downgrade to a warning.
func NonFatal(err error) bool {
	return errors.Is(err, geocode.ErrUnresolved) || errors.Is(err, source.ErrWeatherUnavailable)
}

// closestHour picks the snapshot whose hour of day is nearest to target.
// Snapshots arrive in chronological order, so a strict comparison keeps the
// earlier hour on ties.
func closestHour(hours []domain.WeatherSnapshot, target int) (domain.WeatherSnapshot, bool) {
	best := -1
	bestDist := 25
	for i, h := range hours {
		d := h.Time.Hour() - target
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return domain.WeatherSnapshot{}, false
	}
	return hours[best], true
}

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/enrich"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/extract"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/geocode"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/standardize"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/validate"
)

// SyncResultsAndWeather fetches the season schedule, keeps final games inside
// the date range, enriches them with venue coordinates and game-time weather,
// and persists the results. Weather enrichment is an annotation: a game whose
// venue cannot be resolved or whose weather lookup fails is still persisted,
// with the miss recorded as a warning.
func (o *Orchestrator) SyncResultsAndWeather(ctx context.Context, season int, dateRange DateRange) (*Report, error) {
	r, finish := o.begin(KindResults)
	defer func() { finish(r) }()

	docs, err := o.source.FetchSchedule(ctx, season)
	if err != nil {
		r.Err = fmt.Errorf("fetch schedule for %d: %w", season, err)
		return r, r.Err
	}

	for _, doc := range docs {
		games, skips, err := extract.Schedule(doc)
		if err != nil {
			r.Err = fmt.Errorf("extract schedule: %w", err)
			return r, r.Err
		}
		o.countSkips(r, KindResults, skips)

		for _, game := range games {
			if !game.Final || !dateRange.Contains(game.Entry.Start) {
				continue
			}
			if o.cancelled(ctx, r) {
				return r, nil
			}
			r.Fetched++
			o.metrics.RecordsFetched.WithLabelValues(KindResults).Inc()

			if err := o.syncOneResult(ctx, r, game); err != nil {
				r.Err = err
				return r, r.Err
			}
		}
	}

	return r, nil
}

// syncOneResult carries one final game to a terminal verdict. Returns an
// error only for store failures; data-quality problems land in the report.
func (o *Orchestrator) syncOneResult(ctx context.Context, r *Report, game extract.ScheduledGame) error {
	result := domain.GameResult{
		ScheduleEntry: game.Entry,
		Final:         true,
	}
	if game.HomeScore != nil {
		result.HomeScore = *game.HomeScore
	}
	if game.AwayScore != nil {
		result.AwayScore = *game.AwayScore
	}

	var verdict validate.Verdict

	// Score finality: a game already final with different scores is a
	// correction, rejected unless corrections are enabled.
	if existing, ok, err := o.store.GetGameResult(ctx, result.ExternalID); err != nil {
		return fmt.Errorf("look up game %s: %w", result.ExternalID, err)
	} else if ok && existing.Final && !o.allowCorrections &&
		(existing.HomeScore != result.HomeScore || existing.AwayScore != result.AwayScore) {
		verdict.Rejections = append(verdict.Rejections, fmt.Sprintf(
			"%s: game %s already final at %d-%d, got %d-%d",
			validate.ReasonScoreConflict, result.ExternalID,
			existing.HomeScore, existing.AwayScore, result.HomeScore, result.AwayScore))
		o.observeVerdict(KindResults, verdict)
		r.countVerdict(verdict)
		return nil
	}

	var coords *domain.Coordinates
	if o.enricher != nil {
		var err error
		coords, err = o.enricher.EnrichGame(ctx, &result)
		if err != nil {
			if !enrich.NonFatal(err) {
				return fmt.Errorf("enrich game %s: %w", result.ExternalID, err)
			}
			o.observeEnrichMiss(err)
			verdict.Warnings = append(verdict.Warnings, "enrichment unavailable: "+err.Error())
		} else if result.Weather != nil {
			o.metrics.WeatherLookups.WithLabelValues("hit").Inc()
		}
	}

	check := validate.CheckGameResult(result, standardize.TeamName(o.team))
	verdict.Warnings = append(verdict.Warnings, check.Warnings...)
	verdict.Rejections = append(verdict.Rejections, check.Rejections...)
	o.observeVerdict(KindResults, verdict)
	if !r.countVerdict(verdict) {
		o.logger.Warn("game result rejected", "game_id", result.ExternalID, "reasons", verdict.Rejections)
		return nil
	}

	canonical := o.standardizer.GameResult(result, o.team)
	r.Record.Add(canonical.Outcome)

	if canonical.VenueName != "" {
		if err := o.store.UpsertVenue(ctx, domain.Venue{
			Name:        canonical.VenueName,
			City:        canonical.VenueCity,
			Region:      canonical.VenueRegion,
			Country:     canonical.VenueCountry,
			Coordinates: coords,
			Active:      true,
		}); err != nil {
			return fmt.Errorf("persist venue for game %s: %w", canonical.ExternalID, err)
		}
	}
	if err := o.store.UpsertGameResult(ctx, canonical); err != nil {
		return fmt.Errorf("persist game %s: %w", canonical.ExternalID, err)
	}
	if o.feed != nil {
		o.publishErr(r, o.feed.PublishGameResult(ctx, canonical))
	}
	return nil
}

func (o *Orchestrator) observeEnrichMiss(err error) {
	if errors.Is(err, geocode.ErrUnresolved) {
		o.metrics.GeocodeResolutions.WithLabelValues("none", "unresolved").Inc()
		return
	}
	o.metrics.WeatherLookups.WithLabelValues("unavailable").Inc()
}

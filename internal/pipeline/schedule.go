package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/extract"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/validate"
)

// SyncSchedule fetches and persists the tracked team's schedule for a season.
// Venues are created on first reference; their coordinates stay unset until a
// results sync resolves them.
func (o *Orchestrator) SyncSchedule(ctx context.Context, season int) (*Report, error) {
	r, finish := o.begin(KindSchedule)
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
		r.Fetched += len(games) + len(skips)
		o.countSkips(r, KindSchedule, skips)
		o.metrics.RecordsFetched.WithLabelValues(KindSchedule).Add(float64(len(games) + len(skips)))

		for _, game := range games {
			if o.cancelled(ctx, r) {
				return r, nil
			}

			verdict := validate.CheckScheduleEntry(game.Entry)
			o.observeVerdict(KindSchedule, verdict)
			if !r.countVerdict(verdict) {
				o.logger.Warn("schedule entry rejected", "game_id", game.Entry.ExternalID, "reasons", verdict.Rejections)
				continue
			}

			if err := o.ensureVenue(ctx, game.Entry); err != nil {
				r.Err = fmt.Errorf("persist venue for game %s: %w", game.Entry.ExternalID, err)
				return r, r.Err
			}
			if err := o.store.UpsertScheduleEntry(ctx, game.Entry); err != nil {
				r.Err = fmt.Errorf("persist schedule entry %s: %w", game.Entry.ExternalID, err)
				return r, r.Err
			}
		}
	}

	return r, nil
}

// ensureVenue creates or refreshes the venue a schedule entry references.
// The store keeps previously resolved coordinates.
func (o *Orchestrator) ensureVenue(ctx context.Context, e domain.ScheduleEntry) error {
	if e.VenueName == "" {
		return nil
	}
	return o.store.UpsertVenue(ctx, domain.Venue{
		Name:    e.VenueName,
		City:    e.VenueCity,
		Region:  e.VenueRegion,
		Country: e.VenueCountry,
		Active:  true,
	})
}

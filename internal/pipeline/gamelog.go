package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/extract"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/validate"
)

// SyncPlayerGameLog fetches one player's season game log and persists every
// stat line that clears validation. Games are processed in chronological
// order so cumulative totals advance correctly; a full-season replay
// recomputes them from the feed and upserts by (player, date), making the
// operation idempotent.
func (o *Orchestrator) SyncPlayerGameLog(ctx context.Context, playerID string, season int) (*Report, error) {
	r, finish := o.begin(KindGameLog)
	defer func() { finish(r) }()

	doc, err := o.source.FetchGameLog(ctx, playerID)
	if err != nil {
		r.Err = fmt.Errorf("fetch game log for player %s: %w", playerID, err)
		return r, r.Err
	}

	pid, playerName, rows, skips, err := extract.GameLog(doc, season)
	if err != nil {
		r.Err = fmt.Errorf("extract game log for player %s: %w", playerID, err)
		return r, r.Err
	}
	r.Fetched = len(rows) + len(skips)
	o.countSkips(r, KindGameLog, skips)
	o.metrics.RecordsFetched.WithLabelValues(KindGameLog).Add(float64(r.Fetched))

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	prior, err := o.seedPrior(ctx, pid, rows)
	if err != nil {
		r.Err = err
		return r, r.Err
	}

	for _, row := range rows {
		if o.cancelled(ctx, r) {
			return r, nil
		}

		stat := domain.PlayerGameStat{
			PlayerID:   pid,
			PlayerName: playerName,
			GameID:     row.GameID,
			Date:       row.Date,
			Opponent:   row.Opponent,
			Home:       row.Home,
			TeamResult: row.TeamResult,
		}

		verdict := validate.CheckGameStat(&stat, row.Line, prior)
		o.observeVerdict(KindGameLog, verdict)
		if !r.countVerdict(verdict) {
			o.logger.Warn("game stat rejected",
				"player_id", pid,
				"date", row.Date.Format("2006-01-02"),
				"reasons", verdict.Rejections,
			)
			continue
		}

		canonical := o.standardizer.GameStat(stat)
		if err := o.store.UpsertPlayerGameStat(ctx, canonical); err != nil {
			r.Err = fmt.Errorf("persist stat for player %s on %s: %w",
				pid, row.Date.Format("2006-01-02"), err)
			return r, r.Err
		}
		if o.feed != nil {
			o.publishErr(r, o.feed.PublishGameStat(ctx, canonical))
		}

		prior = validate.Prior{
			LastDate:   canonical.Date,
			Cumulative: canonical.Cumulative,
			HasHistory: true,
		}
	}

	return r, nil
}

// seedPrior picks the cross-validation starting point. When the feed extends
// stored history (its first game postdates the stored latest), totals
// continue from the store. When the feed replays dates already stored, a
// fresh start recomputes totals from the feed itself, so re-running over
// unchanged data converges instead of rejecting every game as a duplicate.
func (o *Orchestrator) seedPrior(ctx context.Context, playerID string, rows []extract.GameLogRow) (validate.Prior, error) {
	if len(rows) == 0 {
		return validate.Prior{}, nil
	}
	last, ok, err := o.store.LatestPlayerGameStat(ctx, playerID)
	if err != nil {
		return validate.Prior{}, fmt.Errorf("load prior for player %s: %w", playerID, err)
	}
	if !ok || !last.Date.Before(rows[0].Date) {
		return validate.Prior{}, nil
	}
	return validate.Prior{
		LastDate:   last.Date,
		Cumulative: last.Cumulative,
		HasHistory: true,
	}, nil
}

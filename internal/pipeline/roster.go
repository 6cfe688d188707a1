package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/extract"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/validate"
)

// SyncRoster fetches the tracked team's roster and persists every entry that
// clears validation. Matching is by player external id, so re-running with
// unchanged upstream data touches the same entities.
func (o *Orchestrator) SyncRoster(ctx context.Context) (*Report, error) {
	r, finish := o.begin(KindRoster)
	defer func() { finish(r) }()

	doc, err := o.source.FetchRoster(ctx)
	if err != nil {
		r.Err = fmt.Errorf("fetch roster: %w", err)
		return r, r.Err
	}

	entries, skips, err := extract.Roster(doc, o.clock.Now().UTC())
	if err != nil {
		r.Err = fmt.Errorf("extract roster: %w", err)
		return r, r.Err
	}
	r.Fetched = len(entries) + len(skips)
	o.countSkips(r, KindRoster, skips)
	o.metrics.RecordsFetched.WithLabelValues(KindRoster).Add(float64(r.Fetched))

	for _, entry := range entries {
		if o.cancelled(ctx, r) {
			return r, nil
		}

		verdict := validate.CheckRosterEntry(entry)
		o.observeVerdict(KindRoster, verdict)
		if !r.countVerdict(verdict) {
			o.logger.Warn("roster entry rejected", "player", entry.Name, "reasons", verdict.Rejections)
			continue
		}

		canonical := o.standardizer.RosterEntry(entry)
		if err := o.store.UpsertRosterEntry(ctx, canonical); err != nil {
			r.Err = fmt.Errorf("persist roster entry %s: %w", canonical.ExternalID, err)
			return r, r.Err
		}
		if o.feed != nil {
			o.publishErr(r, o.feed.PublishRosterEntry(ctx, canonical))
		}
	}

	return r, nil
}

// countSkips records extraction-level skips in the report and metrics.
func (o *Orchestrator) countSkips(r *Report, kind string, skips []extract.Skip) {
	for _, s := range skips {
		r.Skipped++
		r.Warnings = append(r.Warnings, fmt.Sprintf("extraction skipped %s: %s", s.Ref, s.Reason))
	}
	if len(skips) > 0 {
		o.metrics.RecordsSkipped.WithLabelValues(kind).Add(float64(len(skips)))
	}
}

func (o *Orchestrator) observeVerdict(kind string, v validate.Verdict) {
	switch v.Status() {
	case validate.StatusRejected:
		o.metrics.RecordsRejected.WithLabelValues(kind).Inc()
	case validate.StatusWarnings:
		o.metrics.RecordsWarned.WithLabelValues(kind).Inc()
	default:
		o.metrics.RecordsAccepted.WithLabelValues(kind).Inc()
	}
}

// Package pipeline sequences the sync operations: fetch, extract, enrich,
// validate, standardize, persist. One operation exists per entity kind, each
// returning a run report. Record-scoped problems never abort a run; only a
// total source failure does.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/observability"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/standardize"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/store"
)

// SourceClient fetches raw provider documents.
type SourceClient interface {
	FetchRoster(ctx context.Context) ([]byte, error)
	FetchSchedule(ctx context.Context, season int) ([][]byte, error)
	FetchBoxScore(ctx context.Context, gameID string) ([]byte, error)
	FetchGameLog(ctx context.Context, playerID string) ([]byte, error)
}

// GameEnricher attaches coordinates and weather to a game result. The
// returned coordinates are non-nil when venue resolution succeeded, even if
// the weather lookup then missed.
type GameEnricher interface {
	EnrichGame(ctx context.Context, g *domain.GameResult) (*domain.Coordinates, error)
}

// Publisher emits canonical records to the downstream feed. A nil
// feed.Publisher satisfies it as a no-op.
type Publisher interface {
	PublishRosterEntry(ctx context.Context, e domain.RosterEntry) error
	PublishGameResult(ctx context.Context, g domain.GameResult) error
	PublishGameStat(ctx context.Context, s domain.PlayerGameStat) error
}

// Orchestrator owns the per-run record lifecycle and the cross-run last-sync
// bookkeeping. Safe for concurrent use: operations over different players or
// date ranges may run in parallel, serialization of writes is the store's
// concern.
type Orchestrator struct {
	source       SourceClient
	enricher     GameEnricher
	standardizer *standardize.Standardizer
	store        store.Store
	feed         Publisher
	metrics      *observability.Metrics
	logger       *slog.Logger
	clock        clockwork.Clock

	// Tracked club, provider abbreviation. Outcomes are derived from this
	// team's perspective.
	team string

	// allowCorrections permits overwriting a final score with a different
	// final score. Off by default: a conflicting re-finalization is rejected.
	allowCorrections bool

	mu       sync.Mutex
	lastSync map[string]time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClock injects the clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(o *Orchestrator) { o.clock = c }
}

// WithScoreCorrections permits re-finalizing games with changed scores.
func WithScoreCorrections() Option {
	return func(o *Orchestrator) { o.allowCorrections = true }
}

// New creates an Orchestrator. enricher and feed may be nil.
func New(src SourceClient, enricher GameEnricher, st store.Store, feed Publisher,
	team string, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		source:   src,
		enricher: enricher,
		store:    st,
		feed:     feed,
		metrics:  metrics,
		logger:   logger,
		clock:    clockwork.NewRealClock(),
		team:     team,
		lastSync: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.standardizer = standardize.New(o.clock)
	return o
}

// LastSync reports when a sync kind last completed, ok=false if it never ran.
func (o *Orchestrator) LastSync(kind string) (time.Time, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	t, ok := o.lastSync[kind]
	return t, ok
}

func (o *Orchestrator) markSynced(kind string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastSync[kind] = o.clock.Now().UTC()
}

// begin starts run bookkeeping shared by all operations.
func (o *Orchestrator) begin(kind string) (*Report, func(*Report)) {
	start := o.clock.Now().UTC()
	o.metrics.SyncRunning.Set(1)
	o.logger.Info("sync started", "kind", kind)

	r := &Report{Kind: kind, StartedAt: start}
	finish := func(r *Report) {
		r.FinishedAt = o.clock.Now().UTC()
		o.metrics.SyncRunning.Set(0)
		o.metrics.SyncDuration.WithLabelValues(kind).Observe(r.FinishedAt.Sub(start).Seconds())
		if !r.Partial && r.Err == nil {
			o.markSynced(kind)
		}
		o.logger.Info("sync finished",
			"kind", kind,
			"fetched", r.Fetched,
			"accepted", r.Accepted,
			"warnings", r.Warned,
			"rejected", r.Rejected,
			"skipped", r.Skipped,
			"partial", r.Partial,
		)
	}
	return r, finish
}

// cancelled checks for cancellation between records. Records are never
// interrupted mid-flight; a cancelled run keeps what it already persisted.
func (o *Orchestrator) cancelled(ctx context.Context, r *Report) bool {
	if ctx.Err() != nil {
		r.Partial = true
		o.logger.Warn("sync cancelled between records", "kind", r.Kind, "reason", ctx.Err())
		return true
	}
	return false
}

// publishErr downgrades feed publish failures to warnings. The store is the
// source of truth; the feed is best-effort.
func (o *Orchestrator) publishErr(r *Report, err error) {
	if err != nil {
		r.Warnings = append(r.Warnings, "feed publish: "+err.Error())
		o.logger.Warn("feed publish failed", "kind", r.Kind, "error", err)
	}
}

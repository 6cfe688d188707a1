package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/geocode"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/observability"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/pipeline"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/store"
)

type fakeSource struct {
	roster      []byte
	rosterErr   error
	schedule    [][]byte
	scheduleErr error
	gamelog     []byte
	gamelogErr  error
}

func (f *fakeSource) FetchRoster(context.Context) ([]byte, error) {
	return f.roster, f.rosterErr
}

func (f *fakeSource) FetchSchedule(context.Context, int) ([][]byte, error) {
	return f.schedule, f.scheduleErr
}

func (f *fakeSource) FetchBoxScore(context.Context, string) ([]byte, error) {
	return nil, source.ErrNotFound
}

func (f *fakeSource) FetchGameLog(context.Context, string) ([]byte, error) {
	return f.gamelog, f.gamelogErr
}

type fakeEnricher struct {
	coords *domain.Coordinates
	snap   *domain.WeatherSnapshot
	err    error
	calls  int
}

func (f *fakeEnricher) EnrichGame(_ context.Context, g *domain.GameResult) (*domain.Coordinates, error) {
	f.calls++
	if f.err != nil {
		return f.coords, f.err
	}
	g.Weather = f.snap
	return f.coords, nil
}

var testClockStart = time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

func newOrchestrator(src pipeline.SourceClient, enricher pipeline.GameEnricher, st store.Store,
	opts ...pipeline.Option) *pipeline.Orchestrator {
	opts = append([]pipeline.Option{pipeline.WithClock(clockwork.NewFakeClockAt(testClockStart))}, opts...)
	return pipeline.New(src, enricher, st, nil, "LAD",
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		opts...)
}

func rosterDoc() []byte {
	return []byte(`{
		"team": {"displayName": "Los Angeles Dodgers"},
		"athletes": [
			{
				"id": "34081", "fullName": "Mookie Betts", "jersey": "50",
				"position": {"abbreviation": "SS"},
				"alternatePositions": [{"abbreviation": "RF"}],
				"bats": {"abbreviation": "R"}, "throws": {"abbreviation": "R"},
				"status": {"type": "active"}
			},
			{
				"id": "30193", "fullName": "Freddie Freeman",
				"position": {"abbreviation": "1B"},
				"status": {"type": "active"}
			},
			{
				"id": "99999", "fullName": "No Position",
				"status": {"type": "active"}
			}
		]
	}`)
}

func scheduleDoc(events ...string) []byte {
	doc := `{"events":[`
	for i, ev := range events {
		if i > 0 {
			doc += ","
		}
		doc += ev
	}
	return []byte(doc + `]}`)
}

func eventJSON(id, date, state string, homeScore, awayScore float64) string {
	return fmt.Sprintf(`{
		"id": %q, "date": %q, "name": "Los Angeles Dodgers at Chicago Cubs",
		"competitions": [{
			"competitors": [
				{"homeAway": "home", "team": {"displayName": "Chicago Cubs"}, "score": {"value": %g}},
				{"homeAway": "away", "team": {"displayName": "Los Angeles Dodgers"}, "score": {"value": %g}}
			],
			"venue": {"fullName": "Wrigley Field", "address": {"city": "Chicago", "state": "IL", "country": "USA"}},
			"attendance": 38432,
			"status": {"period": 9, "type": {"state": %q}}
		}]
	}`, id, date, homeScore, awayScore, state)
}

func TestSyncRoster(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	o := newOrchestrator(&fakeSource{roster: rosterDoc()}, nil, st)

	report, err := o.SyncRoster(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Rejected, "active player without a position must be rejected")
	assert.Contains(t, report.Rejections[0], "active-player-without-position")

	last, ok := o.LastSync(pipeline.KindRoster)
	assert.True(t, ok)
	assert.Equal(t, testClockStart, last)
}

func TestSyncRosterSourceFailure(t *testing.T) {
	o := newOrchestrator(&fakeSource{rosterErr: source.ErrUnavailable}, nil, store.NewMemory())

	report, err := o.SyncRoster(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrUnavailable)
	assert.NotNil(t, report)

	_, ok := o.LastSync(pipeline.KindRoster)
	assert.False(t, ok, "a failed run must not advance last-sync")
}

func TestSyncSchedule(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	docs := [][]byte{scheduleDoc(
		eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6),
		eventJSON("401696002", "2025-06-15T18:20Z", "pre", 0, 0),
	)}
	o := newOrchestrator(&fakeSource{schedule: docs}, nil, st)

	report, err := o.SyncSchedule(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 2, report.Accepted)

	v, ok, err := st.GetVenue(ctx, "Wrigley Field")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Chicago", v.City)
	assert.Nil(t, v.Coordinates, "schedule sync does not geocode")
}

func TestSyncResultsAndWeather(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	docs := [][]byte{scheduleDoc(
		eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6),
		eventJSON("401696002", "2025-06-15T18:20Z", "pre", 0, 0),
	)}
	enricher := &fakeEnricher{
		coords: &domain.Coordinates{Lat: 41.9484, Lon: -87.6553},
		snap:   &domain.WeatherSnapshot{TempF: 74, Condition: "Partly cloudy"},
	}
	o := newOrchestrator(&fakeSource{schedule: docs}, enricher, st)

	report, err := o.SyncResultsAndWeather(ctx, 2025, pipeline.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Fetched, "only final games are results")
	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, enricher.calls)
	assert.Equal(t, domain.TeamRecord{Wins: 1}, report.Record)

	game, ok, err := st.GetGameResult(ctx, "401696001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeWin, game.Outcome, "away Dodgers won 6-3")
	require.NotNil(t, game.Weather)
	assert.Equal(t, 74.0, game.Weather.TempF)

	v, ok, err := st.GetVenue(ctx, "Wrigley Field")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, v.Coordinates)
	assert.Equal(t, 41.9484, v.Coordinates.Lat)
}

func TestSyncResultsWeatherHitMetric(t *testing.T) {
	docs := [][]byte{scheduleDoc(eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6))}

	// Coordinates without a snapshot means no weather fetcher is wired;
	// that must not count as a lookup hit.
	enricher := &fakeEnricher{coords: &domain.Coordinates{Lat: 41.9484, Lon: -87.6553}}
	metrics := observability.NewMetricsForTesting()
	o := pipeline.New(&fakeSource{schedule: docs}, enricher, store.NewMemory(), nil, "LAD",
		metrics, slog.New(slog.NewTextHandler(io.Discard, nil)),
		pipeline.WithClock(clockwork.NewFakeClockAt(testClockStart)))

	_, err := o.SyncResultsAndWeather(context.Background(), 2025, pipeline.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WeatherLookups.WithLabelValues("hit")))

	enricher.snap = &domain.WeatherSnapshot{TempF: 74, Condition: "Clear"}
	_, err = o.SyncResultsAndWeather(context.Background(), 2025, pipeline.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherLookups.WithLabelValues("hit")))
}

func TestSyncResultsDateRangeFilter(t *testing.T) {
	docs := [][]byte{scheduleDoc(
		eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6),
		eventJSON("401696050", "2025-07-04T20:10Z", "post", 2, 1),
	)}
	o := newOrchestrator(&fakeSource{schedule: docs}, nil, store.NewMemory())

	report, err := o.SyncResultsAndWeather(context.Background(), 2025, pipeline.DateRange{
		From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fetched)
	assert.Equal(t, domain.TeamRecord{Losses: 1}, report.Record)
}

func TestSyncResultsUnresolvedVenueStillAccepted(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	docs := [][]byte{scheduleDoc(eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6))}
	enricher := &fakeEnricher{err: fmt.Errorf("venue: %w", geocode.ErrUnresolved)}
	o := newOrchestrator(&fakeSource{schedule: docs}, enricher, st)

	report, err := o.SyncResultsAndWeather(ctx, 2025, pipeline.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Rejected)
	assert.Equal(t, 1, report.Warned, "unresolved venue downgrades to a warning")

	game, ok, err := st.GetGameResult(ctx, "401696001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, game.Weather, "weather fields stay unset")
	assert.Equal(t, domain.OutcomeWin, game.Outcome)
}

func TestSyncResultsEnricherInfrastructureFailureAborts(t *testing.T) {
	docs := [][]byte{scheduleDoc(eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6))}
	enricher := &fakeEnricher{err: errors.New("geocoder: connection refused")}
	o := newOrchestrator(&fakeSource{schedule: docs}, enricher, store.NewMemory())

	_, err := o.SyncResultsAndWeather(context.Background(), 2025, pipeline.DateRange{})
	assert.Error(t, err)
}

func TestSyncResultsScoreFinality(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.UpsertGameResult(ctx, domain.GameResult{
		ScheduleEntry: domain.ScheduleEntry{
			ExternalID: "401696001",
			Start:      time.Date(2025, 6, 14, 23, 10, 0, 0, time.UTC),
			HomeTeam:   "Chicago Cubs",
			AwayTeam:   "Los Angeles Dodgers",
		},
		HomeScore: 3,
		AwayScore: 5,
		Final:     true,
		Outcome:   domain.OutcomeWin,
	}))
	docs := [][]byte{scheduleDoc(eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6))}

	t.Run("conflicting refinalization rejected", func(t *testing.T) {
		o := newOrchestrator(&fakeSource{schedule: docs}, nil, st)
		report, err := o.SyncResultsAndWeather(ctx, 2025, pipeline.DateRange{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Rejected)
		assert.Contains(t, report.Rejections[0], "final-score-conflict")

		game, _, _ := st.GetGameResult(ctx, "401696001")
		assert.Equal(t, 5, game.AwayScore, "stored score unchanged")
	})

	t.Run("correction path overwrites", func(t *testing.T) {
		o := newOrchestrator(&fakeSource{schedule: docs}, nil, st, pipeline.WithScoreCorrections())
		report, err := o.SyncResultsAndWeather(ctx, 2025, pipeline.DateRange{})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Accepted)

		game, _, _ := st.GetGameResult(ctx, "401696001")
		assert.Equal(t, 6, game.AwayScore)
	})
}

func TestSyncResultsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	docs := [][]byte{scheduleDoc(eventJSON("401696001", "2025-06-14T23:10Z", "post", 3, 6))}
	o := newOrchestrator(&fakeSource{schedule: docs}, nil, st)

	first, err := o.SyncResultsAndWeather(ctx, 2025, pipeline.DateRange{})
	require.NoError(t, err)
	second, err := o.SyncResultsAndWeather(ctx, 2025, pipeline.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, first.Accepted, second.Accepted)
	game, ok, err := st.GetGameResult(ctx, "401696001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 6, game.AwayScore)
}

func gameLogDoc(events ...string) []byte {
	doc := `{"athlete": {"id": "30193", "fullName": "Freddie Freeman"}, "season": {"year": 2025}, "events": [`
	for i, ev := range events {
		if i > 0 {
			doc += ","
		}
		doc += ev
	}
	return []byte(doc + `]}`)
}

func TestSyncPlayerGameLog(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	doc := gameLogDoc(
		`{"id": "g2", "date": "2025-06-15", "opponent": "vs SF", "result": "W 2-1",
		  "stats": [5,0,0,0,0,0,0,1,0,1,0,0,0.300,0.373,0.499,0.871]}`,
		`{"id": "g1", "date": "2025-06-14", "opponent": "@ SF", "result": "L 3-6",
		  "stats": [4,1,2,1,0,0,1,0,0,1,0,0,0.320,0.400,0.510,0.910]}`,
	)
	o := newOrchestrator(&fakeSource{gamelog: doc}, nil, st)

	report, err := o.SyncPlayerGameLog(ctx, "30193", 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 2, report.Persisted())
	assert.Equal(t, 1, report.Warned, "rounded OPS mismatch warns")

	stats, err := st.PlayerGameStats(ctx, "30193")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Chronological order despite the feed being newest-first.
	assert.Equal(t, "g1", stats[0].GameID)
	assert.Equal(t, domain.CumulativeTotals{Games: 1, AtBats: 4, Hits: 2}, stats[0].Cumulative)
	assert.Equal(t, domain.CumulativeTotals{Games: 2, AtBats: 9, Hits: 2}, stats[1].Cumulative)

	assert.Equal(t, "San Francisco Giants", stats[0].Opponent)
	assert.Equal(t, "Freddie Freeman", stats[0].PlayerName)
	assert.Equal(t, 3, stats[0].TotalBasesCount)
}

func TestSyncPlayerGameLogIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	doc := gameLogDoc(
		`{"id": "g1", "date": "2025-06-14", "opponent": "@ SF", "result": "L 3-6",
		  "stats": [4,1,2,1,0,0,1,0,0,1,0,0,0.320,0.400,0.510,0.910]}`,
	)
	o := newOrchestrator(&fakeSource{gamelog: doc}, nil, st)

	_, err := o.SyncPlayerGameLog(ctx, "30193", 2025)
	require.NoError(t, err)
	afterFirst, err := st.PlayerGameStats(ctx, "30193")
	require.NoError(t, err)

	second, err := o.SyncPlayerGameLog(ctx, "30193", 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, second.Persisted(), "replay re-accepts, not rejects")

	afterSecond, err := st.PlayerGameStats(ctx, "30193")
	require.NoError(t, err)
	require.Len(t, afterSecond, 1, "no duplicate rows")
	assert.Equal(t, domain.CumulativeTotals{Games: 1, AtBats: 4, Hits: 2},
		afterSecond[0].Cumulative, "totals not double counted")
	assert.Empty(t, cmp.Diff(afterFirst, afterSecond), "replay must converge byte for byte")
}

func TestSyncPlayerGameLogDuplicateDateRejected(t *testing.T) {
	ctx := context.Background()
	doc := gameLogDoc(
		`{"id": "g1", "date": "2025-06-14", "opponent": "@ SF", "result": "L 3-6",
		  "stats": [4,1,2,1,0,0,1,0,0,1,0,0,0.320,0.400,0.510,0.910]}`,
		`{"id": "g1b", "date": "2025-06-14", "opponent": "@ SF", "result": "L 3-6",
		  "stats": [4,1,2,1,0,0,1,0,0,1,0,0,0.320,0.400,0.510,0.910]}`,
	)
	o := newOrchestrator(&fakeSource{gamelog: doc}, nil, store.NewMemory())

	report, err := o.SyncPlayerGameLog(ctx, "30193", 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Persisted())
	assert.Equal(t, 1, report.Rejected)
	assert.Contains(t, report.Rejections[0], "duplicate-player-date")
}

func TestSyncPlayerGameLogExtendsStoredHistory(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.UpsertPlayerGameStat(ctx, domain.PlayerGameStat{
		PlayerID:     "30193",
		Date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		BattingStats: domain.BattingStats{AtBats: 40, Hits: 12},
		Cumulative:   domain.CumulativeTotals{Games: 10, AtBats: 40, Hits: 12},
	}))
	doc := gameLogDoc(
		`{"id": "g11", "date": "2025-06-14", "opponent": "@ SF", "result": "L 3-6",
		  "stats": [5,0,0,0,0,0,0,1,0,1,0,0,0.300,0.380,0.500,0.880]}`,
	)
	o := newOrchestrator(&fakeSource{gamelog: doc}, nil, st)

	_, err := o.SyncPlayerGameLog(ctx, "30193", 2025)
	require.NoError(t, err)

	latest, ok, err := st.LatestPlayerGameStat(ctx, "30193")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.CumulativeTotals{Games: 11, AtBats: 45, Hits: 12}, latest.Cumulative)
}

func TestSyncCancelledBetweenRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := store.NewMemory()
	o := newOrchestrator(&fakeSource{roster: rosterDoc()}, nil, st)

	report, err := o.SyncRoster(ctx)
	require.NoError(t, err, "cancellation is a partial run, not a failure")
	assert.True(t, report.Partial)
	assert.Equal(t, 0, report.Persisted())

	_, ok := o.LastSync(pipeline.KindRoster)
	assert.False(t, ok, "partial runs do not advance last-sync")
}

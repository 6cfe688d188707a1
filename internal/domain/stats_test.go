package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

func TestBattingStats_Derived(t *testing.T) {
	tests := []struct {
		name       string
		stats      domain.BattingStats
		singles    int
		totalBases int
		xbh        int
	}{
		{
			name:       "all singles",
			stats:      domain.BattingStats{Hits: 3},
			singles:    3,
			totalBases: 3,
			xbh:        0,
		},
		{
			name:       "mixed line",
			stats:      domain.BattingStats{Hits: 4, Doubles: 1, Triples: 1, HomeRuns: 1},
			singles:    1,
			totalBases: 1 + 2 + 3 + 4,
			xbh:        3,
		},
		{
			name:       "hitless",
			stats:      domain.BattingStats{AtBats: 4},
			singles:    0,
			totalBases: 0,
			xbh:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.singles, tt.stats.Singles())
			assert.Equal(t, tt.totalBases, tt.stats.TotalBases())
			assert.Equal(t, tt.xbh, tt.stats.ExtraBaseHits())
		})
	}
}

func TestCumulativeTotals_Advance(t *testing.T) {
	c := domain.CumulativeTotals{Games: 10, AtBats: 40, Hits: 12}
	next := c.Advance(domain.BattingStats{AtBats: 5, Hits: 0})

	assert.Equal(t, domain.CumulativeTotals{Games: 11, AtBats: 45, Hits: 12}, next)
	// Advance never mutates the receiver.
	assert.Equal(t, domain.CumulativeTotals{Games: 10, AtBats: 40, Hits: 12}, c)
}

func TestDeriveOutcome(t *testing.T) {
	tests := []struct {
		name    string
		home    string
		away    string
		hs, as  int
		tracked string
		want    domain.Outcome
	}{
		{"home win", "Los Angeles Dodgers", "San Diego Padres", 6, 3, "Los Angeles Dodgers", domain.OutcomeWin},
		{"home loss", "Los Angeles Dodgers", "San Diego Padres", 1, 6, "Los Angeles Dodgers", domain.OutcomeLoss},
		{"away win", "Chicago Cubs", "Los Angeles Dodgers", 2, 5, "Los Angeles Dodgers", domain.OutcomeWin},
		{"away loss", "Chicago Cubs", "Los Angeles Dodgers", 5, 2, "Los Angeles Dodgers", domain.OutcomeLoss},
		{"tie", "Chicago Cubs", "Los Angeles Dodgers", 3, 3, "Los Angeles Dodgers", domain.OutcomeTie},
		{"not involved", "Chicago Cubs", "San Diego Padres", 3, 1, "Los Angeles Dodgers", domain.Outcome("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveOutcome(tt.home, tt.away, tt.hs, tt.as, tt.tracked)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTeamRecord(t *testing.T) {
	var r domain.TeamRecord
	for _, o := range []domain.Outcome{
		domain.OutcomeWin, domain.OutcomeWin, domain.OutcomeLoss, domain.OutcomeTie, domain.Outcome(""),
	} {
		r.Add(o)
	}

	assert.Equal(t, 2, r.Wins)
	assert.Equal(t, 1, r.Losses)
	assert.Equal(t, 1, r.Ties)
	assert.Equal(t, "2-1", r.String())
}

func TestSummarize(t *testing.T) {
	stats := []domain.PlayerGameStat{
		{
			Date:         time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC),
			BattingStats: domain.BattingStats{AtBats: 4, Hits: 2, Doubles: 1, RBIs: 1},
		},
		{
			Date:         time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
			BattingStats: domain.BattingStats{AtBats: 5, Hits: 1, HomeRuns: 1, RBIs: 2, Strikeouts: 2},
		},
	}

	got := domain.Summarize(stats)

	assert.Equal(t, 2, got.GamesPlayed)
	assert.Equal(t, 9, got.AtBats)
	assert.Equal(t, 3, got.Hits)
	assert.Equal(t, 1, got.Doubles)
	assert.Equal(t, 1, got.HomeRuns)
	assert.Equal(t, 3, got.RBIs)
	assert.InDelta(t, 0.333, got.BattingAverage, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	got := domain.Summarize(nil)
	assert.Zero(t, got.GamesPlayed)
	assert.Zero(t, got.BattingAverage)
}

func TestRosterEntry_PrimaryPosition(t *testing.T) {
	entry := domain.RosterEntry{
		Positions: []domain.PlayerPosition{
			{Position: domain.PositionShortstop},
			{Position: domain.PositionSecondBase, Primary: true},
		},
	}
	assert.Equal(t, domain.PositionSecondBase, entry.PrimaryPosition())

	assert.Equal(t, domain.Position(""), domain.RosterEntry{}.PrimaryPosition())
}

package domain

import (
	"math"
	"time"
)

// StatLineLength is the number of entries in a provider box-score stat array.
const StatLineLength = 16

// StatLine is the provider's positional batting line. The order is a strict
// contract: AB, R, H, 2B, 3B, HR, RBI, BB, HBP, SO, SB, CS, AVG, OBP, SLG, OPS.
type StatLine [StatLineLength]float64

// Positional indices into a StatLine.
const (
	StatAtBats = iota
	StatRuns
	StatHits
	StatDoubles
	StatTriples
	StatHomeRuns
	StatRBIs
	StatWalks
	StatHitByPitch
	StatStrikeouts
	StatStolenBases
	StatCaughtStealing
	StatAVG
	StatOBP
	StatSLG
	StatOPS
)

// BattingStats holds one game's typed batting statistics.
type BattingStats struct {
	AtBats         int `json:"at_bats"`
	Runs           int `json:"runs"`
	Hits           int `json:"hits"`
	Doubles        int `json:"doubles"`
	Triples        int `json:"triples"`
	HomeRuns       int `json:"home_runs"`
	RBIs           int `json:"rbis"`
	Walks          int `json:"walks"`
	HitByPitch     int `json:"hit_by_pitch"`
	Strikeouts     int `json:"strikeouts"`
	StolenBases    int `json:"stolen_bases"`
	CaughtStealing int `json:"caught_stealing"`

	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OPS                float64 `json:"ops"`
}

// Singles is hits that went for exactly one base.
func (b BattingStats) Singles() int {
	return b.Hits - b.Doubles - b.Triples - b.HomeRuns
}

// TotalBases is singles + 2×doubles + 3×triples + 4×home runs.
func (b BattingStats) TotalBases() int {
	return b.Singles() + 2*b.Doubles + 3*b.Triples + 4*b.HomeRuns
}

// ExtraBaseHits is doubles + triples + home runs.
func (b BattingStats) ExtraBaseHits() int {
	return b.Doubles + b.Triples + b.HomeRuns
}

// CumulativeTotals is a player's season-to-date running totals through and
// including a given game.
type CumulativeTotals struct {
	Games  int `json:"games"`
	AtBats int `json:"at_bats"`
	Hits   int `json:"hits"`
}

// Advance returns the totals after folding in one more game's counting stats.
func (c CumulativeTotals) Advance(b BattingStats) CumulativeTotals {
	return CumulativeTotals{
		Games:  c.Games + 1,
		AtBats: c.AtBats + b.AtBats,
		Hits:   c.Hits + b.Hits,
	}
}

// PlayerGameStat is one row per (player, game).
type PlayerGameStat struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name,omitempty"`
	GameID     string    `json:"game_id,omitempty"`
	Date       time.Time `json:"date"` // UTC midnight of the game date
	Opponent   string    `json:"opponent,omitempty"`
	Home       bool      `json:"home"`
	TeamResult Outcome   `json:"team_result,omitempty"`

	BattingStats

	// Derived fields populated by the standardizer.
	TotalBasesCount int `json:"total_bases,omitempty"`
	SinglesCount    int `json:"singles,omitempty"`

	Cumulative CumulativeTotals `json:"cumulative"`

	ProcessedAt time.Time `json:"processed_at,omitzero"`
}

// SeasonSummary is an aggregate over a player's accepted game stats.
type SeasonSummary struct {
	GamesPlayed    int     `json:"games_played"`
	AtBats         int     `json:"at_bats"`
	Runs           int     `json:"runs"`
	Hits           int     `json:"hits"`
	Doubles        int     `json:"doubles"`
	Triples        int     `json:"triples"`
	HomeRuns       int     `json:"home_runs"`
	RBIs           int     `json:"rbis"`
	Walks          int     `json:"walks"`
	Strikeouts     int     `json:"strikeouts"`
	StolenBases    int     `json:"stolen_bases"`
	CaughtStealing int     `json:"caught_stealing"`
	BattingAverage float64 `json:"batting_average"`
}

// Summarize aggregates a player's game stats into season totals, recomputing
// the batting average from the summed counts.
func Summarize(stats []PlayerGameStat) SeasonSummary {
	var s SeasonSummary
	for _, g := range stats {
		s.GamesPlayed++
		s.AtBats += g.AtBats
		s.Runs += g.Runs
		s.Hits += g.Hits
		s.Doubles += g.Doubles
		s.Triples += g.Triples
		s.HomeRuns += g.HomeRuns
		s.RBIs += g.RBIs
		s.Walks += g.Walks
		s.Strikeouts += g.Strikeouts
		s.StolenBases += g.StolenBases
		s.CaughtStealing += g.CaughtStealing
	}
	if s.AtBats > 0 {
		s.BattingAverage = Round3(float64(s.Hits) / float64(s.AtBats))
	}
	return s
}

// Round3 rounds to three decimal places, the provider's display precision for
// rate statistics.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Package standardize normalizes accepted records into the canonical shape
// the persisted store receives. Only records that cleared validation pass
// through here: rounding, name expansion, and derived counting fields happen
// after the quality gate, never before it.
package standardize

import (
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// Standardizer finalizes records for persistence.
type Standardizer struct {
	clock clockwork.Clock
}

// New creates a Standardizer stamping records with the given clock.
func New(clock clockwork.Clock) *Standardizer {
	return &Standardizer{clock: clock}
}

// GameStat canonicalizes one accepted player game stat: rate statistics
// round to three decimals, the opponent abbreviation expands to a full club
// name, and the derived counting fields are computed from the typed stats.
func (s *Standardizer) GameStat(stat domain.PlayerGameStat) domain.PlayerGameStat {
	stat.BattingAverage = domain.Round3(stat.BattingAverage)
	stat.OnBasePercentage = domain.Round3(stat.OnBasePercentage)
	stat.SluggingPercentage = domain.Round3(stat.SluggingPercentage)
	stat.OPS = domain.Round3(stat.OPS)

	stat.Opponent = TeamName(stat.Opponent)
	stat.PlayerName = CanonicalName(stat.PlayerName)

	stat.SinglesCount = stat.Singles()
	stat.TotalBasesCount = stat.TotalBases()

	stat.ProcessedAt = s.clock.Now().UTC()
	return stat
}

// RosterEntry canonicalizes one accepted roster entry.
func (s *Standardizer) RosterEntry(e domain.RosterEntry) domain.RosterEntry {
	e.Name = CanonicalName(e.Name)
	e.Team = TeamName(e.Team)
	e.LastUpdated = s.clock.Now().UTC()
	return e
}

// GameResult canonicalizes one accepted game result: team abbreviations
// expand, the outcome is derived from the final score when absent, and the
// display day of week is filled from the start time.
func (s *Standardizer) GameResult(g domain.GameResult, trackedTeam string) domain.GameResult {
	g.HomeTeam = TeamName(g.HomeTeam)
	g.AwayTeam = TeamName(g.AwayTeam)

	if g.Final && g.Outcome == "" {
		g.Outcome = domain.DeriveOutcome(g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore, TeamName(trackedTeam))
	}
	if g.DayOfWeek == "" && !g.Start.IsZero() {
		g.DayOfWeek = g.Start.UTC().Weekday().String()
	}
	return g
}

// CanonicalName collapses interior whitespace and trims a player name.
// Provider tables occasionally pad names or double spaces around suffixes.
func CanonicalName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

package validate

import (
	"math"
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// opsTolerance is how far OPS may drift from OBP+SLG before the mismatch is
// flagged. Provider-side rounding of OBP and SLG at three decimals routinely
// compounds to a full thousandth in OPS, so the mismatch is a warning rather
// than a rejection.
const opsTolerance = 0.001

// atBatsWarnThreshold flags implausibly long games. Extra-inning games can
// legitimately exceed it, hence warning not rejection.
const atBatsWarnThreshold = 10

// Prior is the cross-record context for a candidate: the player's most recent
// accepted state. A zero Prior means no history (first game of the season).
type Prior struct {
	LastDate   time.Time
	Cumulative domain.CumulativeTotals
	HasHistory bool
}

// TypeCheck coerces a positional stat line into typed batting stats. Counting
// stats must be whole numbers; a fractional value in a counting slot means the
// positional contract slipped and the record is rejected.
func TypeCheck(line domain.StatLine, v *Verdict) domain.BattingStats {
	counts := [12]int{}
	names := [12]string{
		"at_bats", "runs", "hits", "doubles", "triples", "home_runs",
		"rbis", "walks", "hit_by_pitch", "strikeouts", "stolen_bases", "caught_stealing",
	}
	for i := 0; i < 12; i++ {
		whole, frac := math.Modf(line[i])
		if frac != 0 {
			v.rejectf(ReasonUncoercible, "%s is not a whole number: %v", names[i], line[i])
			continue
		}
		counts[i] = int(whole)
	}

	return domain.BattingStats{
		AtBats:         counts[domain.StatAtBats],
		Runs:           counts[domain.StatRuns],
		Hits:           counts[domain.StatHits],
		Doubles:        counts[domain.StatDoubles],
		Triples:        counts[domain.StatTriples],
		HomeRuns:       counts[domain.StatHomeRuns],
		RBIs:           counts[domain.StatRBIs],
		Walks:          counts[domain.StatWalks],
		HitByPitch:     counts[domain.StatHitByPitch],
		Strikeouts:     counts[domain.StatStrikeouts],
		StolenBases:    counts[domain.StatStolenBases],
		CaughtStealing: counts[domain.StatCaughtStealing],

		BattingAverage:     line[domain.StatAVG],
		OnBasePercentage:   line[domain.StatOBP],
		SluggingPercentage: line[domain.StatSLG],
		OPS:                line[domain.StatOPS],
	}
}

// RangeCheck verifies numeric domain bounds. Negative counting stats are hard
// invariants and reject; soft bounds only warn.
func RangeCheck(b domain.BattingStats, v *Verdict) {
	counts := map[string]int{
		"at_bats":         b.AtBats,
		"runs":            b.Runs,
		"hits":            b.Hits,
		"doubles":         b.Doubles,
		"triples":         b.Triples,
		"home_runs":       b.HomeRuns,
		"rbis":            b.RBIs,
		"walks":           b.Walks,
		"hit_by_pitch":    b.HitByPitch,
		"strikeouts":      b.Strikeouts,
		"stolen_bases":    b.StolenBases,
		"caught_stealing": b.CaughtStealing,
	}
	for _, name := range []string{
		"at_bats", "runs", "hits", "doubles", "triples", "home_runs",
		"rbis", "walks", "hit_by_pitch", "strikeouts", "stolen_bases", "caught_stealing",
	} {
		if counts[name] < 0 {
			v.rejectf(ReasonNegativeCount, "%s is %d", name, counts[name])
		}
	}

	if b.AtBats > atBatsWarnThreshold {
		v.warnf("at_bats %d exceeds %d for a single game", b.AtBats, atBatsWarnThreshold)
	}

	rates := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"batting_average", b.BattingAverage, 0, 1},
		{"on_base_percentage", b.OnBasePercentage, 0, 1},
		{"slugging_percentage", b.SluggingPercentage, 0, 1},
		{"ops", b.OPS, 0, 2},
	}
	for _, r := range rates {
		if r.value < r.min || r.value > r.max {
			v.warnf("%s %.3f outside [%g,%g]", r.name, r.value, r.min, r.max)
		}
	}
}

// BusinessLogic enforces the cross-field counting invariants. The OPS
// consistency check only warns, see opsTolerance.
func BusinessLogic(b domain.BattingStats, v *Verdict) {
	if b.Hits > b.AtBats {
		v.rejectf(ReasonHitsExceedAB, "%d hits with %d at-bats", b.Hits, b.AtBats)
	}
	if xbh := b.ExtraBaseHits(); xbh > b.Hits {
		v.rejectf(ReasonXBHExceedHits, "%d extra-base hits with %d hits", xbh, b.Hits)
	}
	if diff := math.Abs(b.OPS - (b.OnBasePercentage + b.SluggingPercentage)); diff > opsTolerance {
		v.warnf("ops %.3f differs from obp+slg %.3f by %.4f", b.OPS, b.OnBasePercentage+b.SluggingPercentage, diff)
	}
}

// CrossValidate checks the candidate against the player's prior accepted
// state and assigns the advanced cumulative totals. With no history the stage
// trivially passes and totals start from zero.
func CrossValidate(stat *domain.PlayerGameStat, prior Prior, v *Verdict) {
	if prior.HasHistory {
		if sameDay(stat.Date, prior.LastDate) {
			v.rejectf(ReasonDuplicateDate, "player %s already has a record for %s",
				stat.PlayerID, stat.Date.Format("2006-01-02"))
			return
		}
		if stat.Date.Before(prior.LastDate) {
			v.rejectf(ReasonTotalsDecreased, "record dated %s arrives after accepted record dated %s",
				stat.Date.Format("2006-01-02"), prior.LastDate.Format("2006-01-02"))
			return
		}
	}
	next := prior.Cumulative.Advance(stat.BattingStats)
	if next.AtBats < prior.Cumulative.AtBats || next.Hits < prior.Cumulative.Hits {
		v.rejectf(ReasonTotalsDecreased, "cumulative at_bats %d->%d hits %d->%d",
			prior.Cumulative.AtBats, next.AtBats, prior.Cumulative.Hits, next.Hits)
		return
	}
	stat.Cumulative = next
}

// CheckGameStat runs the full stage sequence for one candidate. The typed
// stats are assigned into stat before the later stages run. Stages after a
// rejection still execute where their inputs are meaningful, so the verdict
// carries every reason found, but cross-validation is skipped for records
// that already failed.
func CheckGameStat(stat *domain.PlayerGameStat, line domain.StatLine, prior Prior) Verdict {
	var v Verdict

	stat.BattingStats = TypeCheck(line, &v)
	if v.Rejected() {
		return v
	}

	RangeCheck(stat.BattingStats, &v)
	BusinessLogic(stat.BattingStats, &v)
	if v.Rejected() {
		return v
	}

	CrossValidate(stat, prior, &v)
	return v
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

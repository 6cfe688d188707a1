package validate

import (
	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

// CheckRosterEntry validates one extracted roster entry. Identity fields are
// hard requirements; physical attributes only warn when implausible.
func CheckRosterEntry(e domain.RosterEntry) Verdict {
	var v Verdict

	if e.ExternalID == "" {
		v.rejectf(ReasonMissingRequired, "roster entry has no external id")
	}
	if e.Name == "" {
		v.rejectf(ReasonMissingRequired, "roster entry has no name")
	}

	if e.Status == domain.StatusActive && len(e.Positions) == 0 {
		v.rejectf(ReasonNoPosition, "active player %s has no position", e.Name)
	}

	if len(e.Positions) > 0 {
		primaries := 0
		for _, p := range e.Positions {
			if p.Primary {
				primaries++
			}
		}
		if primaries != 1 {
			v.rejectf(ReasonPrimaryCount, "player %s has %d primary positions", e.Name, primaries)
		}
	}

	if e.Weight != 0 && (e.Weight < 100 || e.Weight > 350) {
		v.warnf("player %s weight %d lb is implausible", e.Name, e.Weight)
	}

	return v
}

// CheckScheduleEntry validates one extracted schedule entry.
func CheckScheduleEntry(e domain.ScheduleEntry) Verdict {
	var v Verdict

	if e.ExternalID == "" {
		v.rejectf(ReasonMissingRequired, "schedule entry has no external id")
	}
	if e.Start.IsZero() {
		v.rejectf(ReasonMissingRequired, "game %s has no date", e.ExternalID)
	}
	if e.HomeTeam == "" || e.AwayTeam == "" {
		v.rejectf(ReasonMissingRequired, "game %s is missing a team", e.ExternalID)
	} else if e.HomeTeam == e.AwayTeam {
		v.rejectf(ReasonSameTeams, "game %s lists %s on both sides", e.ExternalID, e.HomeTeam)
	}

	if e.Attendance < 0 {
		v.warnf("game %s attendance %d is negative", e.ExternalID, e.Attendance)
	}

	return v
}

// CheckGameResult validates a final game result on top of its schedule
// fields. The derived outcome must agree with the score.
func CheckGameResult(g domain.GameResult, trackedTeam string) Verdict {
	v := CheckScheduleEntry(g.ScheduleEntry)

	if g.HomeScore < 0 || g.AwayScore < 0 {
		v.rejectf(ReasonNegativeCount, "game %s has score %d-%d", g.ExternalID, g.HomeScore, g.AwayScore)
	}

	if g.Final && trackedTeam != "" {
		want := domain.DeriveOutcome(g.HomeTeam, g.AwayTeam, g.HomeScore, g.AwayScore, trackedTeam)
		if g.Outcome != "" && want != "" && g.Outcome != want {
			v.rejectf(ReasonMissingRequired, "game %s outcome %s contradicts score %d-%d",
				g.ExternalID, g.Outcome, g.HomeScore, g.AwayScore)
		}
	}

	return v
}

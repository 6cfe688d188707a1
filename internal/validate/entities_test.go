package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
)

func validRosterEntry() domain.RosterEntry {
	return domain.RosterEntry{
		ExternalID: "39832",
		Name:       "Mookie Betts",
		Team:       "Los Angeles Dodgers",
		Positions: []domain.PlayerPosition{
			{Position: domain.PositionShortstop, Primary: true},
			{Position: domain.PositionRightField},
		},
		Weight: 180,
		Status: domain.StatusActive,
	}
}

func TestCheckRosterEntry(t *testing.T) {
	t.Run("valid entry accepted", func(t *testing.T) {
		v := CheckRosterEntry(validRosterEntry())
		assert.Equal(t, StatusAccepted, v.Status())
	})

	t.Run("missing identity rejects", func(t *testing.T) {
		e := validRosterEntry()
		e.ExternalID = ""
		e.Name = ""
		v := CheckRosterEntry(e)
		assert.Equal(t, StatusRejected, v.Status())
		assert.Len(t, v.Rejections, 2)
	})

	t.Run("active player needs a position", func(t *testing.T) {
		e := validRosterEntry()
		e.Positions = nil
		v := CheckRosterEntry(e)
		require.True(t, v.Rejected())
		assert.Contains(t, v.Rejections[0], ReasonNoPosition)
	})

	t.Run("injured player may lack positions", func(t *testing.T) {
		e := validRosterEntry()
		e.Positions = nil
		e.Status = domain.StatusInjured
		v := CheckRosterEntry(e)
		assert.False(t, v.Rejected())
	})

	t.Run("exactly one primary required", func(t *testing.T) {
		e := validRosterEntry()
		e.Positions[1].Primary = true
		v := CheckRosterEntry(e)
		require.True(t, v.Rejected())
		assert.Contains(t, v.Rejections[0], ReasonPrimaryCount)
	})

	t.Run("implausible weight warns", func(t *testing.T) {
		e := validRosterEntry()
		e.Weight = 40
		v := CheckRosterEntry(e)
		assert.Equal(t, StatusWarnings, v.Status())
	})
}

func validScheduleEntry() domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ExternalID: "401696001",
		Start:      time.Date(2025, 6, 14, 19, 10, 0, 0, time.UTC),
		HomeTeam:   "Los Angeles Dodgers",
		AwayTeam:   "San Francisco Giants",
		VenueName:  "Dodger Stadium",
	}
}

func TestCheckScheduleEntry(t *testing.T) {
	t.Run("valid entry accepted", func(t *testing.T) {
		v := CheckScheduleEntry(validScheduleEntry())
		assert.Equal(t, StatusAccepted, v.Status())
	})

	t.Run("same team both sides rejects", func(t *testing.T) {
		e := validScheduleEntry()
		e.AwayTeam = e.HomeTeam
		v := CheckScheduleEntry(e)
		require.True(t, v.Rejected())
		assert.Contains(t, v.Rejections[0], ReasonSameTeams)
	})

	t.Run("missing id and date reject", func(t *testing.T) {
		e := validScheduleEntry()
		e.ExternalID = ""
		e.Start = time.Time{}
		v := CheckScheduleEntry(e)
		assert.Len(t, v.Rejections, 2)
	})
}

func TestCheckGameResult(t *testing.T) {
	base := domain.GameResult{
		ScheduleEntry: validScheduleEntry(),
		HomeScore:     5,
		AwayScore:     3,
		Final:         true,
		Outcome:       domain.OutcomeWin,
	}

	t.Run("consistent outcome accepted", func(t *testing.T) {
		v := CheckGameResult(base, "Los Angeles Dodgers")
		assert.Equal(t, StatusAccepted, v.Status())
	})

	t.Run("outcome contradicting score rejects", func(t *testing.T) {
		g := base
		g.Outcome = domain.OutcomeLoss
		v := CheckGameResult(g, "Los Angeles Dodgers")
		assert.True(t, v.Rejected())
	})

	t.Run("negative score rejects", func(t *testing.T) {
		g := base
		g.AwayScore = -1
		v := CheckGameResult(g, "Los Angeles Dodgers")
		assert.True(t, v.Rejected())
	})
}

package domain

import (
	"fmt"
	"time"
)

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Venue is a ballpark. Coordinates are nil until geocoded; once set they are
// treated as immutable for the venue's lifetime.
type Venue struct {
	Name        string       `json:"name"`
	City        string       `json:"city,omitempty"`
	Region      string       `json:"region,omitempty"` // state or province
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	PrimaryTeam string       `json:"primary_team,omitempty"`
	Capacity    int          `json:"capacity,omitempty"`
	Surface     string       `json:"surface,omitempty"`
	Roof        string       `json:"roof,omitempty"`
	OpenedYear  int          `json:"opened_year,omitempty"`
	Active      bool         `json:"active"`
}

// ScheduleEntry is one game on the tracked team's schedule.
type ScheduleEntry struct {
	ExternalID   string    `json:"external_id"`
	Start        time.Time `json:"start"` // UTC
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	VenueName    string    `json:"venue_name,omitempty"`
	VenueCity    string    `json:"venue_city,omitempty"`
	VenueRegion  string    `json:"venue_region,omitempty"`
	VenueCountry string    `json:"venue_country,omitempty"`
	NeutralSite  bool      `json:"neutral_site"`
	Attendance   int       `json:"attendance,omitempty"`
	Duration     string    `json:"duration,omitempty"` // e.g. "2:38"
	DayOfWeek    string    `json:"day_of_week,omitempty"`
	NightGame    *bool     `json:"night_game,omitempty"`
	ExtraInnings bool      `json:"extra_innings"`
}

// Outcome is a game result from the tracked team's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
	OutcomeTie  Outcome = "T"
)

// GameResult extends a ScheduleEntry with final scores, the derived outcome,
// and optional weather enrichment.
type GameResult struct {
	ScheduleEntry

	HomeScore int     `json:"home_score"`
	AwayScore int     `json:"away_score"`
	Final     bool    `json:"final"`
	Outcome   Outcome `json:"outcome,omitempty"`

	Weather *WeatherSnapshot `json:"weather,omitempty"`
}

// DeriveOutcome maps a final score to W/L/T from trackedTeam's perspective.
// Returns "" when trackedTeam played neither side.
func DeriveOutcome(homeTeam, awayTeam string, homeScore, awayScore int, trackedTeam string) Outcome {
	var diff int
	switch trackedTeam {
	case homeTeam:
		diff = homeScore - awayScore
	case awayTeam:
		diff = awayScore - homeScore
	default:
		return ""
	}
	switch {
	case diff > 0:
		return OutcomeWin
	case diff < 0:
		return OutcomeLoss
	default:
		return OutcomeTie
	}
}

// TeamRecord is a win-loss-tie aggregate over a set of game results.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Add folds one outcome into the record. Unknown outcomes are ignored.
func (r *TeamRecord) Add(o Outcome) {
	switch o {
	case OutcomeWin:
		r.Wins++
	case OutcomeLoss:
		r.Losses++
	case OutcomeTie:
		r.Ties++
	}
}

// String renders the conventional "W-L" display form.
func (r TeamRecord) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

package extract

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

// scheduleDocument is the provider's schedule payload shape.
type scheduleDocument struct {
	Events []scheduleEvent `json:"events"`
}

type scheduleEvent struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Name         string `json:"name"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string `json:"homeAway"`
			Team     struct {
				DisplayName string `json:"displayName"`
			} `json:"team"`
			Score struct {
				Value *float64 `json:"value"`
			} `json:"score"`
		} `json:"competitors"`
		Venue struct {
			FullName string `json:"fullName"`
			Address  struct {
				City    string `json:"city"`
				State   string `json:"state"`
				Country string `json:"country"`
			} `json:"address"`
		} `json:"venue"`
		Attendance   int    `json:"attendance"`
		GameDuration string `json:"gameDuration"`
		NeutralSite  bool   `json:"neutralSite"`
		Status       struct {
			Period int `json:"period"`
			Type   struct {
				State string `json:"state"`
			} `json:"type"`
		} `json:"status"`
	} `json:"competitions"`
}

// ScheduledGame is a schedule entry plus whatever result information the
// document carried. Scores are nil until the provider reports them.
type ScheduledGame struct {
	Entry     domain.ScheduleEntry
	HomeScore *int
	AwayScore *int
	Final     bool
}

// Schedule extracts scheduled games from a raw schedule document.
//
// Spring-training games (March) are skipped, matching the original dataset's
// regular-season scope. Events repeating the same (date, home, away) triple
// within one document are deduplicated, keeping the first.
func Schedule(doc []byte) ([]ScheduledGame, []Skip, error) {
	var parsed scheduleDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, nil, fmt.Errorf("%w: parse schedule document: %v", source.ErrFormatUnrecognized, err)
	}
	if parsed.Events == nil {
		return nil, nil, fmt.Errorf("%w: schedule document has no events field", source.ErrFormatUnrecognized)
	}

	games := make([]ScheduledGame, 0, len(parsed.Events))
	var skips []Skip
	seen := map[string]bool{}

	for i, ev := range parsed.Events {
		game, err := extractScheduleEvent(ev)
		if err != nil {
			ref := ev.ID
			if ref == "" {
				ref = fmt.Sprintf("event[%d]", i)
			}
			skips = append(skips, skipf(ref, "%v", err))
			continue
		}

		if game.Entry.Start.Month() == time.March {
			continue // spring training
		}

		key := game.Entry.Start.Format("2006-01-02") + "|" + game.Entry.HomeTeam + "|" + game.Entry.AwayTeam
		if seen[key] {
			continue
		}
		seen[key] = true

		games = append(games, game)
	}

	return games, skips, nil
}

func extractScheduleEvent(ev scheduleEvent) (ScheduledGame, error) {
	if ev.ID == "" {
		return ScheduledGame{}, fmt.Errorf("%w: missing required game id", ErrExtractionFailed)
	}
	if ev.Date == "" {
		return ScheduledGame{}, fmt.Errorf("%w: missing required date", ErrExtractionFailed)
	}
	start, err := parseEventTime(ev.Date)
	if err != nil {
		return ScheduledGame{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	game := ScheduledGame{
		Entry: domain.ScheduleEntry{
			ExternalID: ev.ID,
			Start:      start,
			DayOfWeek:  start.Weekday().String(),
		},
	}

	// Team names: competitors are authoritative, the event name is fallback.
	if len(ev.Competitions) > 0 {
		comp := ev.Competitions[0]
		for _, c := range comp.Competitors {
			name := c.Team.DisplayName
			switch c.HomeAway {
			case "home":
				game.Entry.HomeTeam = name
				if c.Score.Value != nil {
					v := int(*c.Score.Value)
					game.HomeScore = &v
				}
			case "away":
				game.Entry.AwayTeam = name
				if c.Score.Value != nil {
					v := int(*c.Score.Value)
					game.AwayScore = &v
				}
			}
		}

		game.Entry.VenueName = comp.Venue.FullName
		game.Entry.VenueCity = comp.Venue.Address.City
		game.Entry.VenueRegion = comp.Venue.Address.State
		game.Entry.VenueCountry = comp.Venue.Address.Country
		game.Entry.Attendance = comp.Attendance
		game.Entry.Duration = comp.GameDuration
		game.Entry.NeutralSite = comp.NeutralSite
		game.Entry.ExtraInnings = comp.Status.Period > 9
		game.Final = comp.Status.Type.State == "post"
	}

	if game.Entry.HomeTeam == "" || game.Entry.AwayTeam == "" {
		away, home, ok := parseMatchup(ev.Name)
		if !ok {
			return ScheduledGame{}, fmt.Errorf("%w: cannot determine teams from event", ErrExtractionFailed)
		}
		game.Entry.AwayTeam = away
		game.Entry.HomeTeam = home
	}

	return game, nil
}

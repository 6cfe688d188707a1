package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

// gameLogDocument is the provider's player game-log payload shape.
type gameLogDocument struct {
	Athlete struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
	} `json:"athlete"`
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
	Events []gameLogEvent `json:"events"`
}

type gameLogEvent struct {
	ID       string        `json:"id"`
	Date     string        `json:"date"`     // ISO or "Sat 8/30"
	Opponent string        `json:"opponent"` // "vs ARI", "@ SD"
	Result   string        `json:"result"`   // "W 6-3", "L 6-1"
	Stats    []json.Number `json:"stats"`
}

// GameLogRow is one extracted game-log line, still positional. The validator
// owns coercion into typed batting stats.
type GameLogRow struct {
	GameID     string
	Date       time.Time // UTC midnight
	Opponent   string
	Home       bool
	TeamResult domain.Outcome
	Line       domain.StatLine
}

// GameLog extracts a player's game-log rows in the order the provider lists
// them. seasonYear resolves abbreviated dates when the document does not
// carry its own season.
func GameLog(doc []byte, seasonYear int) (playerID, playerName string, rows []GameLogRow, skips []Skip, err error) {
	var parsed gameLogDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return "", "", nil, nil, fmt.Errorf("%w: parse game log document: %v", source.ErrFormatUnrecognized, err)
	}
	if parsed.Athlete.ID == "" {
		return "", "", nil, nil, fmt.Errorf("%w: game log document has no athlete id", source.ErrFormatUnrecognized)
	}
	if parsed.Season.Year != 0 {
		seasonYear = parsed.Season.Year
	}

	for i, ev := range parsed.Events {
		ref := ev.ID
		if ref == "" {
			ref = fmt.Sprintf("event[%d]", i)
		}
		if ev.Date == "" {
			skips = append(skips, skipf(ref, "missing required date"))
			continue
		}
		date, err := parseGameLogDate(ev.Date, seasonYear)
		if err != nil {
			skips = append(skips, skipf(ref, "%v", err))
			continue
		}
		line, err := parseStatLine(ev.Stats)
		if err != nil {
			skips = append(skips, skipf(ref, "%v", err))
			continue
		}

		opponent, home := normalizeOpponent(ev.Opponent)
		rows = append(rows, GameLogRow{
			GameID:     ev.ID,
			Date:       date,
			Opponent:   opponent,
			Home:       home,
			TeamResult: parseTeamResult(ev.Result),
			Line:       line,
		})
	}

	return parsed.Athlete.ID, parsed.Athlete.FullName, rows, skips, nil
}

// parseTeamResult reads the leading W/L/T from a result cell like "W 6-3".
func parseTeamResult(s string) domain.Outcome {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch s[0] {
	case 'W':
		return domain.OutcomeWin
	case 'L':
		return domain.OutcomeLoss
	case 'T':
		return domain.OutcomeTie
	}
	return ""
}

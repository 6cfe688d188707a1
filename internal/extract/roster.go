package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

// rosterDocument is the provider's roster payload shape.
type rosterDocument struct {
	Team struct {
		DisplayName string `json:"displayName"`
	} `json:"team"`
	Athletes []rosterAthlete `json:"athletes"`
}

type rosterAthlete struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Jersey        string `json:"jersey"`
	DisplayHeight string `json:"displayHeight"`
	Weight        int    `json:"weight"`
	BirthDate     string `json:"dateOfBirth"`
	Bats          struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"bats"`
	Throws struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"throws"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	AlternatePositions []struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"alternatePositions"`
	Status struct {
		Type string `json:"type"`
	} `json:"status"`
}

// Roster extracts roster entries from a raw roster document. syncedAt stamps
// each entry's last-updated time.
func Roster(doc []byte, syncedAt time.Time) ([]domain.RosterEntry, []Skip, error) {
	var parsed rosterDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, nil, fmt.Errorf("%w: parse roster document: %v", source.ErrFormatUnrecognized, err)
	}
	if parsed.Athletes == nil {
		return nil, nil, fmt.Errorf("%w: roster document has no athletes field", source.ErrFormatUnrecognized)
	}

	entries := make([]domain.RosterEntry, 0, len(parsed.Athletes))
	var skips []Skip

	for i, a := range parsed.Athletes {
		if a.ID == "" {
			skips = append(skips, skipf(fmt.Sprintf("athlete[%d]", i), "missing required player id"))
			continue
		}
		if a.FullName == "" {
			skips = append(skips, skipf(a.ID, "missing required player name"))
			continue
		}

		entry := domain.RosterEntry{
			ExternalID:  a.ID,
			Name:        a.FullName,
			Team:        parsed.Team.DisplayName,
			Height:      a.DisplayHeight,
			Weight:      a.Weight,
			Positions:   extractPositions(a),
			Bats:        handedness(a.Bats.Abbreviation),
			Throws:      handedness(a.Throws.Abbreviation),
			Status:      rosterStatus(a.Status.Type),
			LastUpdated: syncedAt.UTC(),
		}
		if n := atoiSafe(a.Jersey); n > 0 {
			entry.UniformNumber = n
		}
		if a.BirthDate != "" {
			if t, err := parseEventTime(a.BirthDate); err == nil {
				entry.BirthDate = &t
			}
		}

		entries = append(entries, entry)
	}

	return entries, skips, nil
}

// extractPositions builds the position list with the listed position primary.
// Unknown abbreviations are dropped rather than invented.
func extractPositions(a rosterAthlete) []domain.PlayerPosition {
	var positions []domain.PlayerPosition
	seen := map[domain.Position]bool{}

	if p := domain.Position(strings.ToUpper(a.Position.Abbreviation)); domain.KnownPosition(p) {
		positions = append(positions, domain.PlayerPosition{Position: p, Primary: true})
		seen[p] = true
	}
	for _, alt := range a.AlternatePositions {
		p := domain.Position(strings.ToUpper(alt.Abbreviation))
		if domain.KnownPosition(p) && !seen[p] {
			positions = append(positions, domain.PlayerPosition{Position: p})
			seen[p] = true
		}
	}
	return positions
}

// handedness maps a provider side abbreviation to a Handedness, or nil when
// unknown. Unknown handedness is null, never an empty string.
func handedness(s string) *domain.Handedness {
	switch s = strings.ToUpper(strings.TrimSpace(s)); s {
	case "L", "R", "S":
		h := domain.Handedness(s)
		return &h
	}
	return nil
}

// rosterStatus maps provider status text into the status enum, defaulting to
// Active for unknown values.
func rosterStatus(s string) domain.RosterStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "injured", "day-to-day", "sixty-day-il", "fifteen-day-il", "ten-day-il":
		return domain.StatusInjured
	case "suspended":
		return domain.StatusSuspended
	default:
		return domain.StatusActive
	}
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

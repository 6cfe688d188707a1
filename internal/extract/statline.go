package extract

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

// parseStatLine enforces the strict positional contract on a raw stat array.
// Any length other than domain.StatLineLength is an extraction failure for
// the whole record, never a partial line.
func parseStatLine(raw []json.Number) (domain.StatLine, error) {
	var line domain.StatLine
	if len(raw) != domain.StatLineLength {
		return line, fmt.Errorf("%w: stat array has %d entries, want %d",
			ErrExtractionFailed, len(raw), domain.StatLineLength)
	}
	for i, n := range raw {
		v, err := n.Float64()
		if err != nil {
			return line, fmt.Errorf("%w: stat position %d is not numeric: %v", ErrExtractionFailed, i, err)
		}
		line[i] = v
	}
	return line, nil
}

// boxScoreDocument is the provider's box-score payload shape: one positional
// stat array per player, packed in the page's embedded script object.
type boxScoreDocument struct {
	GameID  string `json:"gameId"`
	Players []struct {
		PlayerID   string        `json:"playerId"`
		PlayerName string        `json:"playerName"`
		Stats      []json.Number `json:"stats"`
	} `json:"players"`
}

// BoxScoreLine is one player's extracted batting line for one game.
type BoxScoreLine struct {
	PlayerID   string
	PlayerName string
	Line       domain.StatLine
}

// BoxScore extracts per-player stat lines from a raw box-score document.
func BoxScore(doc []byte) (gameID string, lines []BoxScoreLine, skips []Skip, err error) {
	var parsed boxScoreDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return "", nil, nil, fmt.Errorf("%w: parse box score document: %v", source.ErrFormatUnrecognized, err)
	}
	if parsed.GameID == "" {
		return "", nil, nil, fmt.Errorf("%w: box score document has no game id", source.ErrFormatUnrecognized)
	}

	for i, p := range parsed.Players {
		if p.PlayerID == "" {
			skips = append(skips, skipf(fmt.Sprintf("player[%d]", i), "missing required player id"))
			continue
		}
		line, err := parseStatLine(p.Stats)
		if err != nil {
			skips = append(skips, skipf(p.PlayerID, "%v", err))
			continue
		}
		lines = append(lines, BoxScoreLine{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Line:       line,
		})
	}

	return parsed.GameID, lines, skips, nil
}

package extract_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/extract"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

const fullStatLine = `[5,0,0,0,0,0,0,1,0,1,0,0,0.300,0.373,0.499,0.871]`

func gameLogDoc(events string) string {
	return fmt.Sprintf(`{
		"athlete": {"id": "30193", "fullName": "Freddie Freeman"},
		"season": {"year": 2025},
		"events": [%s]
	}`, events)
}

func TestGameLog_ExtractsRow(t *testing.T) {
	doc := gameLogDoc(fmt.Sprintf(
		`{"id": "401696200", "date": "Sat 8/30", "opponent": "vs ARI", "result": "W 6-3", "stats": %s}`,
		fullStatLine))

	playerID, playerName, rows, skips, err := extract.GameLog([]byte(doc), 2025)
	require.NoError(t, err)
	assert.Equal(t, "30193", playerID)
	assert.Equal(t, "Freddie Freeman", playerName)
	assert.Empty(t, skips)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "401696200", row.GameID)
	assert.Equal(t, time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, "ARI", row.Opponent)
	assert.True(t, row.Home)
	assert.Equal(t, domain.OutcomeWin, row.TeamResult)
	assert.Equal(t, 5.0, row.Line[domain.StatAtBats])
	assert.Equal(t, 1.0, row.Line[domain.StatWalks])
	assert.Equal(t, 0.871, row.Line[domain.StatOPS])
}

func TestGameLog_ShortStatArrayFailsExtraction(t *testing.T) {
	doc := gameLogDoc(`{"id": "g1", "date": "2025-08-30", "opponent": "@ SD", "stats": [5,0,0]}`)

	_, _, rows, skips, err := extract.GameLog([]byte(doc), 2025)
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, skips, 1)
	assert.Equal(t, "g1", skips[0].Ref)
	assert.Contains(t, skips[0].Reason, "3 entries, want 16")
}

func TestGameLog_AwayOpponentAndAliases(t *testing.T) {
	doc := gameLogDoc(fmt.Sprintf(
		`{"id": "g2", "date": "2025-08-31", "opponent": "@ SDP", "result": "L 6-1", "stats": %s}`,
		fullStatLine))

	_, _, rows, _, err := extract.GameLog([]byte(doc), 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SD", rows[0].Opponent)
	assert.False(t, rows[0].Home)
	assert.Equal(t, domain.OutcomeLoss, rows[0].TeamResult)
}

func TestGameLog_MissingDateSkips(t *testing.T) {
	doc := gameLogDoc(fmt.Sprintf(`{"id": "g3", "opponent": "vs SF", "stats": %s}`, fullStatLine))

	_, _, rows, skips, err := extract.GameLog([]byte(doc), 2025)
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, skips, 1)
	assert.Contains(t, skips[0].Reason, "missing required date")
}

func TestGameLog_NoAthleteIDIsDocumentFailure(t *testing.T) {
	_, _, _, _, err := extract.GameLog([]byte(`{"events": []}`), 2025)
	assert.ErrorIs(t, err, source.ErrFormatUnrecognized)
}

func TestBoxScore_Extracts(t *testing.T) {
	doc := fmt.Sprintf(`{
		"gameId": "401696200",
		"players": [
			{"playerId": "30193", "playerName": "Freddie Freeman", "stats": %s},
			{"playerId": "", "stats": %s},
			{"playerId": "34081", "playerName": "Mookie Betts", "stats": [1,2]}
		]
	}`, fullStatLine, fullStatLine)

	gameID, lines, skips, err := extract.BoxScore([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "401696200", gameID)
	require.Len(t, lines, 1)
	assert.Equal(t, "30193", lines[0].PlayerID)
	assert.Equal(t, 5.0, lines[0].Line[domain.StatAtBats])
	require.Len(t, skips, 2)
	assert.Contains(t, skips[0].Reason, "missing required player id")
	assert.Equal(t, "34081", skips[1].Ref)
}

func TestBoxScore_MissingGameIDIsDocumentFailure(t *testing.T) {
	_, _, _, err := extract.BoxScore([]byte(`{"players": []}`))
	assert.ErrorIs(t, err, source.ErrFormatUnrecognized)
}

func TestWeatherHistory_Extracts(t *testing.T) {
	doc := `{"forecast": {"forecastday": [{"hour": [
		{"time": "2025-08-29 18:00", "temp_f": 78.1, "condition": {"text": "Clear"}, "wind_mph": 6.9,
		 "wind_dir": "WNW", "humidity": 52, "pressure_in": 29.92, "vis_miles": 10, "uv": 1},
		{"time": "2025-08-29 19:00", "temp_f": 75.4, "condition": {"text": "Partly cloudy"}, "wind_mph": 5.1,
		 "wind_dir": "W", "humidity": 57, "pressure_in": 29.95, "vis_miles": 9, "uv": 0},
		{"time": "garbage", "temp_f": 1}
	]}]}}`

	snaps, err := extract.WeatherHistory([]byte(doc))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 78.1, snaps[0].TempF)
	assert.Equal(t, "Partly cloudy", snaps[1].Condition)
	assert.Equal(t, "WNW", snaps[0].WindDirection)
	assert.Equal(t, 52, snaps[0].Humidity)
}

func TestWeatherHistory_EmptyIsValid(t *testing.T) {
	snaps, err := extract.WeatherHistory([]byte(`{"forecast": {"forecastday": []}}`))
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

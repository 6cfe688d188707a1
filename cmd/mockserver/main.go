// Command mockserver serves deterministic provider documents so the pipeline
// can run end to end without network access to the real stats provider.
//
// Usage:
//
//	go run ./cmd/mockserver -addr :9090
//	SOURCE_BASE_URL=http://localhost:9090 ballclub-sync roster
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

var seasonStart = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

type mockPlayer struct {
	ID       string
	Name     string
	Jersey   string
	Position string
	Alt      []string
	Bats     string
	Throws   string
}

var mockRoster = []mockPlayer{
	{ID: "34081", Name: "Mookie Betts", Jersey: "50", Position: "SS", Alt: []string{"RF", "2B"}, Bats: "R", Throws: "R"},
	{ID: "30193", Name: "Freddie Freeman", Jersey: "5", Position: "1B", Bats: "L", Throws: "R"},
	{ID: "39832", Name: "Shohei Ohtani", Jersey: "17", Position: "DH", Bats: "L", Throws: "R"},
	{ID: "32078", Name: "Will Smith", Jersey: "16", Position: "C", Bats: "R", Throws: "R"},
}

type mockOpponent struct {
	name  string
	venue string
	city  string
	state string
}

var mockOpponents = []mockOpponent{
	{name: "San Diego Padres", venue: "Petco Park", city: "San Diego", state: "CA"},
	{name: "San Francisco Giants", venue: "Oracle Park", city: "San Francisco", state: "CA"},
	{name: "Arizona Diamondbacks", venue: "Chase Field", city: "Phoenix", state: "AZ"},
	{name: "Colorado Rockies", venue: "Coors Field", city: "Denver", state: "CO"},
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /teams/{team}/roster", serveRoster)
	mux.HandleFunc("GET /teams/{team}/schedule", serveSchedule)
	mux.HandleFunc("GET /athletes/{player}/gamelog", serveGameLog)
	mux.HandleFunc("GET /summary/{game}", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	logger.Info("mock provider listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Error("mock provider failed", "error", err)
		os.Exit(1)
	}
}

func serveRoster(w http.ResponseWriter, _ *http.Request) {
	athletes := make([]map[string]any, 0, len(mockRoster))
	for _, p := range mockRoster {
		alts := make([]map[string]string, 0, len(p.Alt))
		for _, a := range p.Alt {
			alts = append(alts, map[string]string{"abbreviation": a})
		}
		athletes = append(athletes, map[string]any{
			"id":                 p.ID,
			"fullName":           p.Name,
			"jersey":             p.Jersey,
			"position":           map[string]string{"abbreviation": p.Position},
			"alternatePositions": alts,
			"bats":               map[string]string{"abbreviation": p.Bats},
			"throws":             map[string]string{"abbreviation": p.Throws},
			"status":             map[string]string{"type": "active"},
		})
	}
	writeJSON(w, map[string]any{
		"team":     map[string]string{"displayName": "Los Angeles Dodgers"},
		"athletes": athletes,
	})
}

func serveSchedule(w http.ResponseWriter, r *http.Request) {
	// Postseason segment is empty in the mock.
	if r.URL.Query().Get("seasontype") == "3" {
		writeJSON(w, map[string]any{"events": []any{}})
		return
	}

	events := make([]map[string]any, 0, 20)
	for i := 0; i < 20; i++ {
		opp := mockOpponents[i%len(mockOpponents)]
		start := seasonStart.AddDate(0, 0, i*3).Add(19 * time.Hour)
		home := i%2 == 0

		// A deterministic, vaguely plausible score.
		dodgers := 3 + i%4
		other := 2 + (i*7)%5
		state := "post"
		if start.After(time.Now().UTC()) {
			state = "pre"
		}

		homeTeam, awayTeam := "Los Angeles Dodgers", opp.name
		homeScore, awayScore := dodgers, other
		venue, city, region := "Dodger Stadium", "Los Angeles", "CA"
		if !home {
			homeTeam, awayTeam = opp.name, "Los Angeles Dodgers"
			homeScore, awayScore = other, dodgers
			venue, city, region = opp.venue, opp.city, opp.state
		}

		events = append(events, map[string]any{
			"id":   fmt.Sprintf("4016%05d", 96000+i),
			"date": start.Format("2006-01-02T15:04Z"),
			"name": fmt.Sprintf("%s at %s", awayTeam, homeTeam),
			"competitions": []map[string]any{{
				"competitors": []map[string]any{
					{
						"homeAway": "home",
						"team":     map[string]string{"displayName": homeTeam},
						"score":    map[string]any{"value": float64(homeScore)},
					},
					{
						"homeAway": "away",
						"team":     map[string]string{"displayName": awayTeam},
						"score":    map[string]any{"value": float64(awayScore)},
					},
				},
				"venue": map[string]any{
					"fullName": venue,
					"address":  map[string]string{"city": city, "state": region, "country": "USA"},
				},
				"attendance": 40000 + i*250,
				"status": map[string]any{
					"period": 9,
					"type":   map[string]string{"state": state},
				},
			}},
		})
	}
	writeJSON(w, map[string]any{"events": events})
}

func serveGameLog(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("player")
	var player *mockPlayer
	for i := range mockRoster {
		if mockRoster[i].ID == playerID {
			player = &mockRoster[i]
			break
		}
	}
	if player == nil {
		http.NotFound(w, r)
		return
	}

	var events []map[string]any
	var seasonAB, seasonHits, seasonWalks, seasonBases, seasonReach, seasonPlate int
	for i := 0; i < 10; i++ {
		opp := mockOpponents[i%len(mockOpponents)]
		date := seasonStart.AddDate(0, 0, i*3)

		ab := 4 + i%2
		hits := (i * 3) % (ab + 1)
		doubles := 0
		if hits > 1 {
			doubles = 1
		}
		walks := i % 2

		seasonAB += ab
		seasonHits += hits
		seasonWalks += walks
		seasonBases += hits + doubles
		seasonReach += hits + walks
		seasonPlate += ab + walks

		avg := round3(float64(seasonHits) / float64(seasonAB))
		obp := round3(float64(seasonReach) / float64(seasonPlate))
		slg := round3(float64(seasonBases) / float64(seasonAB))

		prefix := "vs"
		result := "W"
		if i%2 == 1 {
			prefix = "@"
		}
		if i%3 == 2 {
			result = "L"
		}

		events = append(events, map[string]any{
			"id":       fmt.Sprintf("4016%05d", 96000+i),
			"date":     date.Format("2006-01-02"),
			"opponent": fmt.Sprintf("%s %s", prefix, abbrev(opp.name)),
			"result":   fmt.Sprintf("%s 5-3", result),
			"stats": []float64{
				float64(ab), float64((hits + 1) % 3), float64(hits),
				float64(doubles), 0, 0, float64(hits), float64(walks),
				0, float64(ab - hits), 0, 0,
				avg, obp, slg, round3(obp + slg),
			},
		})
	}

	writeJSON(w, map[string]any{
		"athlete": map[string]string{"id": player.ID, "fullName": player.Name},
		"season":  map[string]int{"year": seasonStart.Year()},
		"events":  events,
	})
}

func abbrev(team string) string {
	switch team {
	case "San Diego Padres":
		return "SD"
	case "San Francisco Giants":
		return "SF"
	case "Arizona Diamondbacks":
		return "ARI"
	case "Colorado Rockies":
		return "COL"
	}
	return team
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck // mock fixture output
}

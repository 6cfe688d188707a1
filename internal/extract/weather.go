package extract

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/ballclub-data-pipeline/internal/domain"
	"github.com/couchcryptid/ballclub-data-pipeline/internal/source"
)

// weatherDocument is the weather provider's history payload shape.
type weatherDocument struct {
	Forecast struct {
		ForecastDay []struct {
			Hour []weatherHour `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type weatherHour struct {
	Time      string  `json:"time"` // "2025-08-29 19:00", venue-local
	TempF     float64 `json:"temp_f"`
	Condition struct {
		Text string `json:"text"`
	} `json:"condition"`
	WindMPH    float64 `json:"wind_mph"`
	WindDir    string  `json:"wind_dir"`
	Humidity   int     `json:"humidity"`
	PressureIn float64 `json:"pressure_in"`
	VisMiles   float64 `json:"vis_miles"`
	UV         float64 `json:"uv"`
}

// WeatherHistory extracts per-hour snapshots from a raw weather history
// document. An empty hour list is a valid empty result, not an error.
func WeatherHistory(doc []byte) ([]domain.WeatherSnapshot, error) {
	var parsed weatherDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse weather document: %v", source.ErrFormatUnrecognized, err)
	}

	var snapshots []domain.WeatherSnapshot
	for _, day := range parsed.Forecast.ForecastDay {
		for _, h := range day.Hour {
			t, err := time.Parse("2006-01-02 15:04", h.Time)
			if err != nil {
				continue // skip malformed hours, keep the rest
			}
			snapshots = append(snapshots, domain.WeatherSnapshot{
				Time:          t,
				TempF:         h.TempF,
				Condition:     h.Condition.Text,
				WindMPH:       h.WindMPH,
				WindDirection: h.WindDir,
				Humidity:      h.Humidity,
				PressureIn:    h.PressureIn,
				VisibilityMi:  h.VisMiles,
				UVIndex:       h.UV,
			})
		}
	}
	return snapshots, nil
}

package domain

import "time"

// WeatherSnapshot is one historical forecast-hour observation at a venue.
// All fields come straight from the weather provider; a snapshot is attached
// to a GameResult only when enrichment succeeded.
type WeatherSnapshot struct {
	Time          time.Time `json:"time"` // venue-local forecast hour
	TempF         float64   `json:"temp_f"`
	Condition     string    `json:"condition,omitempty"`
	WindMPH       float64   `json:"wind_mph"`
	WindDirection string    `json:"wind_direction,omitempty"` // compass, e.g. "WNW"
	Humidity      int       `json:"humidity"` // percent
	PressureIn    float64   `json:"pressure_in"`
	VisibilityMi  float64   `json:"visibility_mi"`
	UVIndex       float64   `json:"uv_index"`
}

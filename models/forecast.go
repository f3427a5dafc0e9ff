package models

import (
	"time"
)

// ForecastSample is a single 3-hour forecast point as reported by the provider
type ForecastSample struct {
	Timestamp   time.Time `json:"timestamp"`
	MinTemp     float64   `json:"minTemp"`
	MaxTemp     float64   `json:"maxTemp"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

// DailySummary aggregates all samples of one calendar date
type DailySummary struct {
	Date        time.Time `json:"date"` // midnight of the day, in the samples' location
	MinTemp     int       `json:"minTemp"`
	MaxTemp     int       `json:"maxTemp"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

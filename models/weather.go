package models

import (
	"fmt"
	"strings"
)

// UnitSystem selects the measurement units the provider reports in
type UnitSystem string

const (
	Metric   UnitSystem = "metric"   // Celsius, m/s
	Imperial UnitSystem = "imperial" // Fahrenheit, mph
)

// ParseUnitSystem accepts "metric" or "imperial" in any case
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("unknown unit system %q", s)
}

// Toggle returns the other unit system
func (u UnitSystem) Toggle() UnitSystem {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// CurrentConditions represents the current weather for a searched city
type CurrentConditions struct {
	City        string  `json:"city"`
	Country     string  `json:"country"` // ISO 3166 country code
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windSpeed"` // m/s for metric, mph for imperial
	Humidity    float64 `json:"humidity"`  // percentage
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

package datasource

import (
	"context"

	"weather-widget/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current conditions for a city in the given units
	GetWeather(ctx context.Context, city string, units models.UnitSystem) (models.CurrentConditions, error)
}

// ForecastSource is an interface for services that can fetch the 5 day / 3 hour forecast
type ForecastSource interface {
	// FetchForecast fetches the chronological list of 3-hour samples for a city
	FetchForecast(ctx context.Context, city string, units models.UnitSystem) ([]models.ForecastSample, error)
}

// Provider combines both capabilities, as served by a single weather API
type Provider interface {
	WeatherProvider
	ForecastSource
}

package collector

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"weather-widget/datasource"
	"weather-widget/models"
)

// Result holds the paired current conditions and forecast samples for one city
type Result struct {
	Current models.CurrentConditions
	Samples []models.ForecastSample
}

// Collector fetches current conditions and the forecast for a city concurrently
type Collector struct {
	weather  datasource.WeatherProvider
	forecast datasource.ForecastSource
}

// NewCollector creates a collector over the given sources
func NewCollector(weather datasource.WeatherProvider, forecast datasource.ForecastSource) *Collector {
	return &Collector{weather: weather, forecast: forecast}
}

// Fetch issues both requests at once and waits for both to settle.
// A failure of either call fails the whole fetch; there are no retries.
func (c *Collector) Fetch(ctx context.Context, city string, units models.UnitSystem) (Result, error) {
	var result Result

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		current, err := c.weather.GetWeather(gctx, city, units)
		if err != nil {
			return fmt.Errorf("error fetching current weather for %s: %w", city, err)
		}
		result.Current = current
		return nil
	})

	g.Go(func() error {
		samples, err := c.forecast.FetchForecast(gctx, city, units)
		if err != nil {
			return fmt.Errorf("error fetching forecast for %s: %w", city, err)
		}
		result.Samples = samples
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

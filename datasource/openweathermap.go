package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"weather-widget/models"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// forecastTimeLayout is the layout of the dt_txt field, always UTC
const forecastTimeLayout = "2006-01-02 15:04:05"

// OpenWeatherMapProvider implements both WeatherProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// Option configures an OpenWeatherMapProvider
type Option func(*OpenWeatherMapProvider)

// WithBaseURL points the provider at a different API root (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(p *OpenWeatherMapProvider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero leaves the client without a timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *OpenWeatherMapProvider) {
		p.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *OpenWeatherMapProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *OpenWeatherMapProvider) {
		if log != nil {
			p.log = log
		}
	}
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string, opts ...Option) *OpenWeatherMapProvider {
	p := &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

type owmWeather struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// GetWeather fetches current weather for a city
func (p *OpenWeatherMapProvider) GetWeather(ctx context.Context, city string, units models.UnitSystem) (models.CurrentConditions, error) {
	var response struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []owmWeather `json:"weather"`
		Name    string       `json:"name"`
		Sys     struct {
			Country string `json:"country"`
		} `json:"sys"`
	}

	if err := p.get(ctx, "weather", city, units, &response); err != nil {
		return models.CurrentConditions{}, err
	}

	current := models.CurrentConditions{
		City:        response.Name,
		Country:     response.Sys.Country,
		Temperature: response.Main.Temp,
		WindSpeed:   response.Wind.Speed,
		Humidity:    response.Main.Humidity,
	}
	if len(response.Weather) > 0 {
		current.Description = response.Weather[0].Description
		current.Icon = response.Weather[0].Icon
	}
	return current, nil
}

// FetchForecast fetches the 5 day forecast in 3-hour steps
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string, units models.UnitSystem) ([]models.ForecastSample, error) {
	var response struct {
		List []struct {
			Dt    int64  `json:"dt"`
			DtTxt string `json:"dt_txt"`
			Main  struct {
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []owmWeather `json:"weather"`
		} `json:"list"`
	}

	if err := p.get(ctx, "forecast", city, units, &response); err != nil {
		return nil, err
	}

	samples := make([]models.ForecastSample, 0, len(response.List))
	for _, item := range response.List {
		timestamp, err := time.ParseInLocation(forecastTimeLayout, item.DtTxt, time.UTC)
		if err != nil {
			timestamp = time.Unix(item.Dt, 0).UTC()
		}

		sample := models.ForecastSample{
			Timestamp: timestamp,
			MinTemp:   item.Main.TempMin,
			MaxTemp:   item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// get issues a GET against endpoint and decodes the JSON body into out
func (p *OpenWeatherMapProvider) get(ctx context.Context, endpoint, city string, units models.UnitSystem, out any) error {
	if p.apiKey == "" {
		return ErrMissingAPIKey
	}

	params := url.Values{}
	params.Add("q", city)
	params.Add("units", string(units))
	params.Add("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	p.log.Debugw("openweathermap request",
		"endpoint", endpoint, "city", city, "units", units,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %q: %w", endpoint, city, ErrCityNotFound)
	case resp.StatusCode != http.StatusOK:
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

var _ Provider = (*OpenWeatherMapProvider)(nil)

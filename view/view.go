// Package view derives everything the widget displays from a controller
// state. Nothing here is stored; it is recomputed on every render.
package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-widget/controller"
	"weather-widget/models"
)

// DefaultIconBaseURL serves the OpenWeatherMap condition icons
const DefaultIconBaseURL = "https://openweathermap.org/img/wn"

// Model is the render-ready widget
type Model struct {
	Status     string   `json:"status"`
	Query      string   `json:"query"`
	Units      string   `json:"units"`
	UnitSymbol string   `json:"unitSymbol"`
	WindUnit   string   `json:"windUnit"`
	Loading    bool     `json:"loading"`
	Error      string   `json:"error,omitempty"`
	Current    *Current `json:"current,omitempty"`
	Forecast   []Day    `json:"forecast,omitempty"`
}

// Current is the current-conditions panel
type Current struct {
	Title       string `json:"title"`
	DateLabel   string `json:"dateLabel"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
	Temperature int    `json:"temperature"`
	WindSpeed   string `json:"windSpeed"`
	Humidity    string `json:"humidity"`
}

// Day is one card of the forecast strip
type Day struct {
	Weekday     string `json:"weekday"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
}

// Renderer builds Models. The zero value is not usable; use NewRenderer.
type Renderer struct {
	regions     RegionResolver
	dates       DateFormatter
	iconBaseURL string
	now         func() time.Time
}

// RendererOption configures a Renderer
type RendererOption func(*Renderer)

// WithRegions overrides the region resolver
func WithRegions(r RegionResolver) RendererOption {
	return func(rd *Renderer) { rd.regions = r }
}

// WithDates overrides the date formatter
func WithDates(d DateFormatter) RendererOption {
	return func(rd *Renderer) { rd.dates = d }
}

// WithIconBaseURL overrides where icons are loaded from
func WithIconBaseURL(u string) RendererOption {
	return func(rd *Renderer) {
		if u != "" {
			rd.iconBaseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithClock overrides the clock used for the current date label
func WithClock(now func() time.Time) RendererOption {
	return func(rd *Renderer) { rd.now = now }
}

// NewRenderer creates a renderer with English region names and dates
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		regions:     NewRegionResolver(language.English),
		dates:       EnglishDates{},
		iconBaseURL: DefaultIconBaseURL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render derives the widget from a controller state
func (r *Renderer) Render(s controller.State) Model {
	units := s.Units
	if data, ok := s.Data(); ok && data.Units != "" {
		// labels follow the units the numbers were fetched in
		units = data.Units
	}

	m := Model{
		Status:     s.Status.Kind(),
		Query:      s.Query,
		Units:      string(units),
		UnitSymbol: UnitSymbol(units),
		WindUnit:   WindUnit(units),
		Loading:    s.IsLoading(),
		Error:      s.ErrorMessage(),
	}

	data, ok := s.Data()
	if !ok {
		return m
	}

	c := data.Current
	m.Current = &Current{
		Title:       r.Title(c.City, c.Country),
		DateLabel:   r.dates.DayLabel(r.now()),
		IconURL:     r.IconURL(c.Icon),
		Description: r.label(c.Description),
		Temperature: int(math.Round(c.Temperature)),
		WindSpeed:   fmt.Sprintf("%.1f %s", c.WindSpeed, WindUnit(units)),
		Humidity:    fmt.Sprintf("%.0f%%", c.Humidity),
	}

	m.Forecast = make([]Day, 0, len(data.Daily))
	for _, d := range data.Daily {
		m.Forecast = append(m.Forecast, Day{
			Weekday:     r.dates.Weekday(d.Date),
			IconURL:     r.IconURL(d.Icon),
			Description: r.label(d.Description),
			Min:         d.MinTemp,
			Max:         d.MaxTemp,
		})
	}
	return m
}

// Title is "City, Region", falling back to the raw country code when the
// region cannot be named
func (r *Renderer) Title(city, country string) string {
	if country == "" {
		return city
	}
	region := country
	if r.regions != nil {
		if name, ok := r.regions.RegionName(country); ok {
			region = name
		}
	}
	return city + ", " + region
}

// IconURL returns the 2x icon image for an icon code, or "" without one
func (r *Renderer) IconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s@2x.png", r.iconBaseURL, code)
}

// label capitalises a provider description. A Caser is stateful, so one is
// made per call.
func (r *Renderer) label(s string) string {
	return cases.Title(language.English).String(s)
}

// UnitSymbol is the temperature suffix for a unit system
func UnitSymbol(u models.UnitSystem) string {
	if u == models.Imperial {
		return "°F"
	}
	return "°C"
}

// WindUnit is the wind speed unit reported by the provider for a unit system
func WindUnit(u models.UnitSystem) string {
	if u == models.Imperial {
		return "mph"
	}
	return "m/s"
}

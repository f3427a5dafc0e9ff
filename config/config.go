// Package config loads the widget configuration from .env, an optional JSON
// file and the environment, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"weather-widget/models"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "config.json"

// Config represents the application configuration
type Config struct {
	APIKey             string            `json:"apiKey"`
	BaseURL            string            `json:"baseURL"`
	IconBaseURL        string            `json:"iconBaseURL"`
	Port               int               `json:"port"`
	RequestTimeout     Duration          `json:"requestTimeout"`
	SessionIdleTimeout Duration          `json:"sessionIdleTimeout"`
	DefaultUnits       models.UnitSystem `json:"defaultUnits"`
	LogLevel           string            `json:"logLevel"`
	LogFormat          string            `json:"logFormat"`

	// Warnings collects non-fatal load problems for the caller to log
	Warnings []string `json:"-"`
}

// Duration is a time.Duration written as "10s" in JSON
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "https://api.openweathermap.org/data/2.5",
		IconBaseURL:        "https://openweathermap.org/img/wn",
		Port:               8080,
		RequestTimeout:     Duration(10 * time.Second),
		SessionIdleTimeout: Duration(30 * time.Minute),
		DefaultUnits:       models.Metric,
		LogLevel:           "info",
		LogFormat:          "console",
	}
}

// HasAPIKey reports whether an API key is configured
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// Load builds the configuration. A missing .env file is only reported in
// Warnings, and a
// missing config file is ignored when path is DefaultPath or empty. A missing
// API key is not an error; the widget reports it when a search is made.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("error loading .env file: %v", err))
	}

	if path == "" {
		path = DefaultPath
	}
	if err := cfg.loadFile(path); err != nil {
		if !(errors.Is(err, os.ErrNotExist) && path == DefaultPath) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the JSON file at path onto c
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.APIKey = getEnv("OPENWEATHERMAP_API_KEY", c.APIKey)
	c.BaseURL = getEnv("WEATHER_BASE_URL", c.BaseURL)
	c.IconBaseURL = getEnv("WEATHER_ICON_BASE_URL", c.IconBaseURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("WEATHER_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_REQUEST_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = Duration(d)
	}
	if v := os.Getenv("WEATHER_UNITS"); v != "" {
		units, err := models.ParseUnitSystem(v)
		if err != nil {
			return fmt.Errorf("invalid WEATHER_UNITS: %w", err)
		}
		c.DefaultUnits = units
	}
	return nil
}

// Validate checks value ranges and normalises the unit system
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("session idle timeout must be positive")
	}
	units, err := models.ParseUnitSystem(string(c.DefaultUnits))
	if err != nil {
		return err
	}
	c.DefaultUnits = units
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

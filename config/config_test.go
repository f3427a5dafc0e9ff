package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENWEATHERMAP_API_KEY", "WEATHER_BASE_URL", "WEATHER_ICON_BASE_URL",
		"PORT", "WEATHER_REQUEST_TIMEOUT", "WEATHER_UNITS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	// no .env next to the tests
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], ".env")

	cfg.Warnings = nil
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, cfg.HasAPIKey())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `{"apiKey":"abc","port":9090,"requestTimeout":"3s","defaultUnits":"imperial"}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.APIKey)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, Duration(3*time.Second), cfg.RequestTimeout)
	assert.Equal(t, models.Imperial, cfg.DefaultUnits)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFileNormalisesUnits(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `{"defaultUnits":"Imperial"}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, models.Imperial, cfg.DefaultUnits)
	assert.Equal(t, models.Metric, cfg.DefaultUnits.Toggle())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `{"apiKey":"file-key","port":9090}`)
	t.Setenv("OPENWEATHERMAP_API_KEY", "env-key")
	t.Setenv("PORT", "7070")
	t.Setenv("WEATHER_UNITS", "IMPERIAL")
	t.Setenv("WEATHER_REQUEST_TIMEOUT", "250ms")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, models.Imperial, cfg.DefaultUnits)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.RequestTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]func(t *testing.T) string{
		"bad port env": func(t *testing.T) string {
			t.Setenv("PORT", "eighty")
			return ""
		},
		"bad units env": func(t *testing.T) string {
			t.Setenv("WEATHER_UNITS", "kelvin")
			return ""
		},
		"bad json": func(t *testing.T) string {
			return writeFile(t, `{"port":`)
		},
		"bad duration": func(t *testing.T) string {
			return writeFile(t, `{"requestTimeout":"soon"}`)
		},
		"port out of range": func(t *testing.T) string {
			return writeFile(t, `{"port":70000}`)
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(setup(t))
			assert.Error(t, err)
		})
	}
}

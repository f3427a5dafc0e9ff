package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-widget/controller"
	"weather-widget/view"
)

func TestPrintModel(t *testing.T) {
	var buf bytes.Buffer
	printModel(&buf, view.Model{
		UnitSymbol: "°C",
		Current: &view.Current{
			Title: "Paris, France", DateLabel: "Wednesday, May 1", Temperature: 18,
			Description: "Clear Sky", WindSpeed: "3.6 m/s", Humidity: "56%",
		},
		Forecast: []view.Day{{Weekday: "Wed", Min: 10, Max: 19, Description: "Few Clouds"}},
	})

	out := buf.String()
	assert.Contains(t, out, "Paris, France\nWednesday, May 1\n")
	assert.Contains(t, out, "18°C  Clear Sky")
	assert.Contains(t, out, "Wind: 3.6 m/s  Humidity: 56%")
	assert.Contains(t, out, "Wed    10°C /   19°C  Few Clouds")
}

func TestPrintModelError(t *testing.T) {
	var buf bytes.Buffer
	printModel(&buf, view.Model{Error: controller.MsgLookupFailed})
	assert.Equal(t, controller.MsgLookupFailed+"\n", buf.String())
}

func TestLookupWithoutAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	t.Setenv("WEATHER_BASE_URL", "http://127.0.0.1:1")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"lookup", "Paris", "--log-level", "error"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Equal(t, controller.MsgMissingAPIKey, err.Error())
	assert.Contains(t, out.String(), controller.MsgMissingAPIKey)
}

func TestLookupRejectsUnknownUnits(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"lookup", "Paris", "--units", "kelvin", "--log-level", "error"})

	assert.Error(t, cmd.Execute())
}

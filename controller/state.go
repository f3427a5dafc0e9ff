package controller

import (
	"weather-widget/models"
)

// User-facing messages. Lookup failures of either request collapse into one message.
const (
	MsgMissingAPIKey = "Missing API key configuration."
	MsgLookupFailed  = "City not found, try another name."
)

// Status is the display state of the widget. It is one of Idle, Loading,
// Success or Failed.
type Status interface {
	// Kind names the status for templates and JSON
	Kind() string
	status()
}

// Idle is the initial status, before any search
type Idle struct{}

// Loading means a paired fetch for City is in flight
type Loading struct {
	City string
}

// Success holds the data of the latest completed fetch
type Success struct {
	Current models.CurrentConditions
	Daily   []models.DailySummary
	Units   models.UnitSystem // units the data was fetched in
}

// Failed holds the message shown for the latest failed attempt
type Failed struct {
	Message string
}

func (Idle) Kind() string    { return "idle" }
func (Loading) Kind() string { return "loading" }
func (Success) Kind() string { return "success" }
func (Failed) Kind() string  { return "error" }

func (Idle) status()    {}
func (Loading) status() {}
func (Success) status() {}
func (Failed) status()  {}

// State is a snapshot of one search session
type State struct {
	Query    string
	Units    models.UnitSystem
	LastCity string // last city fetched successfully, empty if none
	Status   Status
}

// Data returns the fetched data when the status is Success
func (s State) Data() (Success, bool) {
	data, ok := s.Status.(Success)
	return data, ok
}

// ErrorMessage returns the failure message, or "" when not failed
func (s State) ErrorMessage() string {
	if f, ok := s.Status.(Failed); ok {
		return f.Message
	}
	return ""
}

// IsLoading reports whether a fetch is in flight
func (s State) IsLoading() bool {
	_, ok := s.Status.(Loading)
	return ok
}

package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("datasource: missing API key")
	// ErrCityNotFound is returned when the provider cannot resolve the city name
	ErrCityNotFound = errors.New("datasource: city not found")
)

// APIError is a non-2xx response from the weather API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

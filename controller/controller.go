// Package controller drives the search widget: it runs paired fetches on
// submit and on unit changes and keeps the resulting display state.
package controller

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"weather-widget/collector"
	"weather-widget/forecast"
	"weather-widget/models"
)

// Fetcher performs the paired current + forecast lookup
type Fetcher interface {
	Fetch(ctx context.Context, city string, units models.UnitSystem) (collector.Result, error)
}

// Action is a user interaction handled by Dispatch
type Action interface {
	action()
}

// Submit searches for Query. Blank queries are ignored.
type Submit struct {
	Query string
}

// ToggleUnits flips the unit system and refetches the last city, if any
type ToggleUnits struct{}

func (Submit) action()      {}
func (ToggleUnits) action() {}

// Observer is called with every state the controller enters
type Observer func(State)

// Option configures a Controller
type Option func(*Controller)

// WithUnits sets the initial unit system
func WithUnits(units models.UnitSystem) Option {
	return func(c *Controller) {
		c.state.Units = units
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithObserver registers an observer for state transitions
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// Controller owns the state of one search session.
//
// Every fetch cycle takes a new generation number; a result is applied only
// if no newer cycle started meanwhile, so a slow response never overwrites
// the outcome of a later search.
type Controller struct {
	mu         sync.Mutex
	fetcher    Fetcher
	hasAPIKey  bool
	state      State
	generation uint64
	observers  []Observer
	log        *zap.SugaredLogger
}

// New creates a controller in the Idle state. hasAPIKey reports whether an
// API key is configured; without one every submit fails before any request.
func New(fetcher Fetcher, hasAPIKey bool, opts ...Option) *Controller {
	c := &Controller{
		fetcher:   fetcher,
		hasAPIKey: hasAPIKey,
		state:     State{Units: models.Metric, Status: Idle{}},
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit dispatches a Submit action
func (c *Controller) Submit(ctx context.Context, query string) State {
	return c.Dispatch(ctx, Submit{Query: query})
}

// ToggleUnits dispatches a ToggleUnits action
func (c *Controller) ToggleUnits(ctx context.Context) State {
	return c.Dispatch(ctx, ToggleUnits{})
}

// Dispatch handles an action and returns the state it settled in. It blocks
// until any fetch the action started has completed.
func (c *Controller) Dispatch(ctx context.Context, a Action) State {
	switch a := a.(type) {
	case Submit:
		return c.submit(ctx, a.Query)
	case ToggleUnits:
		return c.toggleUnits(ctx)
	default:
		return c.State()
	}
}

func (c *Controller) toggleUnits(ctx context.Context) State {
	c.mu.Lock()
	c.state.Units = c.state.Units.Toggle()
	city := c.state.LastCity
	snapshot := c.state
	c.mu.Unlock()

	c.log.Debugw("unit system toggled", "units", snapshot.Units, "lastCity", city)
	c.notify(snapshot)

	if city == "" {
		return snapshot
	}
	return c.Dispatch(ctx, Submit{Query: city})
}

func (c *Controller) submit(ctx context.Context, query string) State {
	city := strings.TrimSpace(query)
	if city == "" {
		return c.State()
	}

	c.mu.Lock()
	c.state.Query = city
	c.generation++
	gen := c.generation

	if !c.hasAPIKey {
		c.state.Status = Failed{Message: MsgMissingAPIKey}
		snapshot := c.state
		c.mu.Unlock()

		c.log.Warnw("search rejected, no API key configured", "city", city)
		c.notify(snapshot)
		return snapshot
	}

	units := c.state.Units
	c.state.Status = Loading{City: city}
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)

	result, err := c.fetcher.Fetch(ctx, city, units)

	c.mu.Lock()
	if gen != c.generation {
		snapshot = c.state
		c.mu.Unlock()
		c.log.Debugw("discarding stale result", "city", city, "generation", gen)
		return snapshot
	}

	if err != nil {
		c.state.Status = Failed{Message: MsgLookupFailed}
	} else {
		c.state.Status = Success{
			Current: result.Current,
			Daily:   forecast.BuildDaily(result.Samples),
			Units:   units,
		}
		c.state.LastCity = city
	}
	snapshot = c.state
	c.mu.Unlock()

	if err != nil {
		c.log.Warnw("weather lookup failed", "city", city, "units", units, "error", err)
	} else {
		c.log.Infow("weather lookup complete", "city", city, "units", units)
	}
	c.notify(snapshot)
	return snapshot
}

func (c *Controller) notify(s State) {
	for _, o := range c.observers {
		o(s)
	}
}

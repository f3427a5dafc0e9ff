package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"weather-widget/api"
	"weather-widget/collector"
	"weather-widget/config"
	"weather-widget/controller"
	"weather-widget/datasource"
	"weather-widget/logging"
	"weather-widget/models"
	"weather-widget/view"
)

type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "weather-widget",
		Short:        "City weather lookup with current conditions and a 5-day forecast",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", config.DefaultPath, "Path to configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")

	root.AddCommand(newServeCommand(opts), newLookupCommand(opts))
	return root
}

// setup loads configuration and builds the logger, letting flags win over
// file and environment values
func setup(opts *rootOptions) (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.LogFormat = opts.logFormat
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range cfg.Warnings {
		log.Warnw(w)
	}
	if !cfg.HasAPIKey() {
		log.Warnw("OPENWEATHERMAP_API_KEY is not set, searches will report a configuration error")
	}
	return cfg, log, nil
}

// newControllerFactory wires one OpenWeatherMap client into per-session controllers
func newControllerFactory(cfg *config.Config, units models.UnitSystem, log *zap.SugaredLogger) api.ControllerFactory {
	provider := datasource.NewOpenWeatherMapProvider(cfg.APIKey,
		datasource.WithBaseURL(cfg.BaseURL),
		datasource.WithTimeout(time.Duration(cfg.RequestTimeout)),
		datasource.WithLogger(log.Named("openweathermap")),
	)
	coll := collector.NewCollector(provider, provider)

	return func() *controller.Controller {
		return controller.New(coll, cfg.HasAPIKey(),
			controller.WithUnits(units),
			controller.WithLogger(log.Named("controller")),
		)
	}
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the weather widget over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return serve(cfg, log)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to run the server on")
	return cmd
}

func serve(cfg *config.Config, log *zap.SugaredLogger) error {
	sessions := api.NewSessionStore(newControllerFactory(cfg, cfg.DefaultUnits, log))
	renderer := view.NewRenderer(view.WithIconBaseURL(cfg.IconBaseURL))
	server := api.NewServer(sessions, renderer, cfg.Port, log.Named("http"))

	// Set up channels for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	// Periodically drop idle sessions
	idle := time.Duration(cfg.SessionIdleTimeout)
	go func() {
		ticker := time.NewTicker(idle / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := sessions.PruneIdle(idle); n > 0 {
					log.Infow("pruned idle sessions", "count", n)
				}
			case <-done:
				return
			}
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case sig := <-shutdownChan:
		log.Infow("Shutting down", "signal", sig.String())
	case err := <-errChan:
		close(done)
		return fmt.Errorf("server stopped: %w", err)
	}
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}

	log.Infow("Shutdown complete")
	return nil
}

func newLookupCommand(opts *rootOptions) *cobra.Command {
	var units string

	cmd := &cobra.Command{
		Use:   "lookup <city>",
		Short: "Print current conditions and the 5-day forecast for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			unitSystem := cfg.DefaultUnits
			if cmd.Flags().Changed("units") {
				if unitSystem, err = models.ParseUnitSystem(units); err != nil {
					return err
				}
			}

			ctrl := newControllerFactory(cfg, unitSystem, log)()
			state := ctrl.Submit(cmd.Context(), strings.Join(args, " "))
			model := view.NewRenderer(view.WithIconBaseURL(cfg.IconBaseURL)).Render(state)

			printModel(cmd.OutOrStdout(), model)
			if model.Error != "" {
				return errors.New(model.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&units, "units", "metric", "Unit system (metric, imperial)")
	return cmd
}

// printModel writes the widget as plain text
func printModel(w io.Writer, m view.Model) {
	if m.Error != "" {
		fmt.Fprintln(w, m.Error)
		return
	}
	if m.Current == nil {
		return
	}

	c := m.Current
	fmt.Fprintf(w, "%s\n%s\n", c.Title, c.DateLabel)
	fmt.Fprintf(w, "%d%s  %s\n", c.Temperature, m.UnitSymbol, c.Description)
	fmt.Fprintf(w, "Wind: %s  Humidity: %s\n\n", c.WindSpeed, c.Humidity)

	for _, d := range m.Forecast {
		fmt.Fprintf(w, "%-4s %4d%s / %4d%s  %s\n", d.Weekday, d.Min, m.UnitSymbol, d.Max, m.UnitSymbol, d.Description)
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"weather-journal/config"
	"weather-journal/internal/client"
	"weather-journal/internal/geocode"
	"weather-journal/internal/location"
	"weather-journal/internal/models"
	"weather-journal/internal/screens"
	"weather-journal/pkg/logger"
)

type app struct {
	cfg     *config.Config
	l       *logger.Logger
	client  *client.Client
	verbose bool

	lat      float64
	lon      float64
	timezone string
	denied   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "journal",
		Short:         "Weather journal client",
		Long:          "Shows today's weather for your location and keeps a daily mood journal next to it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")
	root.PersistentFlags().Float64Var(&a.lat, "lat", 0, "latitude, overrides client.latitude")
	root.PersistentFlags().Float64Var(&a.lon, "lon", 0, "longitude, overrides client.longitude")
	root.PersistentFlags().StringVar(&a.timezone, "timezone", "", "IANA timezone, overrides client.timezone")
	root.PersistentFlags().BoolVar(&a.denied, "deny-location", false, "behave as if location permission was refused")

	root.AddCommand(
		a.todayCmd(),
		a.writeCmd(),
		a.listCmd(),
		a.showCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("lat") {
		cfg.Client.Latitude = a.lat
	}
	if flags.Changed("lon") {
		cfg.Client.Longitude = a.lon
	}
	if flags.Changed("timezone") {
		cfg.Client.Timezone = a.timezone
	}
	if a.denied {
		cfg.Client.LocationGranted = false
	}

	var w io.Writer = io.Discard
	if a.verbose {
		w = os.Stderr
	}

	a.cfg = cfg
	a.l = logger.New("journal", cfg.App.Env, "debug", w)
	a.client = client.New(cfg.Client.JournalURL, cfg.Client.WeatherURL, client.WithLogger(a.l))

	return nil
}

// clientTimezone is client.timezone, then $TZ, then auto.
func (a *app) clientTimezone() string {
	if a.cfg.Client.Timezone != "" {
		return a.cfg.Client.Timezone
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	return models.AutoTimezone
}

func (a *app) home() *screens.Home {
	var geocoder geocode.Resolver
	if a.cfg.Geocode.APIKey != "" {
		geocoder = geocode.NewGoogle(a.cfg.Geocode.BaseURL, a.cfg.Geocode.APIKey, a.l, nil)
	}

	return screens.NewHome(screens.HomeDeps{
		Locator: location.NewStatic(models.Coordinates{
			Latitude:  a.cfg.Client.Latitude,
			Longitude: a.cfg.Client.Longitude,
		}, a.cfg.Client.LocationGranted),
		Geocoder: geocoder,
		Weather:  a.client,
		Journals: a.client,
		Timezone: a.clientTimezone(),
		Logger:   a.l,
	})
}

func (a *app) loadHome(cmd *cobra.Command) (*screens.Home, error) {
	h := a.home()
	h.Load(cmd.Context())

	out := cmd.OutOrStdout()
	for _, alert := range h.Alerts {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", alert.Title, alert.Message)
	}
	if !h.Ready() {
		if h.Err == "" {
			return nil, errors.New(screens.WeatherFailedMessage)
		}
		return nil, errors.New(h.Err)
	}

	fmt.Fprintln(out, h.View())
	return h, nil
}

func (a *app) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's weather for your location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.loadHome(cmd)
			return err
		},
	}
}

func (a *app) writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <text...>",
		Short: "Write today's journal entry with today's weather",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHome(cmd)
			if err != nil {
				return err
			}

			modal := h.Compose()
			modal.Text = strings.Join(args, " ")
			if err := modal.Submit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), modal.View())
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := screens.NewJournalList(a.client)
			s.Load(cmd.Context())

			fmt.Fprintln(cmd.OutOrStdout(), s.View())
			if s.Err != "" {
				return errors.New(s.Err)
			}
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the journal entry for a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.ValidDate(args[0]) {
				return fmt.Errorf("date %q must use the YYYY-MM-DD format", args[0])
			}

			s := screens.NewJournalDetail(a.client, args[0])
			s.Load(cmd.Context())
			if s.Err != "" {
				return errors.New(s.Err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), s.View())
			return nil
		},
	}
}

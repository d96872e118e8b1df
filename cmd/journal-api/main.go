package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"weather-journal/config"
	v1 "weather-journal/internal/controllers/http/v1"
	"weather-journal/internal/repositories"
	"weather-journal/internal/services/journal"
	"weather-journal/internal/services/weather"
	"weather-journal/pkg/httpserver"
	"weather-journal/pkg/logger"
	"weather-journal/pkg/observe"
)

// @title Weather Journal API
// @version 1.0.0
// @description Stores daily mood notes together with the day's weather and proxies today's forecast from Open-Meteo.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Today's weather for a location
// @tag.name Journal
// @tag.description Journal entries keyed by date
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cnf, err := config.NewConfig()
	if err != nil {
		logger.NewZapLogger("journal-api").Fatal("cannot load config", map[string]any{"err": err.Error()})
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
		writers = append(writers, hook)
	}

	l := logger.New(cnf.App.Name, cnf.App.Env, cnf.Log.Level, writers...)
	if hook != nil {
		hook.SetLogger(logger.New(cnf.App.Name, cnf.App.Env, cnf.Log.Level, os.Stdout))
	}

	metrics := observe.NewMetrics("weather_journal")

	app := httpserver.InitFiberServer(cnf.App.Name, cnf.Server.BodyLimit, metrics)

	journals, err := repositories.InitJournalRepository(ctx, cnf, l)
	if err != nil {
		l.Fatal("cannot open journal storage", map[string]any{
			"driver": cnf.Storage.Driver,
			"err":    err.Error(),
		})
	}

	weatherService := weather.NewWeatherService(
		repositories.InitWeatherRepository(cnf, l),
		l,
		weather.WithCache(cnf.Weather.CacheTTL),
		weather.WithRateLimit(cnf.Weather.RateLimit, cnf.Weather.Burst),
		weather.WithMetrics(metrics),
	)
	journalService := journal.NewJournalService(journals, metrics, l)

	v1.NewRouter(
		app,
		weatherService,
		journalService,
		l,
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("application started successfully", map[string]any{
			"port":    cnf.Server.Port,
			"storage": cnf.Storage.Driver,
		})
		return app.Listen(":" + cnf.Server.Port)
	})

	g.Go(func() error {
		<-gCtx.Done()
		l.Warning("stopping application services")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cnf.Server.ShutdownTimeout)
		defer cancel()

		return errors.Join(
			app.ShutdownWithContext(shutdownCtx),
			journals.Close(),
		)
	})

	if err := g.Wait(); err != nil {
		l.Error(err)
	}

	if hook != nil {
		observe.FlushSentry()
	}
	_ = l.Stop()
}

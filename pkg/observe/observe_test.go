package observe

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-journal/pkg/logger"
)

func TestSentryHook_CapturesErrorLines(t *testing.T) {
	var events []*sentry.Event
	hook := newSentryHook("dev", "journal-test", func(e *sentry.Event) *sentry.EventID {
		events = append(events, e)
		return nil
	})

	l := logger.New("journal-test", "dev", "debug", io.Discard, hook)
	l.Info("not forwarded")
	l.Warning("not forwarded either")
	l.Error(errors.New("store unavailable"), map[string]any{"driver": "sqlite"})

	require.Len(t, events, 1)
	assert.Equal(t, "store unavailable", events[0].Message)
	assert.Equal(t, sentry.LevelError, events[0].Level)
	assert.Equal(t, "dev", events[0].Environment)
	assert.Equal(t, "store unavailable", events[0].Extra["Error"])
	require.Len(t, events[0].Exception, 1)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)
}

func TestSentryHook_IgnoresGarbage(t *testing.T) {
	called := false
	hook := newSentryHook("dev", "journal-test", func(*sentry.Event) *sentry.EventID {
		called = true
		return nil
	})
	var buf bytes.Buffer
	hook.SetLogger(logger.NewZapLogger("journal-test", &buf))

	n, err := hook.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.False(t, called)
	assert.Contains(t, buf.String(), "[SentryHook] json.Unmarshal data")
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("weather_journal")
	m.ObserveRequest("/getAllJournals", "GET", 200, 10*time.Millisecond)
	m.ObserveUpstream("open-meteo", nil)
	m.ObserveUpstream("open-meteo", errors.New("boom"))
	m.ObserveCache(true)
	m.JournalCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `weather_journal_http_requests_total{method="GET",route="/getAllJournals",status="200"} 1`)
	assert.Contains(t, body, `weather_journal_weather_upstream_calls_total{outcome="failure",provider="open-meteo"} 1`)
	assert.Contains(t, body, `weather_journal_weather_cache_lookups_total{result="hit"} 1`)
	assert.Contains(t, body, `weather_journal_journals_created_total 1`)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/", "GET", 200, time.Second)
		m.ObserveUpstream("open-meteo", nil)
		m.ObserveCache(false)
		m.JournalCreated()
	})
}

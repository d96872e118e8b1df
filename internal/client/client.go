package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"weather-journal/internal/models"
	"weather-journal/pkg/logger"
)

// ErrNotFound is returned by GetJournalByDate when the backend has no entry for the date.
var ErrNotFound = errors.New("journal entry not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the journal backend. Journal and weather calls may target
// different hosts. Nothing is cached and nothing is retried.
type Client struct {
	journalURL string
	weatherURL string
	httpClient HTTPClient
	l          *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.l = l
		}
	}
}

func New(journalURL, weatherURL string, opts ...Option) *Client {
	c := &Client{
		journalURL: strings.TrimRight(journalURL, "/"),
		weatherURL: strings.TrimRight(weatherURL, "/"),
		httpClient: &http.Client{},
		l:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetAllJournals(ctx context.Context) ([]models.JournalEntry, error) {
	var raw json.RawMessage
	status, err := c.do(ctx, http.MethodGet, c.journalURL+"/getAllJournals", nil, &raw)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError("getAllJournals", status, raw)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "decode journal list")
	}

	return entries, nil
}

// GetJournalByDate returns the first entry stored for date. A 404 or an empty
// list is ErrNotFound, any other failure status is reported as is.
func (c *Client) GetJournalByDate(ctx context.Context, date string) (models.JournalEntry, error) {
	q := url.Values{}
	q.Set("date", date)

	var raw json.RawMessage
	status, err := c.do(ctx, http.MethodGet, c.journalURL+"/getJournalByDate?"+q.Encode(), nil, &raw)
	if err != nil {
		return models.JournalEntry{}, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return models.JournalEntry{}, errors.Wrapf(ErrNotFound, "date %s", date)
	default:
		return models.JournalEntry{}, statusError("getJournalByDate", status, raw)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return models.JournalEntry{}, errors.Wrap(err, "decode journal entries")
	}
	if len(entries) == 0 {
		return models.JournalEntry{}, errors.Wrapf(ErrNotFound, "date %s", date)
	}

	return entries[0], nil
}

// CreateJournal posts entry and returns the server's message or error verbatim.
// A rejected entry is not a Go error.
func (c *Client) CreateJournal(ctx context.Context, entry models.JournalEntry) (models.StatusMessage, error) {
	body, err := json.Marshal(entry)
	if err != nil {
		return models.StatusMessage{}, errors.Wrap(err, "encode journal entry")
	}

	var msg models.StatusMessage
	if _, err := c.do(ctx, http.MethodPost, c.journalURL+"/createJournal", body, &msg); err != nil {
		return models.StatusMessage{}, err
	}

	return msg, nil
}

// GetWeather fetches today's snapshot for coords. An empty timezone is sent as is
// and the backend falls back to auto.
func (c *Client) GetWeather(ctx context.Context, coords models.Coordinates, timezone string) (models.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	q.Set("timezone", timezone)

	var raw json.RawMessage
	status, err := c.do(ctx, http.MethodGet, c.weatherURL+"/getWeather?"+q.Encode(), nil, &raw)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError("getWeather", status, raw)
	}

	var snapshot models.WeatherSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, errors.Wrap(err, "decode weather snapshot")
	}

	return snapshot, nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, errors.Wrapf(err, "build %s %s", method, target)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.l.Debug("request", map[string]any{
		"method": method,
		"url":    target,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "%s %s", method, target)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrapf(err, "decode %s response (status %d)", target, resp.StatusCode)
	}

	c.l.Debug("response", map[string]any{
		"url":    target,
		"status": resp.StatusCode,
	})

	return resp.StatusCode, nil
}

func statusError(call string, status int, raw []byte) error {
	var e models.ErrorResponse
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return fmt.Errorf("%s: status %d: %s", call, status, e.Error)
	}
	return fmt.Errorf("%s: unexpected status %d", call, status)
}

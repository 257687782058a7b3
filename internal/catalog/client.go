// Package catalog fetches today's plays and shows from the station's
// public catalog API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bryan-buckman/onair/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// MaxPageSize is the most plays requested. Only the first page is read.
const MaxPageSize = 250

// Endpoint names, also used as metric labels.
const (
	EndpointPlays = "plays"
	EndpointShows = "shows"
)

// isoMillis matches the timestamps the catalog accepts in its filters.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// FetchError reports a failed catalog request: either a transport failure
// (Err set) or a non-success status (StatusCode set).
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.Op, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to the catalog. The zero value is not usable; use NewClient.
type Client struct {
	baseURL  string
	http     *http.Client
	pageSize int
	loc      *time.Location
	now      func() time.Time
}

// NewClient creates a client for the catalog at baseURL, e.g.
// "https://api.kexp.org/v2". Days start at midnight in loc.
func NewClient(baseURL string, timeout time.Duration, pageSize int, loc *time.Location) *Client {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		pageSize: pageSize,
		loc:      loc,
		now:      time.Now,
	}
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func (c *Client) today() string {
	return StartOfDay(c.now(), c.loc).UTC().Format(isoMillis)
}

// FetchPlays returns today's songs, first page only. Air breaks and
// non-song entries are excluded by the catalog.
func (c *Client) FetchPlays(ctx context.Context) ([]model.Play, error) {
	q := url.Values{}
	q.Set("exclude_airbreaks", "true")
	q.Set("exclude_non_songs", "true")
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("airdate_after", c.today())

	return get[model.Play](c, ctx, EndpointPlays, q)
}

// FetchShows returns the shows starting at or after today's midnight.
func (c *Client) FetchShows(ctx context.Context) ([]model.Show, error) {
	q := url.Values{}
	q.Set("start_time_after", c.today())

	return get[model.Show](c, ctx, EndpointShows, q)
}

// get reads the first page of endpoint and returns its results.
func get[T any](c *Client, ctx context.Context, endpoint string, q url.Values) ([]T, error) {
	timer := prometheus.NewTimer(requestDuration.WithLabelValues(endpoint))
	defer timer.ObserveDuration()

	u := c.baseURL + "/" + endpoint + "/?" + q.Encode()
	fail := func(result string, fe *FetchError) ([]T, error) {
		requestsTotal.WithLabelValues(endpoint, result).Inc()
		fe.Op, fe.URL = endpoint, u
		return nil, fe
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fail("transport_error", &FetchError{Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fail("transport_error", &FetchError{Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail("bad_status", &FetchError{StatusCode: resp.StatusCode})
	}
	var page model.Page[T]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return fail("transport_error", &FetchError{Err: fmt.Errorf("decode response: %w", err)})
	}

	requestsTotal.WithLabelValues(endpoint, "ok").Inc()
	pageRecords.WithLabelValues(endpoint).Set(float64(len(page.Results)))
	return page.Results, nil
}

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	loc := time.FixedZone("PST", -8*60*60)
	c := NewClient(srv.URL+"/", 5*time.Second, 0, loc)
	c.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, loc) }
	return c
}

func TestFetchPlaysQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 400,
			"next": "https://example.test/plays/?offset=250",
			"previous": null,
			"results": [
				{"id": "1", "airdate": "2024-03-10T09:01:00-08:00", "artist": "Can", "song": "Vitamin C",
				 "album": "Ege Bamyasi", "label": "United Artists", "release_date": "1972-11-01", "show": "77"},
				{"id": "2", "airdate": "2024-03-10T09:05:00-08:00", "artist": "Unknown", "song": "Demo", "show": "77"}
			]
		}`))
	})

	plays, err := c.FetchPlays(context.Background())
	if err != nil {
		t.Fatalf("FetchPlays() error = %v", err)
	}
	if gotPath != "/plays/" {
		t.Errorf("path = %q, want /plays/", gotPath)
	}
	want := map[string]string{
		"exclude_airbreaks": "true",
		"exclude_non_songs": "true",
		"limit":             "250",
		"airdate_after":     "2024-03-10T08:00:00.000Z",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if len(plays) != 2 {
		t.Fatalf("got %d plays, want 2 (first page only)", len(plays))
	}
	if plays[0].ReleaseDate != "1972-11-01" || plays[1].ReleaseDate != "" {
		t.Errorf("release dates = %q, %q", plays[0].ReleaseDate, plays[1].ReleaseDate)
	}
}

func TestFetchShowsQuery(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("start_time_after")
		w.Write([]byte(`{"count": 1, "next": null, "previous": null, "results": [
			{"id": "77", "program_name": "The Morning Show", "host_names": ["Ana", "Ben"],
			 "start_time": "2024-03-10T06:00:00-08:00", "end_time": "2024-03-10T10:00:00-08:00"}
		]}`))
	})

	shows, err := c.FetchShows(context.Background())
	if err != nil {
		t.Fatalf("FetchShows() error = %v", err)
	}
	if got != "2024-03-10T08:00:00.000Z" {
		t.Errorf("start_time_after = %q", got)
	}
	if len(shows) != 1 || len(shows[0].HostNames) != 2 || shows[0].ProgramName != "The Morning Show" {
		t.Errorf("shows = %+v", shows)
	}
}

func TestFetchNumericIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plays/":
			w.Write([]byte(`{"count": 1, "next": null, "previous": null, "results": [
				{"id": 3364437, "airdate": "2024-03-10T09:01:00-08:00", "artist": "Can", "song": "Vitamin C",
				 "album": "Ege Bamyasi", "label": "United Artists", "release_date": null, "show": 58012}
			]}`))
		case "/shows/":
			w.Write([]byte(`{"count": 1, "next": null, "previous": null, "results": [
				{"id": 58012, "program_name": "The Morning Show", "host_names": ["Ana"],
				 "start_time": "2024-03-10T06:00:00-08:00", "end_time": "2024-03-10T10:00:00-08:00"}
			]}`))
		default:
			http.NotFound(w, r)
		}
	})

	plays, err := c.FetchPlays(context.Background())
	if err != nil {
		t.Fatalf("FetchPlays() error = %v", err)
	}
	if len(plays) != 1 || plays[0].ID != "3364437" || plays[0].Show != "58012" {
		t.Fatalf("plays = %+v", plays)
	}

	shows, err := c.FetchShows(context.Background())
	if err != nil {
		t.Fatalf("FetchShows() error = %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("got %d shows, want 1", len(shows))
	}
	if shows[0].ID != plays[0].Show {
		t.Errorf("show id %q does not match play show %q", shows[0].ID, plays[0].Show)
	}
}

func TestFetchBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	_, err := c.FetchShows(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("FetchShows() error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusServiceUnavailable || fe.Op != EndpointShows {
		t.Errorf("FetchError = %+v", fe)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [`))
	})

	_, err := c.FetchPlays(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Err == nil {
		t.Fatalf("FetchPlays() error = %v, want transport FetchError", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, 0, time.UTC)
	_, err := c.FetchPlays(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Err == nil {
		t.Fatalf("FetchPlays() error = %v, want transport FetchError", err)
	}
}

func TestNewClientClampsPageSize(t *testing.T) {
	if c := NewClient("x", time.Second, 1000, nil); c.pageSize != MaxPageSize {
		t.Errorf("pageSize = %d, want %d", c.pageSize, MaxPageSize)
	}
	if c := NewClient("x", time.Second, 50, nil); c.pageSize != 50 {
		t.Errorf("pageSize = %d, want 50", c.pageSize)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	got := StartOfDay(time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC), loc)
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

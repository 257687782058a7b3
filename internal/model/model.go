// Package model defines shared data structures.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque catalog identifier. The catalog may send it as a JSON
// string or number; either way it is kept as its decimal text.
type ID string

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Play represents one song broadcast, as returned by the catalog.
// Dates are kept as the raw strings the catalog sent; parsing happens in the
// playlist package so that malformed values degrade instead of failing a load.
type Play struct {
	ID           ID     `json:"id"`
	Airdate      string `json:"airdate"`
	Artist       string `json:"artist"`
	Song         string `json:"song"`
	Album        string `json:"album"`
	Label        string `json:"label"`
	ReleaseDate  string `json:"release_date,omitempty"` // empty if unknown
	Show         ID     `json:"show"`
	ThumbnailURI string `json:"thumbnail_uri,omitempty"`
}

// Show represents one scheduled broadcast slot.
type Show struct {
	ID          ID       `json:"id"`
	ProgramName string   `json:"program_name"`
	HostNames   []string `json:"host_names"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
}

// HasHost reports whether name is one of the show's hosts.
func (s Show) HasHost(name string) bool {
	for _, h := range s.HostNames {
		if h == name {
			return true
		}
	}
	return false
}

// Selection is the listener's current filter choice. Nil fields are unset.
type Selection struct {
	Decade *string `json:"decade"`
	ShowID *string `json:"show_id"`
	Host   *string `json:"host"`
}

// IsEmpty reports whether no filter is active.
func (s Selection) IsEmpty() bool {
	return s.Decade == nil && s.ShowID == nil && s.Host == nil
}

// DecadeCount is one histogram bucket.
type DecadeCount struct {
	Decade string `json:"decade"` // e.g. "1990s"
	Year   int    `json:"year"`   // e.g. 1990
	Count  int    `json:"count"`
}

// Histogram is the decade distribution of a play collection.
type Histogram struct {
	Buckets []DecadeCount `json:"buckets"`
	Total   int           `json:"total"`
}

// HourGroup is the plays that aired within one broadcast hour.
type HourGroup struct {
	Label string `json:"label"` // e.g. "2 PM Hour"
	Plays []Play `json:"plays"`
}

// Status is the load state of the view.
type Status string

// Load states.
const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Page is the envelope of a paginated catalog response.
type Page[T any] struct {
	Results  []T     `json:"results"`
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// DecadeBar is a histogram bucket decorated for display.
type DecadeBar struct {
	DecadeCount
	Percent  float64 `json:"percent"`
	Color    int     `json:"color"`
	Selected bool    `json:"selected"`
}

// PlayRow is a play decorated for display.
type PlayRow struct {
	Play
	ReleaseYear string `json:"release_year,omitempty"`
	DecadeColor int    `json:"decade_color"` // -1 when the release date is unknown
}

// HourSection is an hour group decorated for display.
type HourSection struct {
	Label string    `json:"label"`
	Plays []PlayRow `json:"plays"`
}

// View is everything the presentation layer needs to render one frame.
type View struct {
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Shows     []Show        `json:"shows"`
	Hosts     []string      `json:"hosts"`
	Decades   []DecadeBar   `json:"decades"`
	Total     int           `json:"total"`
	Selection Selection     `json:"selection"`
	Summary   string        `json:"summary,omitempty"`
	Matched   int           `json:"matched"`
	Hours     []HourSection `json:"hours"`
}

// Package playlist derives the decade histogram, hour grouping and filter
// predicate from a day's plays and shows. Everything here is pure: no I/O and
// no shared state, so callers may recompute on every selection change.
package playlist

import (
	"strconv"
	"strings"
	"time"
)

// UnknownHour labels plays whose airdate cannot be parsed.
const UnknownHour = "Unknown Time"

// Release dates arrive in whatever precision the catalog knows.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses an ISO-8601 date or timestamp. Zoneless values are read
// in loc. It reports false for empty or malformed input.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReleaseYear returns the year a release date names, as written.
func ReleaseYear(releaseDate string) (int, bool) {
	t, ok := ParseDate(releaseDate, time.UTC)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// DecadeOf returns the first year of the decade containing year.
func DecadeOf(year int) int {
	return year / 10 * 10
}

// DecadeLabel formats a decade start year, e.g. 1990 -> "1990s".
func DecadeLabel(decade int) string {
	return strconv.Itoa(decade) + "s"
}

// ParseDecadeLabel is the inverse of DecadeLabel.
func ParseDecadeLabel(label string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(label, "s"))
	if err != nil || !strings.HasSuffix(label, "s") {
		return 0, false
	}
	return n, true
}

// Decade derives the decade label for a release date. Absent and unparseable
// dates both report false; callers treat them the same way.
func Decade(releaseDate string) (string, int, bool) {
	year, ok := ReleaseYear(releaseDate)
	if !ok {
		return "", 0, false
	}
	d := DecadeOf(year)
	return DecadeLabel(d), d, true
}

// HourLabel buckets an airdate into its containing broadcast hour in loc,
// e.g. "2 PM Hour". Unparseable airdates get UnknownHour.
func HourLabel(airdate string, loc *time.Location) string {
	t, ok := ParseDate(airdate, loc)
	if !ok {
		return UnknownHour
	}
	return t.In(loc).Format("3 PM") + " Hour"
}

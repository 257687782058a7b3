package playlist

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bryan-buckman/onair/internal/model"
)

// Palette is the number of colours the page cycles through.
const Palette = 8

// Hosts returns every host across shows, deduplicated and sorted.
func Hosts(shows []model.Show) []string {
	seen := make(map[string]struct{})
	hosts := []string{}
	for _, s := range shows {
		for _, h := range s.HostNames {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			hosts = append(hosts, h)
		}
	}
	sort.Strings(hosts)
	return hosts
}

// Bars decorates histogram buckets with their share of the total. An empty
// histogram yields no bars.
func Bars(h model.Histogram, selected *string) []model.DecadeBar {
	if h.Total == 0 {
		return []model.DecadeBar{}
	}
	bars := make([]model.DecadeBar, len(h.Buckets))
	for i, b := range h.Buckets {
		bars[i] = model.DecadeBar{
			DecadeCount: b,
			Percent:     float64(b.Count) / float64(h.Total) * 100,
			Color:       i % Palette,
			Selected:    selected != nil && *selected == b.Decade,
		}
	}
	return bars
}

// RoundPercent rounds a percentage for labels.
func RoundPercent(p float64) int {
	return int(math.Round(p))
}

// Songs pluralises a song count, e.g. "1 song", "3 songs".
func Songs(n int) string {
	if n == 1 {
		return "1 song"
	}
	return strconv.Itoa(n) + " songs"
}

// DecadeColor picks the palette index for a release date, or -1 if unknown.
func DecadeColor(releaseDate string) int {
	year, ok := ReleaseYear(releaseDate)
	if !ok {
		return -1
	}
	return ((year % 2000) / 10) % Palette
}

// Row decorates a play for display.
func Row(p model.Play) model.PlayRow {
	row := model.PlayRow{Play: p, DecadeColor: DecadeColor(p.ReleaseDate)}
	if year, ok := ReleaseYear(p.ReleaseDate); ok {
		row.ReleaseYear = strconv.Itoa(year)
	}
	return row
}

// Sections decorates hour groups for display.
func Sections(groups []model.HourGroup) []model.HourSection {
	out := make([]model.HourSection, len(groups))
	for i, g := range groups {
		rows := make([]model.PlayRow, len(g.Plays))
		for j, p := range g.Plays {
			rows[j] = Row(p)
		}
		out[i] = model.HourSection{Label: g.Label, Plays: rows}
	}
	return out
}

// ShowTime formats a show's start time as "3:04 PM" in loc, falling back
// to the raw value.
func ShowTime(start string, loc *time.Location) string {
	t, ok := ParseDate(start, loc)
	if !ok {
		return start
	}
	return t.In(loc).Format("3:04 PM")
}

// Summary describes the active filters, e.g.
// "Songs from the 1990s · Morning Show with Jane". Empty when nothing is set.
func Summary(sel model.Selection, shows []model.Show) string {
	var parts []string
	if sel.Decade != nil {
		parts = append(parts, "Songs from the "+*sel.Decade)
	}
	if sel.ShowID != nil {
		for _, s := range shows {
			if string(s.ID) == *sel.ShowID {
				parts = append(parts, s.ProgramName)
				break
			}
		}
	}
	summary := strings.Join(parts, " · ")
	if sel.Host != nil {
		summary += " with " + *sel.Host
	}
	return strings.TrimSpace(summary)
}

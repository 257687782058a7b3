package playlist

import (
	"time"

	"github.com/bryan-buckman/onair/internal/model"
)

// GroupByHour buckets plays by broadcast hour in loc. Groups appear in the
// order their label is first seen and plays keep input order within a group.
// This is display order, not a chronological sort.
func GroupByHour(plays []model.Play, loc *time.Location) []model.HourGroup {
	var groups []model.HourGroup
	index := make(map[string]int)
	for _, p := range plays {
		label := HourLabel(p.Airdate, loc)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, model.HourGroup{Label: label})
		}
		groups[i].Plays = append(groups[i].Plays, p)
	}
	return groups
}

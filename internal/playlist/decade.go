package playlist

import (
	"sort"

	"github.com/bryan-buckman/onair/internal/model"
)

// AggregateByDecade counts plays per release decade, ascending by decade.
// Plays without a usable release date are left out of both buckets and total.
func AggregateByDecade(plays []model.Play) model.Histogram {
	counts := make(map[int]int)
	for _, p := range plays {
		_, d, ok := Decade(p.ReleaseDate)
		if !ok {
			continue
		}
		counts[d]++
	}

	h := model.Histogram{Buckets: make([]model.DecadeCount, 0, len(counts))}
	for d, n := range counts {
		h.Buckets = append(h.Buckets, model.DecadeCount{
			Decade: DecadeLabel(d),
			Year:   d,
			Count:  n,
		})
		h.Total += n
	}
	sort.Slice(h.Buckets, func(i, j int) bool {
		return h.Buckets[i].Year < h.Buckets[j].Year
	})
	return h
}

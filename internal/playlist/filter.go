package playlist

import "github.com/bryan-buckman/onair/internal/model"

// Predicate decides play inclusion for one selection. The decade, show and
// host conditions are independent and combined with AND; unset fields
// impose nothing.
type Predicate struct {
	sel   model.Selection
	shows map[model.ID]model.Show
}

// NewPredicate indexes shows by ID for host lookup. On duplicate IDs the
// first show wins.
func NewPredicate(sel model.Selection, shows []model.Show) *Predicate {
	p := &Predicate{sel: sel}
	if sel.Host != nil {
		p.shows = make(map[model.ID]model.Show, len(shows))
		for _, s := range shows {
			if _, ok := p.shows[s.ID]; !ok {
				p.shows[s.ID] = s
			}
		}
	}
	return p
}

// Include reports whether play satisfies the selection.
func (p *Predicate) Include(play model.Play) bool {
	if p.sel.Decade != nil {
		label, _, ok := Decade(play.ReleaseDate)
		if !ok || label != *p.sel.Decade {
			return false
		}
	}
	if p.sel.ShowID != nil && string(play.Show) != *p.sel.ShowID {
		return false
	}
	if p.sel.Host != nil {
		show, ok := p.shows[play.Show]
		if !ok || !show.HasHost(*p.sel.Host) {
			return false
		}
	}
	return true
}

// IncludePlay is the single-play form of Filter.
func IncludePlay(play model.Play, sel model.Selection, shows []model.Show) bool {
	return NewPredicate(sel, shows).Include(play)
}

// Filter returns the plays that satisfy sel, in input order.
func Filter(plays []model.Play, sel model.Selection, shows []model.Show) []model.Play {
	p := NewPredicate(sel, shows)
	out := make([]model.Play, 0, len(plays))
	for _, play := range plays {
		if p.Include(play) {
			out = append(out, play)
		}
	}
	return out
}

// Package view owns the loaded playlist, the listener's selection and the
// derived views rendered from them.
package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bryan-buckman/onair/internal/model"
	"github.com/bryan-buckman/onair/internal/playlist"
	"golang.org/x/sync/errgroup"
)

// ErrLoadFailure wraps any failure of the initial load.
var ErrLoadFailure = errors.New("load failure")

// LoadFailureMessage is all the listener is told when loading fails.
const LoadFailureMessage = "Failed to load data. Please try again later."

// Source supplies today's plays and shows.
type Source interface {
	FetchPlays(ctx context.Context) ([]model.Play, error)
	FetchShows(ctx context.Context) ([]model.Show, error)
}

// Controller moves through loading -> ready or loading -> error exactly once.
// Selection changes never reload; they recompute the derived view from the
// collections already held.
type Controller struct {
	source Source
	loc    *time.Location
	once   sync.Once

	mu        sync.RWMutex
	status    model.Status
	err       error
	plays     []model.Play
	shows     []model.Show
	selection model.Selection
	view      model.View
}

// New creates a controller in the loading state.
func New(source Source, loc *time.Location) *Controller {
	if loc == nil {
		loc = time.Local
	}
	c := &Controller{source: source, loc: loc, status: model.StatusLoading}
	c.recompute()
	return c
}

// Start runs Load in the background.
func (c *Controller) Start(ctx context.Context) {
	go c.Load(ctx)
}

// Load fetches plays and shows concurrently. Either failing moves the
// controller to the error state; only the first call does anything.
func (c *Controller) Load(ctx context.Context) {
	c.once.Do(func() {
		start := time.Now()
		var plays []model.Play
		var shows []model.Show

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			plays, err = c.source.FetchPlays(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			shows, err = c.source.FetchShows(gctx)
			return err
		})
		err := g.Wait()

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			log.Printf("Catalog: load failed: %v", err)
			c.status = model.StatusError
			c.err = fmt.Errorf("%w: %v", ErrLoadFailure, err)
		} else {
			log.Printf("Catalog: loaded %d plays, %d shows in %s", len(plays), len(shows), time.Since(start).Round(time.Millisecond))
			c.status = model.StatusReady
			c.plays, c.shows = plays, shows
		}
		c.recompute()
	})
}

// Status returns the load state.
func (c *Controller) Status() model.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Err returns the load failure, if any.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Shows returns the loaded shows.
func (c *Controller) Shows() []model.Show {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shows
}

// Selection returns the current selection.
func (c *Controller) Selection() model.Selection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection
}

// Snapshot returns the view derived from the current state.
func (c *Controller) Snapshot() model.View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func (c *Controller) update(fn func(sel *model.Selection)) model.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.selection)
	c.recompute()
	return c.view
}

// SelectDecade filters to one decade label, e.g. "1990s".
func (c *Controller) SelectDecade(decade string) model.View {
	return c.update(func(sel *model.Selection) { sel.Decade = &decade })
}

// ClearDecade removes the decade filter.
func (c *Controller) ClearDecade() model.View {
	return c.update(func(sel *model.Selection) { sel.Decade = nil })
}

// SelectShow filters to one show ID.
func (c *Controller) SelectShow(id string) model.View {
	return c.update(func(sel *model.Selection) { sel.ShowID = &id })
}

// ClearShow removes the show filter.
func (c *Controller) ClearShow() model.View {
	return c.update(func(sel *model.Selection) { sel.ShowID = nil })
}

// SelectHost filters to shows hosted by name.
func (c *Controller) SelectHost(name string) model.View {
	return c.update(func(sel *model.Selection) { sel.Host = &name })
}

// ClearHost removes the host filter.
func (c *Controller) ClearHost() model.View {
	return c.update(func(sel *model.Selection) { sel.Host = nil })
}

// ClearAll removes every filter.
func (c *Controller) ClearAll() model.View {
	return c.update(func(sel *model.Selection) { *sel = model.Selection{} })
}

// Replace sets the whole selection at once.
func (c *Controller) Replace(next model.Selection) model.View {
	return c.update(func(sel *model.Selection) {
		*sel = model.Selection{Decade: clone(next.Decade), ShowID: clone(next.ShowID), Host: clone(next.Host)}
	})
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// recompute rebuilds c.view. Callers hold c.mu for writing.
func (c *Controller) recompute() {
	v := model.View{
		Status:    c.status,
		Selection: c.selection,
		Shows:     []model.Show{},
		Hosts:     []string{},
		Decades:   []model.DecadeBar{},
		Hours:     []model.HourSection{},
	}
	switch c.status {
	case model.StatusError:
		v.Message = LoadFailureMessage
	case model.StatusReady:
		hist := playlist.AggregateByDecade(c.plays)
		filtered := playlist.Filter(c.plays, c.selection, c.shows)

		if c.shows != nil {
			v.Shows = c.shows
		}
		v.Hosts = playlist.Hosts(c.shows)
		v.Decades = playlist.Bars(hist, c.selection.Decade)
		v.Total = hist.Total
		v.Summary = playlist.Summary(c.selection, c.shows)
		v.Matched = len(filtered)
		v.Hours = playlist.Sections(playlist.GroupByHour(filtered, c.loc))
	}
	c.view = v
}

// Package quicktravel lets the viewer jump to the default viewpoint of any
// area they have already visited.
package quicktravel

import (
	"github.com/rs/zerolog"

	"portfolioquest/internal/nav"
	"portfolioquest/internal/state"
)

// Resolver reports whether a viewpoint exists. *nav.Graph satisfies it.
type Resolver interface {
	HasViewpoint(id string) bool
}

// Entry is one row of the quick-travel list.
type Entry struct {
	Area       nav.Area
	Visited    bool
	Current    bool
	Selectable bool
}

// Selector lists the quick-travel areas and guards selection.
type Selector struct {
	store *state.Store
	graph Resolver
	log   zerolog.Logger
}

func NewSelector(store *state.Store, graph Resolver, log zerolog.Logger) *Selector {
	return &Selector{store: store, graph: graph, log: log}
}

// Entries returns every catalogue area with a default viewpoint the graph
// knows, in catalogue order.
func (s *Selector) Entries() []Entry {
	snap := s.store.Snapshot()
	var out []Entry
	for _, a := range nav.Areas() {
		if a.DefaultViewpoint == "" || !s.graph.HasViewpoint(a.DefaultViewpoint) {
			continue
		}
		e := Entry{
			Area:    a,
			Visited: snap.Visited(a.ID),
			Current: snap.CurrentArea == a.ID,
		}
		e.Selectable = e.Visited && !e.Current && !snap.IsTransitioning
		out = append(out, e)
	}
	return out
}

// Select travels to area's default viewpoint and closes the list. Areas that
// are locked, current, unknown, or requested mid-transition are refused with
// no change.
func (s *Selector) Select(area nav.AreaID) bool {
	for _, e := range s.Entries() {
		if e.Area.ID != area {
			continue
		}
		if !e.Selectable {
			s.log.Debug().Str("area", string(area)).Bool("visited", e.Visited).Bool("current", e.Current).
				Msg("quick travel refused")
			return false
		}
		if !s.store.NavigateTo(e.Area.DefaultViewpoint) {
			return false
		}
		s.store.SetQuickTravelOpen(false)
		return true
	}
	s.log.Debug().Str("area", string(area)).Msg("quick travel refused: no destination")
	return false
}

func (s *Selector) Open()  { s.store.SetQuickTravelOpen(true) }
func (s *Selector) Close() { s.store.SetQuickTravelOpen(false) }

// Toggle flips the list open or closed.
func (s *Selector) Toggle() {
	s.store.SetQuickTravelOpen(!s.store.Snapshot().QuickTravelOpen)
}

package nav

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Graph is the read-only viewpoint graph for a session.
type Graph struct {
	start    string
	order    []*Viewpoint
	byID     map[string]*Viewpoint
	problems []error
}

func build(doc document, log zerolog.Logger) (*Graph, error) {
	if len(doc.Viewpoints) == 0 {
		return nil, errors.New("document has no viewpoints")
	}
	g := &Graph{
		start: doc.StartViewpoint,
		byID:  make(map[string]*Viewpoint, len(doc.Viewpoints)),
	}
	for _, d := range doc.Viewpoints {
		vp, err := d.viewpoint()
		if err != nil {
			return nil, err
		}
		if _, dup := g.byID[vp.ID]; dup {
			return nil, fmt.Errorf("duplicate viewpoint %q", vp.ID)
		}
		g.byID[vp.ID] = vp
		g.order = append(g.order, vp)
	}

	// Edges are checked only once every viewpoint is known.
	for _, vp := range g.order {
		kept := vp.Hotspots[:0]
		for _, h := range vp.Hotspots {
			if _, ok := g.byID[h.TargetViewpoint]; !ok {
				err := &DanglingReferenceError{ViewpointID: vp.ID, HotspotID: h.ID, Target: h.TargetViewpoint}
				g.problems = append(g.problems, err)
				log.Warn().Err(err).Msg("dropping hotspot")
				continue
			}
			kept = append(kept, h)
		}
		vp.Hotspots = kept
	}

	if g.start != "" {
		if _, ok := g.byID[g.start]; !ok {
			log.Warn().Str("startViewpoint", g.start).Msg("start viewpoint not found, using first viewpoint")
			g.problems = append(g.problems, fmt.Errorf("startViewpoint %q does not exist", g.start))
			g.start = ""
		}
	}
	if g.start == "" {
		g.start = g.order[0].ID
	}
	return g, nil
}

// Viewpoint looks up a viewpoint by id.
func (g *Graph) Viewpoint(id string) (*Viewpoint, bool) {
	vp, ok := g.byID[id]
	return vp, ok
}

// HasViewpoint reports whether id names a viewpoint in the graph.
func (g *Graph) HasViewpoint(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Start returns the document's start viewpoint, or the first one in load order
// when the document names none that exists.
func (g *Graph) Start() *Viewpoint {
	return g.byID[g.start]
}

// StartAt prefers the viewpoint named by preferred and falls back to Start.
func (g *Graph) StartAt(preferred string) *Viewpoint {
	if vp, ok := g.byID[preferred]; ok {
		return vp
	}
	return g.Start()
}

// Viewpoints returns every viewpoint in load order.
func (g *Graph) Viewpoints() []*Viewpoint {
	out := make([]*Viewpoint, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of viewpoints.
func (g *Graph) Len() int { return len(g.order) }

// Problems lists the non-fatal issues found while loading: dropped hotspots
// and an unresolved start viewpoint.
func (g *Graph) Problems() []error {
	out := make([]error, len(g.problems))
	copy(out, g.problems)
	return out
}

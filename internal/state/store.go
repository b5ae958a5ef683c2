// Package state holds the application state aggregate for one viewer and the
// named actions that mutate it. Every action is applied under the store's
// mutex, so observers never see a half-applied change, and each change is
// announced on the store's broadcaster by topic.
package state

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"portfolioquest/internal/nav"
	"portfolioquest/pkg/realtime"
)

// Topics published when the matching part of the state changes.
const (
	TopicNavigation  = "navigation"
	TopicArea        = "area"
	TopicOverlay     = "overlay"
	TopicHover       = "hover"
	TopicTelescope   = "telescope"
	TopicQuickTravel = "quicktravel"
	TopicLifecycle   = "lifecycle"
)

// DefaultTools is the telescope focus order used when none is configured.
var DefaultTools = []string{"grafana", "prometheus", "alertmanager", "datadog", "sumo"}

// Resolver reports whether a viewpoint id exists. *nav.Graph satisfies it.
type Resolver interface {
	HasViewpoint(id string) bool
}

// Option configures a Store.
type Option func(*Store)

// WithResolver makes NavigateTo refuse ids the resolver does not know.
func WithResolver(r Resolver) Option {
	return func(s *Store) { s.resolver = r }
}

// WithLogger logs refused actions.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithHub publishes change topics on hub.
func WithHub(hub *realtime.Broadcaster) Option {
	return func(s *Store) { s.hub = hub }
}

// WithTools sets the telescope focus order. An empty list keeps DefaultTools.
func WithTools(tools []string) Option {
	return func(s *Store) {
		if len(tools) > 0 {
			s.tools = append([]string(nil), tools...)
		}
	}
}

// Store is the single mutable aggregate. Empty strings mean "none".
type Store struct {
	mu sync.Mutex

	currentViewpoint string
	targetViewpoint  string
	isTransitioning  bool
	currentArea      nav.AreaID
	visitedAreas     mapset.Set[nav.AreaID]
	activeInfoPoint  string
	hoveredHotspot   string
	quickTravelOpen  bool
	telescopeMode    bool
	focusedTool      string
	isLoading        bool
	isPaused         bool

	tools    []string
	resolver Resolver
	log      zerolog.Logger
	hub      *realtime.Broadcaster
}

// New creates a store positioned in startArea, which is also the first
// visited area. The store starts loading.
func New(startArea nav.AreaID, opts ...Option) *Store {
	s := &Store{
		currentArea:  startArea,
		visitedAreas: mapset.New[nav.AreaID](),
		isLoading:    true,
		tools:        append([]string(nil), DefaultTools...),
		log:          zerolog.Nop(),
	}
	s.visitedAreas.Put(startArea)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tools returns the telescope focus order.
func (s *Store) Tools() []string {
	return append([]string(nil), s.tools...)
}

func (s *Store) publish(topics ...string) {
	if s.hub != nil && len(topics) > 0 {
		s.hub.Publish(topics...)
	}
}

// SetCurrentViewpoint places the camera at id without animating and drops any
// pending transition.
func (s *Store) SetCurrentViewpoint(id string) {
	s.mu.Lock()
	s.currentViewpoint = id
	s.targetViewpoint = ""
	s.isTransitioning = false
	s.mu.Unlock()
	s.publish(TopicNavigation)
}

// NavigateTo starts a transition to id. It refuses, leaving the state
// untouched, while a transition is in flight, for an empty id, and for ids
// the resolver does not know. It reports whether the transition started.
func (s *Store) NavigateTo(id string) bool {
	s.mu.Lock()
	switch {
	case s.isTransitioning:
		target := s.targetViewpoint
		s.mu.Unlock()
		s.log.Debug().Str("viewpoint", id).Str("target", target).Msg("navigation refused: already transitioning")
		return false
	case id == "":
		s.mu.Unlock()
		s.log.Debug().Msg("navigation refused: empty viewpoint id")
		return false
	case s.resolver != nil && !s.resolver.HasViewpoint(id):
		s.mu.Unlock()
		s.log.Warn().Str("viewpoint", id).Msg("navigation refused: unknown viewpoint")
		return false
	}
	s.targetViewpoint = id
	s.isTransitioning = true
	s.mu.Unlock()
	s.publish(TopicNavigation)
	return true
}

// CompleteTransition makes the target current. Without a transition in flight
// it does nothing.
func (s *Store) CompleteTransition() {
	s.mu.Lock()
	if !s.isTransitioning {
		s.mu.Unlock()
		return
	}
	s.currentViewpoint = s.targetViewpoint
	s.targetViewpoint = ""
	s.isTransitioning = false
	s.mu.Unlock()
	s.publish(TopicNavigation)
}

// SetHoveredHotspot sets the hovered hotspot; "" clears it.
func (s *Store) SetHoveredHotspot(id string) {
	s.mu.Lock()
	changed := s.hoveredHotspot != id
	s.hoveredHotspot = id
	s.mu.Unlock()
	if changed {
		s.publish(TopicHover)
	}
}

// SetCurrentArea records the area the camera is in.
func (s *Store) SetCurrentArea(area nav.AreaID) {
	s.mu.Lock()
	changed := s.currentArea != area
	s.currentArea = area
	s.mu.Unlock()
	if changed {
		s.publish(TopicArea)
	}
}

// MarkAreaVisited adds area to the visited set. Visiting twice is the same as once.
func (s *Store) MarkAreaVisited(area nav.AreaID) {
	s.mu.Lock()
	changed := !s.visitedAreas.Has(area)
	s.visitedAreas.Put(area)
	s.mu.Unlock()
	if changed {
		s.publish(TopicArea)
	}
}

// SetLoading sets the document loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	changed := s.isLoading != loading
	s.isLoading = loading
	s.mu.Unlock()
	if changed {
		s.publish(TopicLifecycle)
	}
}

// SetPaused freezes or resumes frame updates.
func (s *Store) SetPaused(paused bool) {
	s.mu.Lock()
	changed := s.isPaused != paused
	s.isPaused = paused
	s.mu.Unlock()
	if changed {
		s.publish(TopicLifecycle)
	}
}

// SetActiveInfoPoint opens the overlay for contentID; "" closes it.
func (s *Store) SetActiveInfoPoint(contentID string) {
	s.mu.Lock()
	changed := s.activeInfoPoint != contentID
	s.activeInfoPoint = contentID
	s.mu.Unlock()
	if changed {
		s.publish(TopicOverlay)
	}
}

// SetQuickTravelOpen shows or hides the quick-travel menu.
func (s *Store) SetQuickTravelOpen(open bool) {
	s.mu.Lock()
	changed := s.quickTravelOpen != open
	s.quickTravelOpen = open
	s.mu.Unlock()
	if changed {
		s.publish(TopicQuickTravel)
	}
}

// EnterTelescopeMode turns telescope mode on and focuses the first tool,
// whatever was focused before.
func (s *Store) EnterTelescopeMode() {
	s.mu.Lock()
	s.telescopeMode = true
	s.focusedTool = s.tools[0]
	s.mu.Unlock()
	s.publish(TopicTelescope)
}

// ExitTelescopeMode turns telescope mode off and clears the focused tool.
func (s *Store) ExitTelescopeMode() {
	s.mu.Lock()
	s.telescopeMode = false
	s.focusedTool = ""
	s.mu.Unlock()
	s.publish(TopicTelescope)
}

// SetFocusedTool sets the focused tool while telescope mode is on; "" clears
// it. Outside telescope mode the call is ignored so a focus never exists
// without the mode.
func (s *Store) SetFocusedTool(id string) {
	s.mu.Lock()
	if !s.telescopeMode {
		s.mu.Unlock()
		s.log.Debug().Str("tool", id).Msg("focus ignored: telescope mode off")
		return
	}
	changed := s.focusedTool != id
	s.focusedTool = id
	s.mu.Unlock()
	if changed {
		s.publish(TopicTelescope)
	}
}

// Snapshot is a consistent copy of the state.
type Snapshot struct {
	CurrentViewpoint string       `json:"currentViewpoint"`
	TargetViewpoint  string       `json:"targetViewpoint"`
	IsTransitioning  bool         `json:"isTransitioning"`
	CurrentArea      nav.AreaID   `json:"currentArea"`
	VisitedAreas     []nav.AreaID `json:"visitedAreas"`
	ActiveInfoPoint  string       `json:"activeInfoPoint"`
	HoveredHotspot   string       `json:"hoveredHotspot"`
	QuickTravelOpen  bool         `json:"isQuickTravelOpen"`
	TelescopeMode    bool         `json:"telescopeMode"`
	FocusedTool      string       `json:"focusedTool"`
	IsLoading        bool         `json:"isLoading"`
	IsPaused         bool         `json:"isPaused"`
}

// Visited reports whether area is in VisitedAreas.
func (s Snapshot) Visited(area nav.AreaID) bool {
	for _, a := range s.VisitedAreas {
		if a == area {
			return true
		}
	}
	return false
}

// Snapshot returns the state with visited areas in catalogue order; areas
// outside the catalogue follow, sorted by id.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	visited := make([]nav.AreaID, 0, s.visitedAreas.Size())
	s.visitedAreas.Each(func(a nav.AreaID) {
		visited = append(visited, a)
	})
	sort.Slice(visited, func(i, j int) bool {
		ri, rj := areaRank(visited[i]), areaRank(visited[j])
		if ri != rj {
			return ri < rj
		}
		return visited[i] < visited[j]
	})
	return Snapshot{
		CurrentViewpoint: s.currentViewpoint,
		TargetViewpoint:  s.targetViewpoint,
		IsTransitioning:  s.isTransitioning,
		CurrentArea:      s.currentArea,
		VisitedAreas:     visited,
		ActiveInfoPoint:  s.activeInfoPoint,
		HoveredHotspot:   s.hoveredHotspot,
		QuickTravelOpen:  s.quickTravelOpen,
		TelescopeMode:    s.telescopeMode,
		FocusedTool:      s.focusedTool,
		IsLoading:        s.isLoading,
		IsPaused:         s.isPaused,
	}
}

func areaRank(id nav.AreaID) int {
	for i, a := range nav.Areas() {
		if a.ID == id {
			return i
		}
	}
	return len(nav.Areas())
}

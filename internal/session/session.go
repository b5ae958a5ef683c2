// Package session composes the navigation core for one viewer and serialises
// everything that touches it.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"portfolioquest/internal/camera"
	"portfolioquest/internal/content"
	"portfolioquest/internal/controls"
	"portfolioquest/internal/input"
	"portfolioquest/internal/nav"
	"portfolioquest/internal/quicktravel"
	"portfolioquest/internal/state"
	"portfolioquest/internal/telescope"
	"portfolioquest/pkg/realtime"
)

// TopicCamera is published on frames that moved the camera.
const TopicCamera = "camera"

// DefaultTrigger is the content id of the anchor that enters telescope mode.
const DefaultTrigger = "telescope"

type graph interface {
	camera.Graph
	HasViewpoint(id string) bool
}

// emptyGraph stands in when the navigation document failed to load.
type emptyGraph struct{}

func (emptyGraph) Viewpoint(string) (*nav.Viewpoint, bool) { return nil, false }
func (emptyGraph) StartAt(string) *nav.Viewpoint           { return nil }
func (emptyGraph) HasViewpoint(string) bool                { return false }

// Session is one viewer's navigation state and the components that drive it.
type Session struct {
	ID string

	mu       sync.Mutex
	store    *state.Store
	rig      *camera.Rig
	ctrl     *camera.Controller
	cycler   *telescope.Cycler
	selector *quicktravel.Selector
	sampler  *controls.Sampler
	clock    *realtime.FrameClock
	graph    graph
	content  *content.Library
	trigger  string
	start    string
	loadErr  error
	log      zerolog.Logger
}

// New builds a session whose store publishes on hub. hub may be nil.
func New(id string, hub *realtime.Broadcaster, opts Options) (*Session, error) {
	var g graph = emptyGraph{}
	startArea := nav.CentralHall
	if opts.Graph != nil {
		g = opts.Graph
		if vp := opts.Graph.StartAt(opts.StartViewpoint); vp != nil {
			startArea = vp.Area
		}
	}
	duration := opts.Duration
	if duration == 0 {
		duration = camera.DefaultDuration
	}
	trigger := opts.Trigger
	if trigger == "" {
		trigger = DefaultTrigger
	}
	log := opts.Log.With().Str("session", id).Logger()

	storeOpts := []state.Option{
		state.WithResolver(g),
		state.WithLogger(log),
		state.WithTools(opts.Tools),
	}
	if hub != nil {
		storeOpts = append(storeOpts, state.WithHub(hub))
	}
	store := state.New(startArea, storeOpts...)

	rig := camera.NewRig()
	ctrl, err := camera.NewController(rig, store, g, duration, log)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       id,
		store:    store,
		rig:      rig,
		ctrl:     ctrl,
		cycler:   telescope.NewCycler(store),
		selector: quicktravel.NewSelector(store, g, log),
		sampler:  controls.NewSampler(),
		clock:    realtime.NewFrameClock(opts.FrameInterval),
		graph:    g,
		content:  opts.Content,
		trigger:  trigger,
		start:    opts.StartViewpoint,
		loadErr:  opts.LoadErr,
		log:      log,
	}, nil
}

// Mount places the camera at the start viewpoint and ends loading. A session
// without a usable graph keeps running with its load error set.
func (s *Session) Mount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.ctrl.Mount(s.start)
	if err != nil {
		s.log.Error().Err(err).Msg("mount failed")
		if s.loadErr == nil {
			s.loadErr = err
		}
	}
	s.store.SetLoading(false)
	return err
}

// Tick runs one frame at now and returns the topics it produced. Paused and
// idle sessions skip the frame and restart their clock, so the first frame
// after a pause or idle spell advances by zero.
func (s *Session) Tick(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.store.Snapshot()
	if snap.IsPaused || (!snap.IsTransitioning && s.ctrl.Phase() == camera.Idle) {
		s.clock.Reset()
		return nil
	}
	if err := s.ctrl.Update(s.clock.Advance(now)); err != nil {
		s.log.Warn().Err(err).Msg("transition dropped")
	}
	if s.ctrl.Phase() == camera.Idle {
		s.clock.Reset()
	}
	return []string{TopicCamera}
}

// NeedsFrames reports whether Tick has work to do.
func (s *Session) NeedsFrames() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.store.Snapshot()
	return !snap.IsPaused && (snap.IsTransitioning || s.ctrl.Phase() == camera.Transitioning)
}

// NextFrame returns when the next frame is due.
func (s *Session) NextFrame(now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.NextWake(now)
}

func (s *Session) currentViewpoint() (*nav.Viewpoint, bool) {
	return s.graph.Viewpoint(s.store.Snapshot().CurrentViewpoint)
}

// ClickHotspot navigates along hotspot id of the current viewpoint. Clicks
// during a transition and unknown hotspots are ignored.
func (s *Session) ClickHotspot(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Snapshot().IsTransitioning {
		return false
	}
	vp, ok := s.currentViewpoint()
	if !ok {
		return false
	}
	h, ok := vp.Hotspot(id)
	if !ok {
		s.log.Debug().Str("hotspot", id).Str("viewpoint", vp.ID).Msg("click on unknown hotspot")
		return false
	}
	if !s.store.NavigateTo(h.TargetViewpoint) {
		return false
	}
	s.store.SetHoveredHotspot("")
	return true
}

// HoverHotspot marks a hotspot of the current viewpoint as hovered.
func (s *Session) HoverHotspot(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp, ok := s.currentViewpoint()
	if !ok {
		return
	}
	if _, ok := vp.Hotspot(id); ok {
		s.store.SetHoveredHotspot(id)
	}
}

func (s *Session) ClearHover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetHoveredHotspot("")
}

// ClickInfoPoint handles a click on the info point anchoring contentID in the
// current viewpoint. The telescope trigger enters telescope mode. The beacon
// and ledger overlays only open. Anything else toggles its panel. Opening a
// panel leaves telescope mode and entering telescope mode closes the panel.
func (s *Session) ClickInfoPoint(contentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp, ok := s.currentViewpoint()
	if !ok {
		return false
	}
	if _, ok := vp.InfoPointByContent(contentID); !ok {
		return false
	}
	snap := s.store.Snapshot()
	switch {
	case contentID == s.trigger:
		if !s.cycler.Activate() {
			return false
		}
		s.store.SetActiveInfoPoint("")
	case contentID == content.BeaconID || contentID == content.LedgerID:
		if snap.ActiveInfoPoint == contentID {
			return false
		}
		s.openPanel(contentID)
	case snap.ActiveInfoPoint == contentID:
		s.store.SetActiveInfoPoint("")
	default:
		s.openPanel(contentID)
	}
	return true
}

func (s *Session) openPanel(contentID string) {
	if s.store.Snapshot().TelescopeMode {
		s.store.ExitTelescopeMode()
	}
	s.store.SetActiveInfoPoint(contentID)
}

func (s *Session) CloseInfoPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetActiveInfoPoint("")
}

// SelectTool focuses a telescope tool directly.
func (s *Session) SelectTool(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycler.Select(id)
}

// KeyDown routes a key press to the telescope cycler first; keys it consumes
// never reach the movement sampler. Escape outside telescope mode closes the
// info panel.
func (s *Session) KeyDown(k input.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cycler.HandleKey(k) {
		return true
	}
	if k == input.Escape && s.store.Snapshot().ActiveInfoPoint != "" {
		s.store.SetActiveInfoPoint("")
		return true
	}
	return s.sampler.KeyDown(k)
}

// KeyUp always reaches the sampler so a held direction is released even if
// telescope mode started while it was down.
func (s *Session) KeyUp(k input.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampler.KeyUp(k)
}

func (s *Session) SetQuickTravelOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.selector.Open()
	} else {
		s.selector.Close()
	}
}

func (s *Session) ToggleQuickTravel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selector.Toggle()
}

// QuickTravel jumps to area's default viewpoint when the selector allows it.
func (s *Session) QuickTravel(area nav.AreaID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector.Select(area)
}

func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetPaused(paused)
}

// TogglePause flips pause and returns the new value.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	paused := !s.store.Snapshot().IsPaused
	s.store.SetPaused(paused)
	return paused
}

// Pose is the camera transform.
type Pose struct {
	Position nav.Vec3 `json:"position"`
	LookAt   nav.Vec3 `json:"lookAt"`
}

// Panel is the content behind the open info point.
type Panel struct {
	ContentID string
	Item      content.Item
	Found     bool
}

// Focus is the focused telescope tool and its content, if any.
type Focus struct {
	ToolID string
	Tool   content.Tool
	Found  bool
}

// Snapshot is everything a host needs to draw one frame.
type Snapshot struct {
	ID          string              `json:"id"`
	State       state.Snapshot      `json:"state"`
	Camera      Pose                `json:"camera"`
	Phase       string              `json:"phase"`
	Progress    float64             `json:"progress"`
	Intent      controls.Intent     `json:"intent"`
	LoadError   string              `json:"loadError,omitempty"`
	Viewpoint   *nav.Viewpoint      `json:"-"`
	QuickTravel []quicktravel.Entry `json:"-"`
	Panel       *Panel              `json:"-"`
	Focus       *Focus              `json:"-"`
	Tools       []content.Tool      `json:"-"`
	Trigger     string              `json:"-"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store.Snapshot()
	snap := Snapshot{
		ID:       s.ID,
		State:    st,
		Camera:   Pose{Position: s.rig.Position(), LookAt: s.rig.LookAt()},
		Phase:    s.ctrl.Phase().String(),
		Progress: s.ctrl.Progress(),
		Intent:   s.sampler.State(),
		Trigger:  s.trigger,
	}
	if s.loadErr != nil {
		snap.LoadError = s.loadErr.Error()
	}
	if vp, ok := s.graph.Viewpoint(st.CurrentViewpoint); ok {
		snap.Viewpoint = vp
	}
	if st.QuickTravelOpen {
		snap.QuickTravel = s.selector.Entries()
	}
	if st.ActiveInfoPoint != "" {
		item, err := s.content.Lookup(st.ActiveInfoPoint)
		snap.Panel = &Panel{ContentID: st.ActiveInfoPoint, Item: item, Found: err == nil}
		if err != nil && !errors.Is(err, content.ErrNotFound) {
			s.log.Warn().Err(err).Str("content", st.ActiveInfoPoint).Msg("content lookup failed")
		}
	}
	if st.TelescopeMode {
		f := &Focus{ToolID: st.FocusedTool}
		f.Tool, f.Found = s.content.Tool(st.FocusedTool)
		snap.Focus = f
		for _, id := range s.store.Tools() {
			t, ok := s.content.Tool(id)
			if !ok {
				t = content.Tool{ID: id, Name: id}
			}
			snap.Tools = append(snap.Tools, t)
		}
	}
	return snap
}

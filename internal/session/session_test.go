package session

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolioquest/internal/camera"
	"portfolioquest/internal/content"
	"portfolioquest/internal/input"
	"portfolioquest/internal/nav"
	"portfolioquest/pkg/realtime"
)

func defaultOptions(t *testing.T) Options {
	t.Helper()
	g, err := nav.LoadDefault(zerolog.Nop())
	require.NoError(t, err)
	lib, err := content.Load("")
	require.NoError(t, err)
	return Options{
		Graph:    g,
		Content:  lib,
		Duration: time.Second,
		Log:      zerolog.Nop(),
	}
}

type harness struct {
	t    *testing.T
	s    *Session
	now  time.Time
	step time.Duration
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	s, err := New("test", nil, opts)
	require.NoError(t, err)
	require.NoError(t, s.Mount())
	return &harness{t: t, s: s, now: time.Unix(1700000000, 0), step: 100 * time.Millisecond}
}

// settle ticks until the session has nothing left to animate.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; i < 1000; i++ {
		h.s.Tick(h.now)
		if !h.s.NeedsFrames() {
			return
		}
		h.now = h.now.Add(h.step)
	}
	h.t.Fatal("transition never settled")
}

func (h *harness) walk(hotspots ...string) {
	h.t.Helper()
	for _, id := range hotspots {
		require.True(h.t, h.s.ClickHotspot(id), "hotspot %s", id)
		h.settle()
	}
}

func TestMountPlacesStart(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	snap := h.s.Snapshot()

	assert.Equal(t, "hall-entrance", snap.State.CurrentViewpoint)
	assert.Equal(t, nav.CentralHall, snap.State.CurrentArea)
	assert.True(t, snap.State.Visited(nav.CentralHall))
	assert.False(t, snap.State.IsLoading)
	assert.Empty(t, snap.LoadError)
	require.NotNil(t, snap.Viewpoint)
	assert.Equal(t, snap.Viewpoint.Position, snap.Camera.Position)
}

func TestConfiguredStartViewpoint(t *testing.T) {
	opts := defaultOptions(t)
	opts.StartViewpoint = "forge-entrance"
	h := newHarness(t, opts)

	snap := h.s.Snapshot()
	assert.Equal(t, "forge-entrance", snap.State.CurrentViewpoint)
	assert.Equal(t, []nav.AreaID{nav.Forge}, snap.State.VisitedAreas)
}

func TestHotspotNavigation(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	h.walk("to-hall-center", "to-hall-west", "to-library")

	snap := h.s.Snapshot()
	assert.Equal(t, "library-entrance", snap.State.CurrentViewpoint)
	assert.Equal(t, nav.Library, snap.State.CurrentArea)
	assert.Equal(t, []nav.AreaID{nav.CentralHall, nav.Library}, snap.State.VisitedAreas)
	assert.Equal(t, snap.Viewpoint.Position, snap.Camera.Position)
}

func TestHotspotGuards(t *testing.T) {
	h := newHarness(t, defaultOptions(t))

	assert.False(t, h.s.ClickHotspot("to-library"), "hotspot of another viewpoint")
	require.True(t, h.s.ClickHotspot("to-hall-center"))
	assert.False(t, h.s.ClickHotspot("to-hall-center"), "click while transitioning")
	h.settle()
	assert.Equal(t, "hall-center", h.s.Snapshot().State.CurrentViewpoint)
}

func TestHover(t *testing.T) {
	h := newHarness(t, defaultOptions(t))

	h.s.HoverHotspot("to-hall-center")
	assert.Equal(t, "to-hall-center", h.s.Snapshot().State.HoveredHotspot)
	h.s.HoverHotspot("bogus")
	assert.Equal(t, "to-hall-center", h.s.Snapshot().State.HoveredHotspot)
	h.s.ClearHover()
	assert.Empty(t, h.s.Snapshot().State.HoveredHotspot)
}

func TestInfoPointToggles(t *testing.T) {
	h := newHarness(t, defaultOptions(t))

	require.True(t, h.s.ClickInfoPoint(content.ProfileID))
	snap := h.s.Snapshot()
	require.NotNil(t, snap.Panel)
	assert.True(t, snap.Panel.Found)
	assert.Equal(t, content.KindProfile, snap.Panel.Item.Kind)

	require.True(t, h.s.ClickInfoPoint(content.ProfileID))
	assert.Nil(t, h.s.Snapshot().Panel)

	assert.False(t, h.s.ClickInfoPoint("go"), "info point not on this viewpoint")
}

func TestObservatoryOverlaysAndTelescope(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	h.walk("to-hall-center", "to-hall-north", "to-observatory", "observatory-to-deck")

	require.True(t, h.s.ClickInfoPoint(content.BeaconID))
	assert.False(t, h.s.ClickInfoPoint(content.BeaconID), "beacon does not toggle")
	assert.Equal(t, content.BeaconID, h.s.Snapshot().State.ActiveInfoPoint)

	require.True(t, h.s.ClickInfoPoint("telescope"))
	snap := h.s.Snapshot()
	assert.True(t, snap.State.TelescopeMode)
	assert.Empty(t, snap.State.ActiveInfoPoint)
	require.NotNil(t, snap.Focus)
	assert.Equal(t, "grafana", snap.Focus.ToolID)
	assert.True(t, snap.Focus.Found)
	assert.Equal(t, "Grafana", snap.Focus.Tool.Name)

	assert.True(t, h.s.SelectTool("datadog"))
	assert.False(t, h.s.ClickInfoPoint("telescope"), "already active")
	assert.Equal(t, "datadog", h.s.Snapshot().State.FocusedTool)

	require.True(t, h.s.ClickInfoPoint(content.BeaconID))
	assert.False(t, h.s.Snapshot().State.TelescopeMode)
}

func TestKeyRouting(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	h.walk("to-hall-center", "to-hall-north", "to-observatory", "observatory-to-deck")

	assert.True(t, h.s.KeyDown(input.ArrowRight))
	assert.True(t, h.s.Snapshot().Intent.Right, "movement while telescope is off")
	assert.True(t, h.s.KeyUp(input.ArrowRight))

	require.True(t, h.s.ClickInfoPoint("telescope"))
	assert.True(t, h.s.KeyDown(input.ArrowRight))
	snap := h.s.Snapshot()
	assert.Equal(t, "prometheus", snap.State.FocusedTool)
	assert.False(t, snap.Intent.Right, "cycler consumed the key")

	assert.True(t, h.s.KeyDown(input.KeyW))
	assert.True(t, h.s.Snapshot().Intent.Forward)

	assert.True(t, h.s.KeyDown(input.Escape))
	assert.False(t, h.s.Snapshot().State.TelescopeMode)
	assert.True(t, h.s.KeyUp(input.KeyW))
	assert.False(t, h.s.Snapshot().Intent.Any())
}

func TestEscapeClosesPanel(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	h.s.ClickInfoPoint(content.ProfileID)

	assert.True(t, h.s.KeyDown(input.Escape))
	assert.Empty(t, h.s.Snapshot().State.ActiveInfoPoint)
	assert.False(t, h.s.KeyDown(input.Escape))
}

func TestQuickTravel(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	h.s.SetQuickTravelOpen(true)
	assert.False(t, h.s.QuickTravel(nav.Forge), "locked")

	h.s.SetQuickTravelOpen(false)
	h.walk("to-hall-center", "to-hall-west", "to-forge", "forge-to-hall")

	h.s.ToggleQuickTravel()
	snap := h.s.Snapshot()
	require.True(t, snap.State.QuickTravelOpen)
	assert.NotEmpty(t, snap.QuickTravel)

	require.True(t, h.s.QuickTravel(nav.Forge))
	h.settle()
	snap = h.s.Snapshot()
	assert.Equal(t, "forge-entrance", snap.State.CurrentViewpoint)
	assert.False(t, snap.State.QuickTravelOpen)
	assert.Nil(t, snap.QuickTravel)
}

func TestPauseFreezesTransition(t *testing.T) {
	h := newHarness(t, defaultOptions(t))
	require.True(t, h.s.ClickHotspot("to-hall-center"))
	h.s.Tick(h.now)
	h.now = h.now.Add(300 * time.Millisecond)
	h.s.Tick(h.now)
	progress := h.s.Snapshot().Progress
	require.InDelta(t, 0.3, progress, 1e-9)

	assert.True(t, h.s.TogglePause())
	assert.False(t, h.s.NeedsFrames())
	h.now = h.now.Add(time.Hour)
	assert.Nil(t, h.s.Tick(h.now))
	assert.Equal(t, progress, h.s.Snapshot().Progress)

	h.s.SetPaused(false)
	h.s.Tick(h.now)
	assert.Equal(t, progress, h.s.Snapshot().Progress, "first frame after pause advances by zero")
	h.settle()
	assert.Equal(t, "hall-center", h.s.Snapshot().State.CurrentViewpoint)
}

func TestLoadFailureKeepsSessionAlive(t *testing.T) {
	loadErr := &nav.DataLoadError{Source: "missing.json", Err: errors.New("no such file")}
	s, err := New("broken", nil, Options{LoadErr: loadErr, Log: zerolog.Nop()})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Mount(), camera.ErrUnknownViewpoint)
	snap := s.Snapshot()
	assert.False(t, snap.State.IsLoading)
	assert.Contains(t, snap.LoadError, "missing.json")
	assert.Nil(t, snap.Viewpoint)

	assert.False(t, s.ClickHotspot("to-hall-center"))
	assert.False(t, s.ClickInfoPoint(content.ProfileID))
	assert.Nil(t, s.Tick(time.Unix(0, 0)))
}

func TestMissingContentShowsUnavailablePanel(t *testing.T) {
	opts := defaultOptions(t)
	opts.Content = nil
	h := newHarness(t, opts)

	require.True(t, h.s.ClickInfoPoint(content.ProfileID))
	snap := h.s.Snapshot()
	require.NotNil(t, snap.Panel)
	assert.False(t, snap.Panel.Found)
}

func TestStorePublishesOnHub(t *testing.T) {
	hub := realtime.NewBroadcaster()
	ch := hub.Subscribe()
	s, err := New("hub", hub, defaultOptions(t))
	require.NoError(t, err)
	require.NoError(t, s.Mount())

	select {
	case topic := <-ch:
		assert.NotEmpty(t, topic)
	default:
		t.Fatal("mount published nothing")
	}
}

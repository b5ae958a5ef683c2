package camera

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolioquest/internal/nav"
	"portfolioquest/internal/state"
)

type fakeGraph struct {
	order []*nav.Viewpoint
}

func (g fakeGraph) Viewpoint(id string) (*nav.Viewpoint, bool) {
	for _, vp := range g.order {
		if vp.ID == id {
			return vp, true
		}
	}
	return nil, false
}

func (g fakeGraph) StartAt(preferred string) *nav.Viewpoint {
	if vp, ok := g.Viewpoint(preferred); ok {
		return vp
	}
	if len(g.order) == 0 {
		return nil
	}
	return g.order[0]
}

func testGraph() fakeGraph {
	return fakeGraph{order: []*nav.Viewpoint{
		{ID: "hall-entrance", Area: nav.CentralHall, Position: nav.Vec3{Y: 1.7, Z: 12}, LookAt: nav.Vec3{Y: 1.7}},
		{ID: "hall-center", Area: nav.CentralHall, Position: nav.Vec3{Y: 1.7, Z: 4}, LookAt: nav.Vec3{Y: 1.7, Z: -10}},
		{ID: "forge-entrance", Area: nav.Forge, Position: nav.Vec3{X: 20, Y: 1.7}, LookAt: nav.Vec3{X: 30, Y: 1.7}},
	}}
}

func newController(t *testing.T, duration time.Duration) (*Controller, *state.Store, *Rig) {
	t.Helper()
	store := state.New(nav.CentralHall)
	rig := NewRig()
	c, err := NewController(rig, store, testGraph(), duration, zerolog.Nop())
	require.NoError(t, err)
	return c, store, rig
}

func TestNewControllerRejectsNonPositiveDuration(t *testing.T) {
	store := state.New(nav.CentralHall)
	_, err := NewController(NewRig(), store, testGraph(), 0, zerolog.Nop())
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestMountPlacesStartViewpoint(t *testing.T) {
	c, store, rig := newController(t, time.Second)

	require.NoError(t, c.Mount(""))
	snap := store.Snapshot()
	assert.Equal(t, "hall-entrance", snap.CurrentViewpoint)
	assert.Equal(t, nav.CentralHall, snap.CurrentArea)
	assert.True(t, snap.Visited(nav.CentralHall))
	assert.Equal(t, nav.Vec3{Y: 1.7, Z: 12}, rig.Position())
	assert.Equal(t, Idle, c.Phase())
}

func TestMountHonoursPreferredAndRunsOnce(t *testing.T) {
	c, store, _ := newController(t, time.Second)

	require.NoError(t, c.Mount("forge-entrance"))
	snap := store.Snapshot()
	assert.Equal(t, "forge-entrance", snap.CurrentViewpoint)
	assert.Equal(t, nav.Forge, snap.CurrentArea)
	assert.True(t, snap.Visited(nav.Forge))

	require.NoError(t, c.Mount("hall-center"))
	assert.Equal(t, "forge-entrance", store.Snapshot().CurrentViewpoint)
}

func TestMountEmptyGraph(t *testing.T) {
	store := state.New(nav.CentralHall)
	c, err := NewController(NewRig(), store, fakeGraph{}, time.Second, zerolog.Nop())
	require.NoError(t, err)
	assert.ErrorIs(t, c.Mount(""), ErrUnknownViewpoint)
}

func TestTransitionCompletesOnExactBoundary(t *testing.T) {
	c, store, rig := newController(t, time.Second)
	require.NoError(t, c.Mount("hall-entrance"))
	require.True(t, store.NavigateTo("forge-entrance"))

	for i := 0; i < 10; i++ {
		require.NoError(t, c.Update(0.1))
	}

	snap := store.Snapshot()
	assert.False(t, snap.IsTransitioning)
	assert.Equal(t, "forge-entrance", snap.CurrentViewpoint)
	assert.Equal(t, nav.Forge, snap.CurrentArea)
	assert.True(t, snap.Visited(nav.Forge))
	assert.Equal(t, nav.Vec3{X: 20, Y: 1.7}, rig.Position())
	assert.Equal(t, nav.Vec3{X: 30, Y: 1.7}, rig.LookAt())
	assert.Equal(t, Idle, c.Phase())
}

func TestAreaUpdatesOnlyAtCompletion(t *testing.T) {
	c, store, _ := newController(t, time.Second)
	require.NoError(t, c.Mount(""))
	store.NavigateTo("forge-entrance")

	require.NoError(t, c.Update(0.5))
	snap := store.Snapshot()
	assert.True(t, snap.IsTransitioning)
	assert.Equal(t, nav.CentralHall, snap.CurrentArea)
	assert.False(t, snap.Visited(nav.Forge))
	assert.Equal(t, Transitioning, c.Phase())
}

func TestMidpointIsEased(t *testing.T) {
	c, store, rig := newController(t, time.Second)
	require.NoError(t, c.Mount("hall-entrance"))
	store.NavigateTo("hall-center")

	require.NoError(t, c.Update(0.25))
	// eased(0.25) = 4 * 0.25^3 = 0.0625 of the way from z=12 to z=4.
	assert.InDelta(t, 12-8*0.0625, rig.Position().Z, 1e-9)
	assert.InDelta(t, 0.25, c.Progress(), 1e-12)
}

func TestStartLookAtProjectsAhead(t *testing.T) {
	c, store, rig := newController(t, time.Second)
	require.NoError(t, c.Mount("hall-entrance"))
	store.NavigateTo("hall-center")

	require.NoError(t, c.Update(0))
	// Zero progress leaves the camera at the start pose: 10 units ahead along -Z.
	assert.InDelta(t, 12.0, rig.Position().Z, 1e-9)
	assert.InDelta(t, 2.0, rig.LookAt().Z, 1e-9)
}

func TestHugeDeltaClampsAndCompletes(t *testing.T) {
	c, store, rig := newController(t, time.Second)
	require.NoError(t, c.Mount(""))
	store.NavigateTo("hall-center")

	require.NoError(t, c.Update(3600))
	assert.False(t, store.Snapshot().IsTransitioning)
	assert.Equal(t, nav.Vec3{Y: 1.7, Z: 4}, rig.Position())
}

func TestNegativeDeltaMakesNoProgress(t *testing.T) {
	c, store, _ := newController(t, time.Second)
	require.NoError(t, c.Mount(""))
	store.NavigateTo("hall-center")

	require.NoError(t, c.Update(-5))
	assert.Equal(t, 0.0, c.Progress())
	assert.True(t, store.Snapshot().IsTransitioning)
}

func TestUnknownTargetStaysIdle(t *testing.T) {
	c, store, rig := newController(t, time.Second)
	require.NoError(t, c.Mount(""))
	before := rig.Position()
	require.True(t, store.NavigateTo("nowhere"))

	err := c.Update(0.1)
	assert.ErrorIs(t, err, ErrUnknownViewpoint)
	assert.Equal(t, Idle, c.Phase())
	snap := store.Snapshot()
	assert.False(t, snap.IsTransitioning)
	assert.Equal(t, "hall-entrance", snap.CurrentViewpoint)
	assert.Equal(t, before, rig.Position())
}

func TestExternalRepositionAbortsAnimation(t *testing.T) {
	c, store, _ := newController(t, time.Second)
	require.NoError(t, c.Mount(""))
	store.NavigateTo("forge-entrance")
	require.NoError(t, c.Update(0.2))

	store.SetCurrentViewpoint("hall-center")
	require.NoError(t, c.Update(0.2))
	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, "hall-center", store.Snapshot().CurrentViewpoint)
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.0625},
		{0.5, 0.5},
		{0.75, 0.9375},
		{1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, EaseInOutCubic(tt.in), 1e-12, "t=%v", tt.in)
	}
}

func TestRigDirection(t *testing.T) {
	r := NewRig()
	assert.Equal(t, nav.Vec3{Z: -1}, r.Direction())

	r.SetPose(nav.Vec3{X: 1}, nav.Vec3{X: 1})
	assert.Equal(t, nav.Vec3{Z: -1}, r.Direction())

	r.SetPose(nav.Vec3{}, nav.Vec3{X: 3})
	assert.InDelta(t, 1.0, r.Direction().X, 1e-12)
}

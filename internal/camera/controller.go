package camera

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"portfolioquest/internal/nav"
	"portfolioquest/internal/state"
)

// DefaultDuration is how long a transition takes unless configured.
const DefaultDuration = 1200 * time.Millisecond

// lookAhead is how far in front of the camera the start look-at point sits.
const lookAhead = 10.0

// completeEpsilon absorbs float drift when frame deltas add up to the duration.
const completeEpsilon = 1e-9

var (
	// ErrUnknownViewpoint is returned when a transition targets a viewpoint
	// the graph does not contain.
	ErrUnknownViewpoint = errors.New("unknown viewpoint")
	ErrInvalidDuration  = errors.New("transition duration must be positive")
)

// Graph is the part of the navigation graph the controller reads.
type Graph interface {
	Viewpoint(id string) (*nav.Viewpoint, bool)
	StartAt(preferred string) *nav.Viewpoint
}

// Phase is the controller's state.
type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

type animation struct {
	target    *nav.Viewpoint
	startPos  nav.Vec3
	startLook nav.Vec3
	progress  float64
}

// Controller is the only writer of the camera transform. It watches the store
// for transition requests and advances them once per frame.
type Controller struct {
	cam      Camera
	store    *state.Store
	graph    Graph
	duration float64
	log      zerolog.Logger

	phase Phase
	anim  animation
}

// NewController wires a controller. duration must be positive.
func NewController(cam Camera, store *state.Store, graph Graph, duration time.Duration, log zerolog.Logger) (*Controller, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, duration)
	}
	return &Controller{
		cam:      cam,
		store:    store,
		graph:    graph,
		duration: duration.Seconds(),
		log:      log,
	}, nil
}

func (c *Controller) Phase() Phase { return c.phase }

// Progress is the raw, uneased fraction of the current transition.
func (c *Controller) Progress() float64 { return c.anim.progress }

// Mount places the camera when the store has no current viewpoint yet. It
// uses preferred when the graph has it, else the graph's start viewpoint, and
// marks that viewpoint current and its area current and visited. Mounting a
// store that already has a viewpoint does nothing.
func (c *Controller) Mount(preferred string) error {
	if c.store.Snapshot().CurrentViewpoint != "" {
		return nil
	}
	vp := c.graph.StartAt(preferred)
	if vp == nil {
		return fmt.Errorf("%w: no start viewpoint", ErrUnknownViewpoint)
	}
	c.cam.SetPose(vp.Position, vp.LookAt)
	c.store.SetCurrentViewpoint(vp.ID)
	c.store.SetCurrentArea(vp.Area)
	c.store.MarkAreaVisited(vp.Area)
	c.log.Debug().Str("viewpoint", vp.ID).Str("area", string(vp.Area)).Msg("camera mounted")
	return nil
}

// Update advances the controller by delta seconds. A pending request is
// picked up first and then advanced in the same frame. A request for a
// viewpoint the graph lacks is cancelled and reported as ErrUnknownViewpoint;
// the controller stays idle.
func (c *Controller) Update(delta float64) error {
	snap := c.store.Snapshot()

	if c.phase == Idle {
		if !snap.IsTransitioning {
			return nil
		}
		target, ok := c.graph.Viewpoint(snap.TargetViewpoint)
		if !ok {
			c.log.Error().Str("target", snap.TargetViewpoint).Msg("transition cancelled: unknown viewpoint")
			c.store.SetCurrentViewpoint(snap.CurrentViewpoint)
			return fmt.Errorf("%w: %s", ErrUnknownViewpoint, snap.TargetViewpoint)
		}
		c.begin(target)
	} else if !snap.IsTransitioning || snap.TargetViewpoint != c.anim.target.ID {
		// The store was repositioned underneath us.
		c.phase = Idle
		c.anim = animation{}
		return nil
	}

	if delta < 0 || math.IsNaN(delta) {
		delta = 0
	}
	c.anim.progress += delta / c.duration
	if c.anim.progress >= 1-completeEpsilon {
		c.finish()
		return nil
	}

	t := EaseInOutCubic(clamp01(c.anim.progress))
	c.cam.SetPose(
		nav.Lerp(c.anim.startPos, c.anim.target.Position, t),
		nav.Lerp(c.anim.startLook, c.anim.target.LookAt, t),
	)
	return nil
}

func (c *Controller) begin(target *nav.Viewpoint) {
	pos := c.cam.Position()
	c.anim = animation{
		target:    target,
		startPos:  pos,
		startLook: pos.Add(c.cam.Direction().Scale(lookAhead)),
	}
	c.phase = Transitioning
	c.log.Debug().Str("target", target.ID).Msg("transition started")
}

func (c *Controller) finish() {
	target := c.anim.target
	c.cam.SetPose(target.Position, target.LookAt)
	c.store.SetCurrentArea(target.Area)
	c.store.MarkAreaVisited(target.Area)
	c.store.CompleteTransition()
	c.phase = Idle
	c.anim = animation{}
	c.log.Debug().Str("viewpoint", target.ID).Msg("transition complete")
}

// EaseInOutCubic maps t in [0,1] onto the cubic ease-in-out curve.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t) || t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

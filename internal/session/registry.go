package session

import (
	"time"

	"github.com/google/uuid"

	"portfolioquest/pkg/realtime"
)

// Registry holds sessions and delegates to realtime.RoomStore for keyed
// storage, change broadcast and frame loops.
type Registry struct {
	r    *realtime.RoomStore[*Session]
	opts Options
}

// NewRegistry creates a registry whose sessions share opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{r: realtime.NewRoomStore[*Session](), opts: opts}
}

// Create starts and mounts a session under a fresh id. Mount failures are
// recorded on the session, which is still returned.
func (r *Registry) Create() (*Session, error) {
	id := uuid.NewString()
	hub := realtime.NewBroadcaster()
	sess, err := New(id, hub, r.opts)
	if err != nil {
		return nil, err
	}
	r.r.CreateWith(id, hub, sess)
	_ = sess.Mount()
	return sess, nil
}

// Get returns a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	room, ok := r.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Hub returns the broadcaster a session's store publishes on.
func (r *Registry) Hub(id string) (*realtime.Broadcaster, bool) {
	room, ok := r.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.Hub, true
}

// Delete stops a session's frame loop and closes its subscribers.
func (r *Registry) Delete(id string) {
	r.r.Delete(id)
}

func (r *Registry) Len() int {
	return r.r.Len()
}

// EnsureFrameLoop runs frames for the session until it has nothing left to
// animate. If a loop is already running it is woken instead.
func (r *Registry) EnsureFrameLoop(id string) {
	tick := func(sess *Session, now time.Time) (time.Time, []string, bool) {
		topics := sess.Tick(now)
		if !sess.NeedsFrames() {
			return time.Time{}, topics, true
		}
		return sess.NextFrame(now), topics, false
	}
	r.r.RunLoop(id, tick)
}

// FrameLoopRunning reports whether the session is currently animating.
func (r *Registry) FrameLoopRunning(id string) bool {
	return r.r.Running(id)
}

package realtime

import (
	"context"
	"sync"
	"time"
)

// Room pairs keyed state with the broadcaster its observers listen on.
type Room[T any] struct {
	ID    string
	State T
	Hub   *Broadcaster
}

// RoomStore keeps rooms by id and runs at most one timing loop per room.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]*loop
}

type loop struct {
	cancel context.CancelFunc
	wake   chan struct{}
}

// NewRoomStore creates an empty store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]*loop),
	}
}

// Create registers state under id with a fresh broadcaster, replacing any
// previous room with that id.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	return s.CreateWith(id, NewBroadcaster(), state)
}

// CreateWith registers state under id using hub, so the state can be wired to
// the same broadcaster before it is stored.
func (s *RoomStore[T]) CreateWith(id string, hub *Broadcaster, state T) *Room[T] {
	r := &Room[T]{ID: id, State: state, Hub: hub}
	s.mu.Lock()
	s.rooms[id] = r
	s.mu.Unlock()
	return r
}

// Get returns the room for id.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Len reports how many rooms are stored.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Delete stops the room's loop, closes its broadcaster and forgets it.
func (s *RoomStore[T]) Delete(id string) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	l := s.loops[id]
	s.mu.Unlock()
	if l != nil {
		l.cancel()
	}
	if ok && r.Hub != nil {
		r.Hub.Close()
	}
}

// Publish sends topics to the room's subscribers. Unknown rooms are ignored.
func (s *RoomStore[T]) Publish(id string, topics ...string) {
	r, ok := s.Get(id)
	if !ok || r.Hub == nil {
		return
	}
	r.Hub.Publish(topics...)
}

// TickFunc advances state at now. It returns when it wants to run next, the
// topics to publish, and stop=true to end the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, topics []string, stop bool)

// RunLoop starts a timing loop for the room. If one is already running it is
// woken instead. It reports whether a new loop was started.
func (s *RoomStore[T]) RunLoop(id string, tick TickFunc[T]) bool {
	s.mu.Lock()
	if l, running := s.loops[id]; running {
		l.signal()
		s.mu.Unlock()
		return false
	}
	r, ok := s.rooms[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &loop{cancel: cancel, wake: make(chan struct{}, 1)}
	s.loops[id] = l
	s.mu.Unlock()

	go func() {
		defer cancel()
		for {
			next, topics, stop := tick(r.State, time.Now().UTC())
			if len(topics) > 0 && r.Hub != nil {
				r.Hub.Publish(topics...)
			}
			if stop {
				if s.finish(ctx, id, l) {
					return
				}
				continue
			}
			timer := time.NewTimer(max(time.Until(next), 0))
			select {
			case <-ctx.Done():
				timer.Stop()
				s.unregister(id, l)
				return
			case <-timer.C:
			case <-l.wake:
				timer.Stop()
			}
		}
	}()
	return true
}

// finish unregisters l unless a wake arrived after its last tick and the
// loop was not cancelled, in which case the loop must run again and finish
// reports false. Wakes are only sent
// under s.mu, so none can be lost between the check and the delete.
func (s *RoomStore[T]) finish(ctx context.Context, id string, l *loop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-l.wake:
		if ctx.Err() == nil && s.loops[id] == l {
			return false
		}
	default:
	}
	s.unregisterLocked(id, l)
	return true
}

func (s *RoomStore[T]) unregister(id string, l *loop) {
	s.mu.Lock()
	s.unregisterLocked(id, l)
	s.mu.Unlock()
}

func (s *RoomStore[T]) unregisterLocked(id string, l *loop) {
	if s.loops[id] == l {
		delete(s.loops, id)
	}
}

// Running reports whether a loop is active for id.
func (s *RoomStore[T]) Running(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}

// Wake makes the room's loop tick immediately instead of waiting for its timer.
func (s *RoomStore[T]) Wake(id string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.loops[id]; ok {
		l.signal()
	}
}

func (l *loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Package controls turns key presses into a movement intent vector that the
// movement integrator reads once per frame.
package controls

import "portfolioquest/internal/input"

// Intent is the movement vector sampled each frame.
type Intent struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
}

// Any reports whether any direction is held.
func (i Intent) Any() bool {
	return i.Forward || i.Backward || i.Left || i.Right
}

type direction int

const (
	forward direction = iota
	backward
	left
	right
)

var mapping = map[input.Key]direction{
	input.KeyW:       forward,
	input.ArrowUp:    forward,
	input.KeyS:       backward,
	input.ArrowDown:  backward,
	input.KeyA:       left,
	input.ArrowLeft:  left,
	input.KeyD:       right,
	input.ArrowRight: right,
}

// Sampler holds the current intent. It is not safe for concurrent use; the
// session serialises access.
type Sampler struct {
	intent Intent
}

// NewSampler returns a sampler with nothing held.
func NewSampler() *Sampler {
	return &Sampler{}
}

// KeyDown sets the direction bound to k. It reports whether k is a movement key.
func (s *Sampler) KeyDown(k input.Key) bool {
	return s.set(k, true)
}

// KeyUp clears the direction bound to k. It reports whether k is a movement key.
func (s *Sampler) KeyUp(k input.Key) bool {
	return s.set(k, false)
}

func (s *Sampler) set(k input.Key, held bool) bool {
	d, ok := mapping[k]
	if !ok {
		return false
	}
	switch d {
	case forward:
		s.intent.Forward = held
	case backward:
		s.intent.Backward = held
	case left:
		s.intent.Left = held
	case right:
		s.intent.Right = held
	}
	return true
}

// State returns the intent as of now.
func (s *Sampler) State() Intent {
	return s.intent
}

// Reset releases every direction.
func (s *Sampler) Reset() {
	s.intent = Intent{}
}

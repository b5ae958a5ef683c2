// Package camera owns the camera transform and animates it between viewpoints.
package camera

import "portfolioquest/internal/nav"

// Camera is the transform the controller drives. Renderers implement it over
// their own camera object; Rig is the in-memory version hosts use.
type Camera interface {
	Position() nav.Vec3
	// Direction is the unit vector the camera faces.
	Direction() nav.Vec3
	SetPose(position, lookAt nav.Vec3)
}

// Rig is a camera that only remembers its pose.
type Rig struct {
	position nav.Vec3
	lookAt   nav.Vec3
}

// NewRig returns a rig at the origin facing -Z.
func NewRig() *Rig {
	return &Rig{lookAt: nav.Vec3{Z: -1}}
}

func (r *Rig) Position() nav.Vec3 { return r.position }

func (r *Rig) LookAt() nav.Vec3 { return r.lookAt }

// Direction returns the normalised look vector, or -Z when position and
// look-at coincide.
func (r *Rig) Direction() nav.Vec3 {
	d := r.lookAt.Sub(r.position)
	if d.Len() == 0 {
		return nav.Vec3{Z: -1}
	}
	return d.Normalize()
}

func (r *Rig) SetPose(position, lookAt nav.Vec3) {
	r.position = position
	r.lookAt = lookAt
}

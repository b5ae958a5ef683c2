// Package nav holds the navigation graph: viewpoints connected by hotspots,
// with info points anchoring CV content. A Graph is built once and never
// mutated afterwards; callers share its *Viewpoint values and must not modify them.
package nav

// Icon is the presentational hint for a hotspot.
type Icon string

const (
	IconDoor   Icon = "door"
	IconArrow  Icon = "arrow"
	IconStairs Icon = "stairs"
)

func (i Icon) valid() bool {
	switch i {
	case IconDoor, IconArrow, IconStairs:
		return true
	}
	return false
}

// Hotspot is a directed edge to another viewpoint.
type Hotspot struct {
	ID              string
	TargetViewpoint string
	Position        Vec3
	Label           string
	Icon            Icon
}

// InfoPoint anchors a piece of CV content in the world. ContentID is an opaque
// key into the content document.
type InfoPoint struct {
	ID        string
	ContentID string
	Position  Vec3
	Label     string
}

// Viewpoint is a named camera pose within an area.
type Viewpoint struct {
	ID         string
	Area       AreaID
	Position   Vec3
	LookAt     Vec3
	Hotspots   []Hotspot
	InfoPoints []InfoPoint
}

// Hotspot returns the hotspot with id on this viewpoint.
func (v *Viewpoint) Hotspot(id string) (Hotspot, bool) {
	for _, h := range v.Hotspots {
		if h.ID == id {
			return h, true
		}
	}
	return Hotspot{}, false
}

// InfoPointByContent returns the first info point that anchors contentID.
func (v *Viewpoint) InfoPointByContent(contentID string) (InfoPoint, bool) {
	for _, p := range v.InfoPoints {
		if p.ContentID == contentID {
			return p, true
		}
	}
	return InfoPoint{}, false
}

package nav

// AreaID tags a room. The set is closed: documents naming any other area fail to load.
type AreaID string

const (
	CentralHall AreaID = "central-hall"
	Library     AreaID = "library"
	Forge       AreaID = "forge"
	Pipelines   AreaID = "pipelines"
	Treasury    AreaID = "treasury"
	Observatory AreaID = "observatory"
	Watchtower  AreaID = "watchtower"
)

// Area describes how a room is labelled and where quick travel lands in it.
type Area struct {
	ID               AreaID
	Name             string // HUD heading
	ShortName        string // breadcrumb
	DefaultViewpoint string // empty when the area is not a quick-travel destination
}

var areas = []Area{
	{CentralHall, "Central Hall", "Central Hall", "hall-center"},
	{Library, "The Library", "Library", "library-entrance"},
	{Forge, "The Forge", "Forge", "forge-entrance"},
	{Pipelines, "The Pipelines", "Pipelines", "pipelines-entrance"},
	{Treasury, "The Treasury", "Treasury", "treasury-entrance"},
	{Observatory, "The Observatory", "Observatory", "observatory-entrance"},
	{Watchtower, "The Watchtower", "Watchtower", ""},
}

// Areas returns the catalogue in display order.
func Areas() []Area {
	out := make([]Area, len(areas))
	copy(out, areas)
	return out
}

// LookupArea returns the catalogue entry for id.
func LookupArea(id AreaID) (Area, bool) {
	for _, a := range areas {
		if a.ID == id {
			return a, true
		}
	}
	return Area{}, false
}

// Valid reports whether id belongs to the closed area set.
func (id AreaID) Valid() bool {
	_, ok := LookupArea(id)
	return ok
}

// Name returns the HUD name of the area, or the raw id for unknown areas.
func (id AreaID) Name() string {
	if a, ok := LookupArea(id); ok {
		return a.Name
	}
	return string(id)
}

var viewpointLabels = map[string]string{
	"hall-entrance":    "Entrance",
	"hall-center":      "Center",
	"hall-north":       "North",
	"hall-west":        "West Wing",
	"hall-east":        "East Wing",
	"library-entrance": "Entrance",
	"library-center":   "Reading Area",
	"library-shelves":  "Shelves",
}

// Breadcrumb renders "<area> / <viewpoint label>", or just the area when the
// viewpoint has no label.
func Breadcrumb(area AreaID, viewpointID string) string {
	name := string(area)
	if a, ok := LookupArea(area); ok {
		name = a.ShortName
	}
	if label, ok := viewpointLabels[viewpointID]; ok {
		return name + " / " + label
	}
	return name
}

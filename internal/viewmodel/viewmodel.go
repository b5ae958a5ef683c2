package viewmodel

// Page holds data for the full navigation page.
type Page struct {
	Title       string
	SessionID   string
	HUD         HUD
	Overlay     Overlay
	Anchors     Anchors
	QuickTravel QuickTravel
	Panel       Panel
	Telescope   TelescopeBar
}

// HUD holds the area heading, breadcrumb and status line.
type HUD struct {
	AreaName   string
	Breadcrumb string
	Movement   string
	Paused     bool
	Loading    bool
	LoadError  string
}

// Overlay is the full-screen indicator shown while loading, failed or traveling.
type Overlay struct {
	Visible bool
	Text    string
	Failed  bool
}

// HotspotAnchor is a clickable navigation anchor.
type HotspotAnchor struct {
	ID       string
	Label    string
	Icon     string
	Hovered  bool
	Disabled bool
}

// InfoAnchor is a clickable content anchor.
type InfoAnchor struct {
	ID        string
	ContentID string
	Label     string
	Active    bool
	Trigger   bool
}

// ToolAnchor is a telescope tool that can be focused directly.
type ToolAnchor struct {
	ID      string
	Name    string
	Focused bool
}

// Anchors holds every world anchor of the current viewpoint.
type Anchors struct {
	ViewpointID string
	Hotspots    []HotspotAnchor
	InfoPoints  []InfoAnchor
	Tools       []ToolAnchor
}

// QuickTravelEntry is one area row in the quick-travel list.
type QuickTravelEntry struct {
	Area       string
	Name       string
	Visited    bool
	Current    bool
	Selectable bool
}

// QuickTravel holds data for the quick-travel selector.
type QuickTravel struct {
	Open    bool
	Entries []QuickTravelEntry
}

// Panel holds the open info panel.
type Panel struct {
	Open      bool
	ContentID string
	Kind      string
	Title     string
	Available bool
	Lines     []string
}

// TelescopeBar holds the status bar shown in telescope mode.
type TelescopeBar struct {
	Active bool
	ToolID string
	Text   string
}

// Package components renders the navigation view models as HTML fragments.
// Every fragment carries a stable id so the page can swap it when the server
// streams a replacement.
package components

//go:generate templ generate

// Fragment ids, also used as SSE event names. They match the id attributes
// in the templates.
const (
	HUDID         = "hud"
	OverlayID     = "overlay"
	AnchorsID     = "anchors"
	QuickTravelID = "quicktravel"
	PanelID       = "panel"
	TelescopeID   = "telescope"
)

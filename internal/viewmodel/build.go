package viewmodel

import (
	"fmt"
	"strings"

	"portfolioquest/internal/content"
	"portfolioquest/internal/nav"
	"portfolioquest/internal/session"
)

const (
	TravelingText         = "Traveling..."
	LoadingText           = "Loading..."
	FailedText            = "Failed to load the world"
	UnavailableText       = "Content unavailable"
	TelescopeFallbackText = "Telescope Mode · Use arrow keys to navigate"
)

// Build maps a session snapshot onto the page view model.
func Build(snap session.Snapshot) Page {
	return Page{
		Title:       "Portfolio Quest",
		SessionID:   snap.ID,
		HUD:         BuildHUD(snap),
		Overlay:     BuildOverlay(snap),
		Anchors:     BuildAnchors(snap),
		QuickTravel: BuildQuickTravel(snap),
		Panel:       BuildPanel(snap),
		Telescope:   BuildTelescope(snap),
	}
}

func BuildHUD(snap session.Snapshot) HUD {
	st := snap.State
	return HUD{
		AreaName:   st.CurrentArea.Name(),
		Breadcrumb: nav.Breadcrumb(st.CurrentArea, st.CurrentViewpoint),
		Movement:   movement(snap),
		Paused:     st.IsPaused,
		Loading:    st.IsLoading,
		LoadError:  snap.LoadError,
	}
}

func movement(snap session.Snapshot) string {
	var held []string
	in := snap.Intent
	for _, d := range []struct {
		on   bool
		name string
	}{
		{in.Forward, "forward"},
		{in.Backward, "backward"},
		{in.Left, "left"},
		{in.Right, "right"},
	} {
		if d.on {
			held = append(held, d.name)
		}
	}
	if len(held) == 0 {
		return "still"
	}
	return strings.Join(held, "+")
}

// BuildOverlay prefers the load failure over loading over traveling.
func BuildOverlay(snap session.Snapshot) Overlay {
	switch {
	case snap.LoadError != "":
		return Overlay{Visible: true, Text: FailedText, Failed: true}
	case snap.State.IsLoading:
		return Overlay{Visible: true, Text: LoadingText}
	case snap.State.IsTransitioning:
		return Overlay{Visible: true, Text: TravelingText}
	}
	return Overlay{}
}

func BuildAnchors(snap session.Snapshot) Anchors {
	vp := snap.Viewpoint
	if vp == nil {
		return Anchors{}
	}
	st := snap.State
	a := Anchors{ViewpointID: vp.ID}
	for _, h := range vp.Hotspots {
		a.Hotspots = append(a.Hotspots, HotspotAnchor{
			ID:       h.ID,
			Label:    h.Label,
			Icon:     string(h.Icon),
			Hovered:  st.HoveredHotspot == h.ID,
			Disabled: st.IsTransitioning,
		})
	}
	for _, p := range vp.InfoPoints {
		a.InfoPoints = append(a.InfoPoints, InfoAnchor{
			ID:        p.ID,
			ContentID: p.ContentID,
			Label:     p.Label,
			Active:    st.ActiveInfoPoint == p.ContentID || (p.ContentID == snap.Trigger && st.TelescopeMode),
			Trigger:   p.ContentID == snap.Trigger,
		})
	}
	if st.TelescopeMode {
		for _, t := range snap.Tools {
			a.Tools = append(a.Tools, ToolAnchor{ID: t.ID, Name: t.Name, Focused: st.FocusedTool == t.ID})
		}
	}
	return a
}

func BuildQuickTravel(snap session.Snapshot) QuickTravel {
	q := QuickTravel{Open: snap.State.QuickTravelOpen}
	for _, e := range snap.QuickTravel {
		q.Entries = append(q.Entries, QuickTravelEntry{
			Area:       string(e.Area.ID),
			Name:       e.Area.Name,
			Visited:    e.Visited,
			Current:    e.Current,
			Selectable: e.Selectable,
		})
	}
	return q
}

func BuildTelescope(snap session.Snapshot) TelescopeBar {
	if snap.Focus == nil {
		return TelescopeBar{}
	}
	bar := TelescopeBar{Active: true, ToolID: snap.Focus.ToolID, Text: TelescopeFallbackText}
	if snap.Focus.Found {
		t := snap.Focus.Tool
		bar.Text = fmt.Sprintf("%s · %s · %s", t.Name, t.Context, t.Verb)
	}
	return bar
}

func BuildPanel(snap session.Snapshot) Panel {
	p := snap.Panel
	if p == nil {
		return Panel{}
	}
	if !p.Found {
		return Panel{Open: true, ContentID: p.ContentID, Title: p.ContentID, Lines: []string{UnavailableText}}
	}
	return Panel{
		Open:      true,
		ContentID: p.ContentID,
		Kind:      p.Item.Kind.String(),
		Title:     p.Item.Title(),
		Available: true,
		Lines:     panelLines(p.Item),
	}
}

func panelLines(item content.Item) []string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	switch item.Kind {
	case content.KindArea:
		a := item.Area
		add("%s", a.Description)
		for _, s := range a.Items {
			add("• %s (%s)", s.Title, s.Level)
		}
	case content.KindSkill:
		s := item.Skill
		add("%s", s.Description)
		add("Level: %s", s.Level)
		if s.Years > 0 {
			add("Years: %d", s.Years)
		}
		if len(s.Projects) > 0 {
			add("Projects: %s", strings.Join(s.Projects, ", "))
		}
	case content.KindProject:
		pr := item.Project
		add("%s", pr.Description)
		add("Technologies: %s", strings.Join(pr.Technologies, ", "))
		for _, h := range pr.Highlights {
			add("• %s", h)
		}
		if pr.Link != "" {
			add("%s", pr.Link)
		}
	case content.KindBeacon:
		b := item.Beacon
		add("Tools: %s", strings.Join(b.Tools, ", "))
		add("Rotations: %s", b.Experience.Rotations)
		add("Escalation: %s", b.Experience.Escalation)
		add("Response: %s", b.Experience.Response)
	case content.KindLedger:
		for _, inc := range item.Ledger.Incidents {
			add("• %s (%s): %s", inc.Summary, inc.Role, inc.Learnings)
		}
	case content.KindTool:
		t := item.Tool
		add("%s: %s", t.Verb, t.Context)
		add("Scope: %s", t.Scope)
	case content.KindProfile:
		pf := item.Profile
		add("%s", pf.Title)
		add("%s", pf.Summary)
		for _, c := range []string{pf.Contact.Email, pf.Contact.GitHub, pf.Contact.LinkedIn} {
			if c != "" {
				add("%s", c)
			}
		}
	}
	return lines
}

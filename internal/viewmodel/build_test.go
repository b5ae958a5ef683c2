package viewmodel

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolioquest/internal/content"
	"portfolioquest/internal/input"
	"portfolioquest/internal/nav"
	"portfolioquest/internal/session"
)

func newSession(t *testing.T, start string) *session.Session {
	t.Helper()
	g, err := nav.LoadDefault(zerolog.Nop())
	require.NoError(t, err)
	lib, err := content.Load("")
	require.NoError(t, err)
	s, err := session.New("vm", nil, session.Options{
		Graph:          g,
		Content:        lib,
		StartViewpoint: start,
		Duration:       time.Second,
		Log:            zerolog.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, s.Mount())
	return s
}

func TestHUDAndAnchors(t *testing.T) {
	s := newSession(t, "library-center")
	s.HoverHotspot("library-to-shelves")
	s.KeyDown(input.KeyW)
	s.KeyDown(input.KeyD)

	page := Build(s.Snapshot())
	assert.Equal(t, "The Library", page.HUD.AreaName)
	assert.Equal(t, "Library / Reading Area", page.HUD.Breadcrumb)
	assert.Equal(t, "forward+right", page.HUD.Movement)
	assert.False(t, page.Overlay.Visible)

	require.Len(t, page.Anchors.Hotspots, 2)
	assert.True(t, page.Anchors.Hotspots[0].Hovered)
	assert.False(t, page.Anchors.Hotspots[1].Hovered)
	require.Len(t, page.Anchors.InfoPoints, 2)
	assert.Equal(t, "go", page.Anchors.InfoPoints[0].ContentID)
	assert.Empty(t, page.Anchors.Tools)
}

func TestTravelingOverlayDisablesHotspots(t *testing.T) {
	s := newSession(t, "")
	require.True(t, s.ClickHotspot("to-hall-center"))

	page := Build(s.Snapshot())
	assert.Equal(t, Overlay{Visible: true, Text: TravelingText}, page.Overlay)
	for _, h := range page.Anchors.Hotspots {
		assert.True(t, h.Disabled)
	}
}

func TestPanelForSkill(t *testing.T) {
	s := newSession(t, "library-center")
	require.True(t, s.ClickInfoPoint("go"))

	p := Build(s.Snapshot()).Panel
	assert.True(t, p.Open)
	assert.True(t, p.Available)
	assert.Equal(t, "skill", p.Kind)
	assert.Equal(t, "Go", p.Title)
	assert.Contains(t, p.Lines, "Level: expert")
	assert.Contains(t, p.Lines, "Projects: deploy-platform")
}

func TestPanelUnavailable(t *testing.T) {
	snap := session.Snapshot{Panel: &session.Panel{ContentID: "cobol"}}
	p := BuildPanel(snap)

	assert.True(t, p.Open)
	assert.False(t, p.Available)
	assert.Equal(t, []string{UnavailableText}, p.Lines)
}

func TestTelescopeBar(t *testing.T) {
	s := newSession(t, "observatory-deck")
	require.True(t, s.ClickInfoPoint("telescope"))

	page := Build(s.Snapshot())
	assert.Equal(t, "Grafana · Dashboards for every tier-one service · Owned", page.Telescope.Text)
	require.Len(t, page.Anchors.Tools, 5)
	assert.True(t, page.Anchors.Tools[0].Focused)
	assert.Equal(t, "Sumo Logic", page.Anchors.Tools[4].Name)

	for _, a := range page.Anchors.InfoPoints {
		if a.Trigger {
			assert.True(t, a.Active)
		}
	}

	fallback := BuildTelescope(session.Snapshot{Focus: &session.Focus{ToolID: "splunk"}})
	assert.Equal(t, TelescopeFallbackText, fallback.Text)
}

func TestQuickTravelEntries(t *testing.T) {
	s := newSession(t, "")
	s.SetQuickTravelOpen(true)

	q := Build(s.Snapshot()).QuickTravel
	assert.True(t, q.Open)
	require.Len(t, q.Entries, 6)
	assert.True(t, q.Entries[0].Current)
	for _, e := range q.Entries[1:] {
		assert.False(t, e.Selectable, e.Area)
	}
}

func TestOverlayPrefersLoadFailure(t *testing.T) {
	o := BuildOverlay(session.Snapshot{LoadError: errors.New("boom").Error()})
	assert.True(t, o.Failed)
	assert.Equal(t, FailedText, o.Text)
}

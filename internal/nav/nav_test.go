package nav

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRooms = `{
  "startViewpoint": "hall-entrance",
  "viewpoints": [
    {
      "id": "hall-entrance", "areaId": "central-hall",
      "position": {"x": 0, "y": 1.7, "z": 12}, "lookAt": {"x": 0, "y": 1.7, "z": 0},
      "hotspots": [
        {"id": "h1", "targetViewpoint": "library-entrance", "position": {"x": 0, "y": 0, "z": 6}, "label": "Library", "icon": "door"},
        {"id": "h2", "targetViewpoint": "nowhere", "position": {"x": 1, "y": 0, "z": 6}, "label": "Broken"}
      ],
      "infoPoints": [
        {"id": "i1", "contentId": "profile", "position": {"x": 2, "y": 1, "z": 10}, "label": "About"}
      ]
    },
    {
      "id": "library-entrance", "areaId": "library",
      "position": {"x": -20, "y": 1.7, "z": 0}, "lookAt": {"x": -30, "y": 1.7, "z": 0},
      "hotspots": [], "infoPoints": []
    }
  ]
}`

func decodeString(t *testing.T, doc string) (*Graph, error) {
	t.Helper()
	return Decode(strings.NewReader(doc), FormatJSON, zerolog.Nop())
}

func TestDecode_BuildsGraph(t *testing.T) {
	g, err := decodeString(t, twoRooms)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, "hall-entrance", g.Start().ID)

	vp, ok := g.Viewpoint("hall-entrance")
	require.True(t, ok)
	assert.Equal(t, CentralHall, vp.Area)
	assert.Equal(t, Vec3{0, 1.7, 12}, vp.Position)

	h, ok := vp.Hotspot("h1")
	require.True(t, ok)
	assert.Equal(t, IconDoor, h.Icon)
	assert.Equal(t, "library-entrance", h.TargetViewpoint)

	p, ok := vp.InfoPointByContent("profile")
	require.True(t, ok)
	assert.Equal(t, "i1", p.ID)

	_, ok = g.Viewpoint("nowhere")
	assert.False(t, ok)
}

func TestDecode_DropsDanglingHotspots(t *testing.T) {
	g, err := decodeString(t, twoRooms)
	require.NoError(t, err)

	vp, _ := g.Viewpoint("hall-entrance")
	require.Len(t, vp.Hotspots, 1)
	_, ok := vp.Hotspot("h2")
	assert.False(t, ok, "broken hotspot should be skipped")

	problems := g.Problems()
	require.Len(t, problems, 1)
	var dangling *DanglingReferenceError
	require.True(t, errors.As(problems[0], &dangling))
	assert.Equal(t, "h2", dangling.HotspotID)
	assert.Equal(t, "nowhere", dangling.Target)
}

func TestDecode_DefaultsIconToArrow(t *testing.T) {
	doc := `{"viewpoints": [{"id": "a", "areaId": "forge",
		"position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 1},
		"hotspots": [{"id": "loop", "targetViewpoint": "a", "position": {"x": 0, "y": 0, "z": 0}}]}]}`
	g, err := decodeString(t, doc)
	require.NoError(t, err)
	vp, _ := g.Viewpoint("a")
	assert.Equal(t, IconArrow, vp.Hotspots[0].Icon)
}

func TestDecode_StartFallsBackToFirstViewpoint(t *testing.T) {
	doc := `{"startViewpoint": "ghost", "viewpoints": [
		{"id": "first", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 1}},
		{"id": "second", "areaId": "forge", "position": {"x": 1, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 1}}]}`
	g, err := decodeString(t, doc)
	require.NoError(t, err)
	assert.Equal(t, "first", g.Start().ID)
	assert.Len(t, g.Problems(), 1)

	assert.Equal(t, "second", g.StartAt("second").ID)
	assert.Equal(t, "first", g.StartAt("unknown").ID)
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"empty input", ``},
		{"no viewpoints", `{"viewpoints": []}`},
		{"missing id", `{"viewpoints": [{"areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0}}]}`},
		{"unknown area", `{"viewpoints": [{"id": "a", "areaId": "basement", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0}}]}`},
		{"missing lookAt", `{"viewpoints": [{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}}]}`},
		{"partial vector", `{"viewpoints": [{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0}, "lookAt": {"x": 0, "y": 0, "z": 0}}]}`},
		{"duplicate viewpoint", `{"viewpoints": [
			{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0}},
			{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0}}]}`},
		{"bad icon", `{"viewpoints": [{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0},
			"hotspots": [{"id": "h", "targetViewpoint": "a", "position": {"x": 0, "y": 0, "z": 0}, "icon": "portal"}]}]}`},
		{"hotspot without target", `{"viewpoints": [{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0},
			"hotspots": [{"id": "h", "position": {"x": 0, "y": 0, "z": 0}}]}]}`},
		{"duplicate info point", `{"viewpoints": [{"id": "a", "areaId": "forge", "position": {"x": 0, "y": 0, "z": 0}, "lookAt": {"x": 0, "y": 0, "z": 0},
			"infoPoints": [{"id": "i", "contentId": "x", "position": {"x": 0, "y": 0, "z": 0}}, {"id": "i", "contentId": "y", "position": {"x": 0, "y": 0, "z": 0}}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := decodeString(t, tt.doc)
			assert.Nil(t, g)
			var loadErr *DataLoadError
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, "input", loadErr.Source)
		})
	}
}

func TestLoadFile_YAML(t *testing.T) {
	doc := `
startViewpoint: top
viewpoints:
  - id: top
    areaId: observatory
    position: {x: 0, y: 6, z: -20}
    lookAt: {x: 0, y: 6, z: -30}
    hotspots:
      - id: down
        targetViewpoint: bottom
        position: {x: 0, y: 5, z: -16}
        label: Down
        icon: stairs
  - id: bottom
    areaId: central-hall
    position: {x: 0, y: 1.7, z: 0}
    lookAt: {x: 0, y: 1.7, z: -10}
`
	path := filepath.Join(t.TempDir(), "viewpoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	g, err := LoadFile(path, zerolog.Nop())
	require.NoError(t, err)
	top, ok := g.Viewpoint("top")
	require.True(t, ok)
	assert.Equal(t, IconStairs, top.Hotspots[0].Icon)
	assert.Equal(t, Observatory, top.Area)
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.json")
	_, err := LoadFile(path, zerolog.Nop())
	var loadErr *DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Source)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDefault_IsConsistent(t *testing.T) {
	g, err := Load("", zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, g.Problems())
	assert.Equal(t, "hall-entrance", g.Start().ID)
	for _, a := range Areas() {
		if a.DefaultViewpoint == "" {
			continue
		}
		assert.True(t, g.HasViewpoint(a.DefaultViewpoint), "quick travel target %s", a.DefaultViewpoint)
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("a.YML"))
	assert.Equal(t, FormatJSON, FormatFor("a.json"))
	assert.Equal(t, FormatJSON, FormatFor("a"))
}

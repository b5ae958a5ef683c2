package nav

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed data/viewpoints.json
var defaultFS embed.FS

// Format selects the document decoder.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks a format from a file extension; anything that is not .yaml
// or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// document is the on-disk shape of the navigation data. Pointer fields let the
// loader tell a missing field from a zero value.
type document struct {
	StartViewpoint string         `json:"startViewpoint" yaml:"startViewpoint"`
	Viewpoints     []docViewpoint `json:"viewpoints" yaml:"viewpoints"`
}

type docVec struct {
	X *float64 `json:"x" yaml:"x"`
	Y *float64 `json:"y" yaml:"y"`
	Z *float64 `json:"z" yaml:"z"`
}

type docHotspot struct {
	ID              string  `json:"id" yaml:"id"`
	TargetViewpoint string  `json:"targetViewpoint" yaml:"targetViewpoint"`
	Position        *docVec `json:"position" yaml:"position"`
	Label           string  `json:"label" yaml:"label"`
	Icon            string  `json:"icon" yaml:"icon"`
}

type docInfoPoint struct {
	ID        string  `json:"id" yaml:"id"`
	ContentID string  `json:"contentId" yaml:"contentId"`
	Position  *docVec `json:"position" yaml:"position"`
	Label     string  `json:"label" yaml:"label"`
}

type docViewpoint struct {
	ID         string         `json:"id" yaml:"id"`
	AreaID     string         `json:"areaId" yaml:"areaId"`
	Position   *docVec        `json:"position" yaml:"position"`
	LookAt     *docVec        `json:"lookAt" yaml:"lookAt"`
	Hotspots   []docHotspot   `json:"hotspots" yaml:"hotspots"`
	InfoPoints []docInfoPoint `json:"infoPoints" yaml:"infoPoints"`
}

// Decode parses a navigation document from r and builds its graph.
func Decode(r io.Reader, format Format, log zerolog.Logger) (*Graph, error) {
	return decode("input", r, format, log)
}

// LoadFile reads the navigation document at path. The extension picks the format.
func LoadFile(path string, log zerolog.Logger) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer f.Close()
	return decode(path, f, FormatFor(path), log)
}

// LoadDefault builds the graph from the document compiled into the binary.
func LoadDefault(log zerolog.Logger) (*Graph, error) {
	f, err := defaultFS.Open("data/viewpoints.json")
	if err != nil {
		return nil, &DataLoadError{Source: "embedded", Err: err}
	}
	defer f.Close()
	return decode("embedded", f, FormatJSON, log)
}

// Load reads path when it is set and the embedded document otherwise.
func Load(path string, log zerolog.Logger) (*Graph, error) {
	if path == "" {
		return LoadDefault(log)
	}
	return LoadFile(path, log)
}

func decode(source string, r io.Reader, format Format, log zerolog.Logger) (*Graph, error) {
	var doc document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		err = json.NewDecoder(r).Decode(&doc)
	}
	if errors.Is(err, io.EOF) {
		err = errors.New("empty document")
	}
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}
	g, err := build(doc, log)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}
	return g, nil
}

func (v *docVec) vec(field string) (Vec3, error) {
	if v == nil {
		return Vec3{}, fmt.Errorf("missing %s", field)
	}
	if v.X == nil || v.Y == nil || v.Z == nil {
		return Vec3{}, fmt.Errorf("%s needs x, y and z", field)
	}
	return Vec3{*v.X, *v.Y, *v.Z}, nil
}

func (d docViewpoint) viewpoint() (*Viewpoint, error) {
	if d.ID == "" {
		return nil, errors.New("viewpoint without id")
	}
	area := AreaID(d.AreaID)
	if !area.Valid() {
		return nil, fmt.Errorf("viewpoint %q: unknown areaId %q", d.ID, d.AreaID)
	}
	pos, err := d.Position.vec("position")
	if err != nil {
		return nil, fmt.Errorf("viewpoint %q: %w", d.ID, err)
	}
	look, err := d.LookAt.vec("lookAt")
	if err != nil {
		return nil, fmt.Errorf("viewpoint %q: %w", d.ID, err)
	}
	vp := &Viewpoint{ID: d.ID, Area: area, Position: pos, LookAt: look}

	seen := make(map[string]bool)
	for _, h := range d.Hotspots {
		if h.ID == "" || h.TargetViewpoint == "" {
			return nil, fmt.Errorf("viewpoint %q: hotspot needs id and targetViewpoint", d.ID)
		}
		if seen[h.ID] {
			return nil, fmt.Errorf("viewpoint %q: duplicate hotspot %q", d.ID, h.ID)
		}
		seen[h.ID] = true
		hp, err := h.Position.vec("hotspot " + h.ID + " position")
		if err != nil {
			return nil, fmt.Errorf("viewpoint %q: %w", d.ID, err)
		}
		icon := Icon(h.Icon)
		if icon == "" {
			icon = IconArrow
		}
		if !icon.valid() {
			return nil, fmt.Errorf("viewpoint %q: hotspot %q has unknown icon %q", d.ID, h.ID, h.Icon)
		}
		vp.Hotspots = append(vp.Hotspots, Hotspot{
			ID:              h.ID,
			TargetViewpoint: h.TargetViewpoint,
			Position:        hp,
			Label:           h.Label,
			Icon:            icon,
		})
	}

	seen = make(map[string]bool)
	for _, p := range d.InfoPoints {
		if p.ID == "" {
			return nil, fmt.Errorf("viewpoint %q: info point without id", d.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("viewpoint %q: duplicate info point %q", d.ID, p.ID)
		}
		seen[p.ID] = true
		pp, err := p.Position.vec("info point " + p.ID + " position")
		if err != nil {
			return nil, fmt.Errorf("viewpoint %q: %w", d.ID, err)
		}
		vp.InfoPoints = append(vp.InfoPoints, InfoPoint{
			ID:        p.ID,
			ContentID: p.ContentID,
			Position:  pp,
			Label:     p.Label,
		})
	}
	return vp, nil
}

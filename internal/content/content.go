// Package content reads the CV document and resolves content ids to typed items.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

//go:embed data/cv.json
var defaultFS embed.FS

// ErrNotFound is returned when a content id resolves to nothing.
var ErrNotFound = errors.New("content not found")

// Reserved content ids for the observatory overlays and the profile card.
const (
	BeaconID  = "beacon"
	LedgerID  = "ledger"
	ProfileID = "profile"
)

type Contact struct {
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Profile struct {
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Contact Contact `json:"contact"`
}

// SkillItem is one skill inside an area. Level is beginner|intermediate|advanced|expert.
type SkillItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Level       string   `json:"level"`
	Years       int      `json:"years,omitempty"`
	Projects    []string `json:"projects,omitempty"`
}

type Area struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Items       []SkillItem `json:"items"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
}

// Tool is an observability tool seen through the telescope. Verb is one of
// Observed|Operated|Configured|Owned.
type Tool struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Verb    string `json:"verb"`
	Context string `json:"context"`
	Scope   string `json:"scope"`
}

type BeaconExperience struct {
	Rotations  string `json:"rotations"`
	Escalation string `json:"escalation"`
	Response   string `json:"response"`
}

type Beacon struct {
	Tools      []string         `json:"tools"`
	Experience BeaconExperience `json:"experience"`
}

type Incident struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Role      string `json:"role"`
	Learnings string `json:"learnings"`
}

type Ledger struct {
	Incidents []Incident `json:"incidents"`
}

type Observatory struct {
	Telescope struct {
		Tools []Tool `json:"tools"`
	} `json:"telescope"`
	Beacon Beacon `json:"beacon"`
	Ledger Ledger `json:"ledger"`
}

// Document is the CV content document.
type Document struct {
	Profile     Profile      `json:"profile"`
	Areas       []Area       `json:"areas"`
	Projects    []Project    `json:"projects"`
	Observatory *Observatory `json:"observatory,omitempty"`
}

// Load reads path when set and the embedded document otherwise.
func Load(path string) (*Library, error) {
	if path == "" {
		f, err := defaultFS.Open("data/cv.json")
		if err != nil {
			return nil, fmt.Errorf("loading content from embedded: %w", err)
		}
		defer f.Close()
		return decode("embedded", f)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", path, err)
	}
	defer f.Close()
	return decode(path, f)
}

// Decode parses a content document from r.
func Decode(r io.Reader) (*Library, error) {
	return decode("input", r)
}

func decode(source string, r io.Reader) (*Library, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", source, err)
	}
	return New(doc), nil
}

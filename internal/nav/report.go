package nav

import (
	"errors"
	"fmt"
)

// Severity ranks a report finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one line of a Report.
type Finding struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

// Report collects what `quest validate` prints about a navigation document.
type Report struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Info     []Finding `json:"info"`
}

// NewReport returns an empty, valid report.
func NewReport() *Report {
	return &Report{Valid: true, Errors: []Finding{}, Warnings: []Finding{}, Info: []Finding{}}
}

func (r *Report) AddError(path, msg string) {
	r.Errors = append(r.Errors, Finding{SeverityError, path, msg})
	r.Valid = false
}

func (r *Report) AddWarning(path, msg string) {
	r.Warnings = append(r.Warnings, Finding{SeverityWarning, path, msg})
}

func (r *Report) AddInfo(path, msg string) {
	r.Info = append(r.Info, Finding{SeverityInfo, path, msg})
}

// Summary is a one-line count of the findings.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings, %d info", len(r.Errors), len(r.Warnings), len(r.Info))
}

// ContentIndex answers whether a content id resolves in the content document.
type ContentIndex interface {
	Has(contentID string) bool
}

// ReportLoadError records a failed load as the report's only error.
func ReportLoadError(err error) *Report {
	r := NewReport()
	r.AddError("document", err.Error())
	return r
}

// Check reviews a loaded graph. contents may be nil to skip content checks;
// reserved lists content ids handled by the host rather than the content
// document (the telescope trigger, for instance).
func Check(g *Graph, contents ContentIndex, reserved ...string) *Report {
	r := NewReport()
	for _, p := range g.Problems() {
		var dangling *DanglingReferenceError
		if errors.As(p, &dangling) {
			r.AddWarning(fmt.Sprintf("viewpoints.%s.hotspots.%s", dangling.ViewpointID, dangling.HotspotID), p.Error())
			continue
		}
		r.AddWarning("startViewpoint", p.Error())
	}

	skip := make(map[string]bool, len(reserved))
	for _, id := range reserved {
		skip[id] = true
	}
	hotspots, infoPoints := 0, 0
	areas := make(map[AreaID]bool)
	for _, vp := range g.order {
		areas[vp.Area] = true
		hotspots += len(vp.Hotspots)
		for _, p := range vp.InfoPoints {
			infoPoints++
			path := fmt.Sprintf("viewpoints.%s.infoPoints.%s", vp.ID, p.ID)
			switch {
			case p.ContentID == "":
				r.AddWarning(path, "info point has no contentId")
			case skip[p.ContentID]:
			case contents != nil && !contents.Has(p.ContentID):
				r.AddWarning(path, fmt.Sprintf("contentId %q not found in content document", p.ContentID))
			}
		}
	}
	for _, a := range Areas() {
		if a.DefaultViewpoint == "" || !areas[a.ID] {
			continue
		}
		if !g.HasViewpoint(a.DefaultViewpoint) {
			r.AddWarning("areas."+string(a.ID), fmt.Sprintf("quick-travel viewpoint %q does not exist", a.DefaultViewpoint))
		}
	}
	r.AddInfo("viewpoints", fmt.Sprintf("%d viewpoints across %d areas", g.Len(), len(areas)))
	r.AddInfo("hotspots", fmt.Sprintf("%d hotspots, %d info points", hotspots, infoPoints))
	r.AddInfo("startViewpoint", g.Start().ID)
	return r
}

package nav

import "fmt"

// DataLoadError means a navigation document could not be read, parsed or
// accepted. The session keeps running and shows a failed-to-load state.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading navigation from %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// DanglingReferenceError names a hotspot whose target viewpoint does not exist.
// The hotspot is dropped from the graph; the rest of the document still loads.
type DanglingReferenceError struct {
	ViewpointID string
	HotspotID   string
	Target      string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("viewpoint %q hotspot %q targets unknown viewpoint %q", e.ViewpointID, e.HotspotID, e.Target)
}

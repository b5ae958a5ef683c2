// Package input names the physical keys the navigation core reacts to. Hosts
// translate their native key events into these identifiers.
package input

import "strings"

// Key is a physical key code, spelled the way browsers report KeyboardEvent.code.
type Key string

const (
	KeyW       Key = "KeyW"
	KeyA       Key = "KeyA"
	KeyS       Key = "KeyS"
	KeyD       Key = "KeyD"
	ArrowUp    Key = "ArrowUp"
	ArrowDown  Key = "ArrowDown"
	ArrowLeft  Key = "ArrowLeft"
	ArrowRight Key = "ArrowRight"
	Escape     Key = "Escape"
)

var known = map[string]Key{
	"keyw":       KeyW,
	"keya":       KeyA,
	"keys":       KeyS,
	"keyd":       KeyD,
	"arrowup":    ArrowUp,
	"arrowdown":  ArrowDown,
	"arrowleft":  ArrowLeft,
	"arrowright": ArrowRight,
	"escape":     Escape,
	"esc":        Escape,
}

// Parse maps a key code (case-insensitive) to a Key. Codes outside the set the
// core understands report false; callers drop them.
func Parse(code string) (Key, bool) {
	k, ok := known[strings.ToLower(strings.TrimSpace(code))]
	return k, ok
}

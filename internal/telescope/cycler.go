// Package telescope cycles the focused observability tool while telescope
// mode is active.
package telescope

import (
	"portfolioquest/internal/input"
	"portfolioquest/internal/state"
)

// Cycler intercepts keys while telescope mode is on. The tool order is the
// store's.
type Cycler struct {
	store *state.Store
	tools []string
}

func NewCycler(store *state.Store) *Cycler {
	return &Cycler{store: store, tools: store.Tools()}
}

// Active reports whether telescope mode is on.
func (c *Cycler) Active() bool {
	return c.store.Snapshot().TelescopeMode
}

// Activate enters telescope mode from the world trigger. Clicking the trigger
// while already active does nothing, so the current focus is kept.
func (c *Cycler) Activate() bool {
	if c.Active() {
		return false
	}
	c.store.EnterTelescopeMode()
	return true
}

// Select focuses tool directly. Unknown tools and calls outside telescope
// mode are ignored.
func (c *Cycler) Select(tool string) bool {
	if !c.Active() || c.index(tool) < 0 {
		return false
	}
	c.store.SetFocusedTool(tool)
	return true
}

// HandleKey reacts to a key press while active and reports whether it was
// consumed. Nothing is consumed while inactive.
func (c *Cycler) HandleKey(k input.Key) bool {
	snap := c.store.Snapshot()
	if !snap.TelescopeMode {
		return false
	}
	switch k {
	case input.Escape:
		c.store.ExitTelescopeMode()
	case input.ArrowRight, input.ArrowDown:
		c.store.SetFocusedTool(c.tools[Next(c.focusIndex(snap.FocusedTool), len(c.tools))])
	case input.ArrowLeft, input.ArrowUp:
		c.store.SetFocusedTool(c.tools[Prev(c.focusIndex(snap.FocusedTool), len(c.tools))])
	default:
		return false
	}
	return true
}

// focusIndex treats a cleared or unknown focus as the first tool.
func (c *Cycler) focusIndex(tool string) int {
	if i := c.index(tool); i >= 0 {
		return i
	}
	return 0
}

func (c *Cycler) index(tool string) int {
	for i, t := range c.tools {
		if t == tool {
			return i
		}
	}
	return -1
}

// Next is (i+1) mod n.
func Next(i, n int) int {
	return (i + 1) % n
}

// Prev is (i-1+n) mod n.
func Prev(i, n int) int {
	return (i - 1 + n) % n
}

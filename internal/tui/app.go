// Package tui hosts a session in a terminal. Terminals report key presses
// but not releases, so movement keys are delivered as taps: pressed when the
// event arrives and released on the next frame.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"portfolioquest/internal/input"
	"portfolioquest/internal/session"
	"portfolioquest/internal/viewmodel"
	"portfolioquest/pkg/realtime"
)

type targetKind int

const (
	targetHotspot targetKind = iota
	targetInfo
	targetTool
)

// target is one anchor Tab can land on.
type target struct {
	kind  targetKind
	id    string
	label string
}

type App struct {
	screen   tcell.Screen
	sess     *session.Session
	interval time.Duration
	log      zerolog.Logger

	pendingUp []input.Key
	focus     int
	viewpoint string
}

// New wraps an initialised screen. Non-positive intervals use the default
// frame interval.
func New(screen tcell.Screen, sess *session.Session, interval time.Duration, log zerolog.Logger) *App {
	if interval <= 0 {
		interval = realtime.DefaultFrameInterval
	}
	return &App{screen: screen, sess: sess, interval: interval, log: log, focus: -1}
}

// Run draws frames until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.Frame(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Frame(now)
		}
	}
}

// HandleEvent applies one terminal event and reports whether to keep running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// HandleKey applies a key press and reports whether to keep running.
func (a *App) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		a.cycleFocus()
		return true
	case tcell.KeyEnter:
		a.activateFocus()
		return true
	}
	if k, ok := translate(key, r); ok {
		a.sess.KeyDown(k)
		a.pendingUp = append(a.pendingUp, k)
		return true
	}
	if key != tcell.KeyRune {
		return true
	}
	switch r {
	case 'q', 'Q':
		a.sess.ToggleQuickTravel()
	case 'x', 'X':
		a.sess.CloseInfoPanel()
	case 'p', 'P':
		a.sess.TogglePause()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		a.quickTravel(int(r - '1'))
	}
	return true
}

// translate maps a terminal key onto the core's key set.
func translate(key tcell.Key, r rune) (input.Key, bool) {
	switch key {
	case tcell.KeyUp:
		return input.ArrowUp, true
	case tcell.KeyDown:
		return input.ArrowDown, true
	case tcell.KeyLeft:
		return input.ArrowLeft, true
	case tcell.KeyRight:
		return input.ArrowRight, true
	case tcell.KeyEscape:
		return input.Escape, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return input.KeyW, true
		case 'a', 'A':
			return input.KeyA, true
		case 's', 'S':
			return input.KeyS, true
		case 'd', 'D':
			return input.KeyD, true
		}
	}
	return "", false
}

func (a *App) quickTravel(i int) {
	snap := a.sess.Snapshot()
	if !snap.State.QuickTravelOpen || i < 0 || i >= len(snap.QuickTravel) {
		return
	}
	a.sess.QuickTravel(snap.QuickTravel[i].Area.ID)
}

func (a *App) targets(page viewmodel.Page) []target {
	var out []target
	for _, h := range page.Anchors.Hotspots {
		out = append(out, target{kind: targetHotspot, id: h.ID, label: h.Label})
	}
	for _, p := range page.Anchors.InfoPoints {
		out = append(out, target{kind: targetInfo, id: p.ContentID, label: p.Label})
	}
	for _, t := range page.Anchors.Tools {
		out = append(out, target{kind: targetTool, id: t.ID, label: t.Name})
	}
	return out
}

func (a *App) cycleFocus() {
	ts := a.targets(viewmodel.Build(a.sess.Snapshot()))
	if len(ts) == 0 {
		a.focus = -1
		return
	}
	a.focus = (a.focus + 1) % len(ts)
	if t := ts[a.focus]; t.kind == targetHotspot {
		a.sess.HoverHotspot(t.id)
	} else {
		a.sess.ClearHover()
	}
}

func (a *App) activateFocus() {
	ts := a.targets(viewmodel.Build(a.sess.Snapshot()))
	if a.focus < 0 || a.focus >= len(ts) {
		return
	}
	t := ts[a.focus]
	switch t.kind {
	case targetHotspot:
		a.sess.ClickHotspot(t.id)
	case targetInfo:
		a.sess.ClickInfoPoint(t.id)
	case targetTool:
		a.sess.SelectTool(t.id)
	}
}

// Frame releases last frame's taps, advances the session and redraws.
func (a *App) Frame(now time.Time) {
	for _, k := range a.pendingUp {
		a.sess.KeyUp(k)
	}
	a.pendingUp = a.pendingUp[:0]
	a.sess.Tick(now)

	snap := a.sess.Snapshot()
	if snap.State.CurrentViewpoint != a.viewpoint {
		a.viewpoint = snap.State.CurrentViewpoint
		a.focus = -1
	}
	a.draw(snap)
}

var (
	styleTitle   = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFocus   = tcell.StyleDefault.Reverse(true)
	styleDefault = tcell.StyleDefault
)

func (a *App) draw(snap session.Snapshot) {
	page := viewmodel.Build(snap)
	a.screen.Clear()
	y := 0
	line := func(style tcell.Style, format string, args ...any) {
		a.drawText(0, y, style, fmt.Sprintf(format, args...))
		y++
	}

	line(styleTitle, "%s", page.HUD.AreaName)
	line(styleDefault, "%s", page.HUD.Breadcrumb)
	line(styleDim, "Move: %s", page.HUD.Movement)
	cam := snap.Camera
	line(styleDim, "Camera: (%.1f, %.1f, %.1f) -> (%.1f, %.1f, %.1f) %s %.0f%%",
		cam.Position.X, cam.Position.Y, cam.Position.Z,
		cam.LookAt.X, cam.LookAt.Y, cam.LookAt.Z,
		snap.Phase, snap.Progress*100)
	if page.Overlay.Visible {
		style := styleTitle
		if page.Overlay.Failed {
			style = styleAlert
		}
		line(style, "%s", page.Overlay.Text)
	}
	if page.HUD.Paused {
		line(styleAlert, "Paused")
	}
	if page.Telescope.Active {
		line(styleTitle, "%s", page.Telescope.Text)
	}
	y++

	for i, t := range a.targets(page) {
		style := styleDefault
		if i == a.focus {
			style = styleFocus
		}
		prefix := "  "
		switch t.kind {
		case targetHotspot:
			prefix = "→ "
		case targetInfo:
			prefix = "i "
		case targetTool:
			prefix = "◎ "
		}
		line(style, "%s%s", prefix, t.label)
	}

	if page.QuickTravel.Open {
		y++
		line(styleTitle, "Quick Travel")
		for i, e := range page.QuickTravel.Entries {
			style := styleDefault
			status := ""
			switch {
			case e.Current:
				status = " (here)"
				style = styleDim
			case !e.Visited:
				status = " (locked)"
				style = styleDim
			}
			line(style, "%d %s%s", i+1, e.Name, status)
		}
	}

	if page.Panel.Open {
		y++
		line(styleTitle, "%s", page.Panel.Title)
		for _, l := range page.Panel.Lines {
			line(styleDefault, "%s", l)
		}
	}

	_, h := a.screen.Size()
	a.drawText(0, h-1, styleDim, "wasd/arrows move · tab/enter anchors · q travel · x close · p pause · ctrl-c quit")
	a.screen.Show()
}

func (a *App) drawText(x, y int, style tcell.Style, text string) {
	w, h := a.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

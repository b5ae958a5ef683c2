package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"portfolioquest/internal/session"
	"portfolioquest/internal/state"
	"portfolioquest/internal/viewmodel"
	"portfolioquest/views/components"
)

// fragmentsFor lists the fragments a store topic invalidates.
var fragmentsFor = map[string][]string{
	state.TopicNavigation:  {components.HUDID, components.OverlayID, components.AnchorsID, components.QuickTravelID},
	state.TopicArea:        {components.HUDID, components.QuickTravelID},
	state.TopicHover:       {components.AnchorsID},
	state.TopicOverlay:     {components.PanelID, components.AnchorsID},
	state.TopicTelescope:   {components.TelescopeID, components.AnchorsID},
	state.TopicQuickTravel: {components.QuickTravelID},
	state.TopicLifecycle:   {components.HUDID, components.OverlayID},
}

func fragment(id string, page viewmodel.Page) templ.Component {
	switch id {
	case components.HUDID:
		return components.HUD(page.HUD)
	case components.OverlayID:
		return components.Overlay(page.Overlay)
	case components.AnchorsID:
		return components.Anchors(page.Anchors)
	case components.QuickTravelID:
		return components.QuickTravel(page.QuickTravel)
	case components.PanelID:
		return components.Panel(page.Panel)
	case components.TelescopeID:
		return components.TelescopeBar(page.Telescope)
	}
	return nil
}

var allFragments = []string{
	components.HUDID,
	components.OverlayID,
	components.AnchorsID,
	components.QuickTravelID,
	components.PanelID,
	components.TelescopeID,
}

func (h *SessionHandler) stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	hub, ok := h.registry.Hub(sess.ID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendFragments := func(ids []string) {
		page := viewmodel.Build(sess.Snapshot())
		for _, id := range ids {
			writeSSE(w, id, renderToString(r, fragment(id, page)))
		}
		flusher.Flush()
	}
	sendCamera := func() {
		snap := sess.Snapshot()
		data, err := json.Marshal(struct {
			session.Pose
			Phase    string  `json:"phase"`
			Progress float64 `json:"progress"`
		}{snap.Camera, snap.Phase, snap.Progress})
		if err != nil {
			return
		}
		writeSSE(w, session.TopicCamera, string(data))
		flusher.Flush()
	}

	sendFragments(allFragments)
	sendCamera()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case topic, open := <-sub:
			if !open {
				return
			}
			if topic == session.TopicCamera {
				sendCamera()
				continue
			}
			if ids, ok := fragmentsFor[topic]; ok {
				sendFragments(ids)
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

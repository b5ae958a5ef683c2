package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"portfolioquest/internal/input"
	"portfolioquest/internal/nav"
	"portfolioquest/internal/session"
	"portfolioquest/internal/viewmodel"
	"portfolioquest/views/pages"
)

const sessionCookieName = "quest_session"

// DefaultTimeout bounds every request except the event stream.
const DefaultTimeout = 15 * time.Second

type SessionHandler struct {
	registry *session.Registry
	log      zerolog.Logger
	timeout  time.Duration
}

func NewSessionHandler(registry *session.Registry, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{registry: registry, log: log, timeout: DefaultTimeout}
}

func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/session/stream", h.stream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.timeout))
		r.Get("/", h.page)
		r.Get("/session/state", h.state)
		r.Post("/session/hotspot/{id}", h.clickHotspot)
		r.Post("/session/hover/{id}", h.hover)
		r.Delete("/session/hover", h.clearHover)
		r.Post("/session/info/close", h.closeInfo)
		r.Post("/session/info/{contentId}", h.clickInfo)
		r.Post("/session/tool/{id}", h.selectTool)
		r.Post("/session/key", h.key)
		r.Post("/session/quicktravel/open", h.quickTravelOpen(true))
		r.Post("/session/quicktravel/close", h.quickTravelOpen(false))
		r.Post("/session/quicktravel/area/{area}", h.quickTravel)
		r.Post("/session/pause", h.pause)
	})
}

// sessionFor returns the caller's session, starting one when the cookie is
// missing or names a session this process does not know.
func (h *SessionHandler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	if id := sessionIDFromCookie(r); id != "" {
		if sess, ok := h.registry.Get(id); ok {
			return sess, true
		}
	}
	sess, err := h.registry.Create()
	if err != nil {
		h.log.Error().Err(err).Msg("session create failed")
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return nil, false
	}
	h.log.Info().Str("session", sess.ID).Msg("session started")
	setSessionCookie(w, sess.ID)
	return sess, true
}

func (h *SessionHandler) page(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	render(w, r, pages.Page(viewmodel.Build(sess.Snapshot())))
}

func (h *SessionHandler) state(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, sess.Snapshot())
}

// respond reports an accepted action as 204 and a refused one as 409.
func respond(w http.ResponseWriter, accepted bool) {
	if accepted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusConflict)
}

func (h *SessionHandler) clickHotspot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	accepted := sess.ClickHotspot(chi.URLParam(r, "id"))
	if accepted {
		h.registry.EnsureFrameLoop(sess.ID)
	}
	respond(w, accepted)
}

func (h *SessionHandler) hover(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	sess.HoverHotspot(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) clearHover(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	sess.ClearHover()
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) clickInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	respond(w, sess.ClickInfoPoint(chi.URLParam(r, "contentId")))
}

func (h *SessionHandler) closeInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	sess.CloseInfoPanel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) selectTool(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	respond(w, sess.SelectTool(chi.URLParam(r, "id")))
}

func (h *SessionHandler) key(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	k, known := input.Parse(r.FormValue("key"))
	if !known {
		// Keys outside the core's set are dropped like any unmapped key.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	switch r.FormValue("action") {
	case "", "down":
		sess.KeyDown(k)
	case "up":
		sess.KeyUp(k)
	default:
		http.Error(w, "action must be down or up", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) quickTravelOpen(open bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.sessionFor(w, r)
		if !ok {
			return
		}
		sess.SetQuickTravelOpen(open)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *SessionHandler) quickTravel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	accepted := sess.QuickTravel(nav.AreaID(chi.URLParam(r, "area")))
	if accepted {
		h.registry.EnsureFrameLoop(sess.ID)
	}
	respond(w, accepted)
}

func (h *SessionHandler) pause(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if paused := sess.TogglePause(); !paused {
		h.registry.EnsureFrameLoop(sess.ID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func sessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

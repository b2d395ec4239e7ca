package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/178inaba/duty-attendance/entity"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", h.requireIdentity(h.dashboard))
	r.Get("/mark-attendance/", h.requireIdentity(h.markAttendanceForm))
	r.Post("/mark-attendance/", h.requireIdentity(h.markAttendance))
	r.Get("/duty-posts/", h.requireIdentity(h.dutyPostList))

	r.Get("/login/", h.loginForm)
	r.Post("/login/", h.login)
	r.Post("/logout/", h.logout)

	if h.opts.SlackSigningSecret != "" {
		r.Post("/slack/events", h.ReceiveEvent)
	}

	return r
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request, ident entity.Identity) {
	ads, err := h.ListAttendance(r.Context(), ident)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("List attendance: %v.", err)
		return
	}

	h.render(w, http.StatusOK, "dashboard", map[string]interface{}{
		"Identity":    ident,
		"Attendances": ads,
	})
}

func (h *Handler) markAttendanceForm(w http.ResponseWriter, r *http.Request, ident entity.Identity) {
	h.renderMarkAttendance(w, r, ident, http.StatusOK, "")
}

func (h *Handler) markAttendance(w http.ResponseWriter, r *http.Request, ident entity.Identity) {
	dutyPostID, err := strconv.Atoi(r.PostFormValue("duty_post"))
	if err != nil || dutyPostID <= 0 {
		h.renderMarkAttendance(w, r, ident, http.StatusBadRequest, "Select a duty post.")
		return
	}

	if _, err := h.MarkAttendance(r.Context(), ident, dutyPostID); errors.Is(err, ErrDutyPostNotFound) {
		h.renderMarkAttendance(w, r, ident, http.StatusNotFound, "The selected duty post does not exist.")
		return
	} else if errors.Is(err, ErrStaffUnlinked) {
		h.renderMarkAttendance(w, r, ident, http.StatusForbidden, "Your account is not linked to a staff record.")
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("Mark attendance: %v.", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderMarkAttendance(w http.ResponseWriter, r *http.Request, ident entity.Identity, status int, message string) {
	dps, err := h.ListDutyPosts(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("List duty posts: %v.", err)
		return
	}

	h.render(w, status, "mark_attendance", map[string]interface{}{
		"Identity":  ident,
		"DutyPosts": dps,
		"Error":     message,
	})
}

func (h *Handler) dutyPostList(w http.ResponseWriter, r *http.Request, ident entity.Identity) {
	dps, err := h.ListDutyPosts(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("List duty posts: %v.", err)
		return
	}

	h.render(w, http.StatusOK, "duty_post_list", map[string]interface{}{
		"Identity":  ident,
		"DutyPosts": dps,
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data map[string]interface{}) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("Render %s: %v.", page, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode json: %v.", err)
	}
}

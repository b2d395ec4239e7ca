package handler

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/178inaba/duty-attendance/auth"
	"github.com/178inaba/duty-attendance/entity"
)

const sessionCookieName = "session"

type identityHandlerFunc func(w http.ResponseWriter, r *http.Request, ident entity.Identity)

// requireIdentity resolves the session cookie and passes the identity to next.
// Requests without a valid session never reach next.
func (h *Handler) requireIdentity(next identityHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookieName)
		if err == nil {
			ident, err := auth.ParseSessionToken(h.opts.SessionSecret, c.Value)
			if err == nil {
				next(w, r, ident)
				return
			}
			log.Printf("Parse session token: %v.", err)
		}

		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/login/?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
	}
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", map[string]interface{}{
		"Next":     safeNext(r.URL.Query().Get("next")),
		"Username": "",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := r.PostFormValue("username")
	next := safeNext(r.PostFormValue("next"))

	u, err := h.userRepo.GetByUsername(ctx, username)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("Get user by username: %v.", err)
		return
	}
	if u == nil || auth.CheckPassword(u.PasswordHash, r.PostFormValue("password")) != nil {
		h.render(w, http.StatusUnauthorized, "login", map[string]interface{}{
			"Next":     next,
			"Username": username,
			"Error":    "Invalid username or password.",
		})
		return
	}

	token, err := auth.NewSessionToken(h.opts.SessionSecret, h.opts.SessionTTL, entity.Identity{UserID: u.ID, Username: u.Username}, h.now())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Printf("New session token: %v.", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// safeNext only allows local paths as a redirect target.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

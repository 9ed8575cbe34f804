package http

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/service"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/MKhiriev/go-access-portal/models"
)

// wrongCredentialsMessage is shown on the re-rendered login form. It is the
// same for unknown login, wrong password, and deactivated account.
const wrongCredentialsMessage = "Wrong login or password."

// loginForm renders the login page. An already-authenticated user is sent
// straight to the post-login URL.
func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserFromContext(r.Context()); ok {
		http.Redirect(w, r, h.loginTarget(r.URL.Query().Get("next")), http.StatusSeeOther)
		return
	}

	errMsg := ""
	if r.URL.Query().Get("error") != "" {
		errMsg = wrongCredentialsMessage
	}
	next := safeNextTarget(r.URL.Query().Get("next"))

	h.renderPage(w, r, http.StatusOK, loginPage(errMsg, next))
}

// loginSubmit verifies the posted form credentials. On failure the login
// form is re-rendered with an error; on success a session cookie is set and
// the user is redirected to the "next" target or the configured post-login
// URL.
func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid login form")
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	creds := models.Credentials{
		Login:    r.PostFormValue("login"),
		Password: r.PostFormValue("password"),
	}
	next := safeNextTarget(r.PostFormValue("next"))

	_, token, err := h.services.AuthService.Login(ctx, creds, r.UserAgent(), remoteIP(r))
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			h.renderPage(w, r, http.StatusUnauthorized, loginPage(wrongCredentialsMessage, next))
			return
		}
		log.Err(err).Msg("unexpected error occurred during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, h.loginTarget(next), http.StatusSeeOther)
}

// logout revokes the current session, clears the cookie, and redirects to
// the configured post-logout URL. Logging out without a session is fine.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err = h.services.AuthService.Logout(ctx, cookie.Value); err != nil {
			log.Err(err).Msg("unexpected error occurred during logout")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, h.sessions.LogoutRedirectURL, http.StatusSeeOther)
}

// home renders the landing page.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	h.renderPage(w, r, http.StatusOK, homePage(user))
}

// adminUsers renders the staff-only user table.
func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	user, _ := utils.GetUserFromContext(ctx)

	users, err := h.services.AccountService.ListUsers(ctx, models.UserFilter{})
	if err != nil {
		log.Err(err).Msg("user listing failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderPage(w, r, http.StatusOK, adminUsersPage(user, users))
}

// loginTarget picks the post-login destination: a safe "next" target when
// one was requested, the configured post-login URL otherwise.
func (h *Handler) loginTarget(next string) string {
	if target := safeNextTarget(next); target != "" {
		return target
	}
	return h.sessions.LoginRedirectURL
}

// setSessionCookie attaches the session token to the response. HttpOnly and
// SameSite=Lax always; Secure per configuration.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.sessions.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessions.TTL),
	})
}

// clearSessionCookie expires the session cookie on the client.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.sessions.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// remoteIP extracts the client address without the port.
func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

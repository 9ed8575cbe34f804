package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/service"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/MKhiriev/go-access-portal/models"
)

// apiLogin verifies JSON credentials and returns a bearer JWT for API
// clients that cannot hold a session cookie.
func (h *Handler) apiLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, _, err := h.services.AuthService.Login(ctx, creds, r.UserAgent(), remoteIP(r))
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			http.Error(w, wrongCredentialsMessage, http.StatusUnauthorized)
			return
		}
		log.Err(err).Msg("unexpected error occurred during api login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	token, err := h.services.AuthService.IssueToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		Token: token.SignedString,
		User:  user,
	}, http.StatusOK)
}

// apiLogout revokes the caller's session when one is present. Bearer tokens
// are stateless and simply expire; the call still succeeds for them.
func (h *Handler) apiLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err = h.services.AuthService.Logout(ctx, cookie.Value); err != nil {
			log.Err(err).Msg("unexpected error occurred during api logout")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.clearSessionCookie(w)
	}

	w.WriteHeader(http.StatusNoContent)
}

// profile returns the authenticated caller's account.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	utils.WriteJSON(w, user, http.StatusOK)
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/service"
	"github.com/MKhiriev/go-access-portal/internal/utils"
)

// withSession resolves the request's identity and stores the authenticated
// [models.User] in the context under [utils.UserCtxKey].
//
// Two credentials are recognised, in order:
//  1. the session cookie set by the HTML login flow;
//  2. an "Authorization: Bearer <jwt>" header set by API clients.
//
// Resolution never fails the request: an expired, revoked, or unknown
// credential leaves the request anonymous and the require* middleware
// decides what to do with it. Only unexpected storage failures turn into
// a 500 here.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			user, authErr := h.services.AuthService.Authenticate(ctx, cookie.Value)
			switch {
			case authErr == nil:
				ctx = context.WithValue(ctx, utils.UserCtxKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			case errors.Is(authErr, service.ErrNotAuthenticated):
				// stale cookie; fall through as anonymous
			default:
				log.Err(authErr).Msg("session resolution failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			tokenString, err := utils.ParseBearerToken(authHeader)
			if err == nil {
				user, authErr := h.services.AuthService.AuthenticateToken(ctx, tokenString)
				switch {
				case authErr == nil:
					ctx = context.WithValue(ctx, utils.UserCtxKey, user)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				case errors.Is(authErr, service.ErrNotAuthenticated):
					// invalid bearer token; fall through as anonymous
				default:
					log.Err(authErr).Msg("bearer token resolution failed")
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

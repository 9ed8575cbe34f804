package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/utils"
)

// requireLogin guards routes that need an authenticated user.
//
// Anonymous API requests (path under /api/) receive 401; anonymous browser
// requests are redirected to the configured login URL with the original path
// in the "next" query parameter so the login flow can return them there.
func (h *Handler) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if isAPIRequest(r) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		loginURL := h.sessions.LoginURL + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, loginURL, http.StatusSeeOther)
	})
}

// requireStaff guards staff-only routes. Anonymous requests are handled the
// same way as requireLogin; authenticated non-staff users receive 403.
func (h *Handler) requireStaff(next http.Handler) http.Handler {
	return h.requireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := utils.GetUserFromContext(r.Context())
		if !user.IsStaff {
			log := logger.FromRequest(r)
			log.Warn().Int64("id", user.UserID).Str("uri", r.RequestURI).Msg("staff access denied")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// requireGroup guards routes restricted to members of the named group.
// Staff users pass regardless of membership.
func (h *Handler) requireGroup(groupName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return h.requireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := utils.GetUserFromContext(r.Context())
			if !user.IsStaff && !user.InGroup(groupName) {
				log := logger.FromRequest(r)
				log.Warn().Int64("id", user.UserID).Str("group", groupName).Str("uri", r.RequestURI).Msg("group access denied")
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// isAPIRequest reports whether the request targets the JSON API rather than
// an HTML page.
func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// safeNextTarget accepts a "next" redirect target only when it is a relative
// path on this host. Anything carrying a scheme, host, or protocol-relative
// prefix is discarded to prevent open redirects.
func safeNextTarget(next string) string {
	if next == "" {
		return ""
	}
	// Browsers treat "/\" like "//", so both count as protocol-relative.
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}

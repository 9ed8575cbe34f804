package http

import (
	"net/http"
)

// getServerVersion answers GET /api/version with the plain-text version of
// the running server. The route is public so clients can probe compatibility
// before logging in.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/store"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/go-chi/chi/v5"
)

// documents renders the HTML document listing.
func (h *Handler) documents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	user, _ := utils.GetUserFromContext(ctx)

	docs, err := h.services.DocumentService.ListDocuments(ctx)
	if err != nil {
		log.Err(err).Msg("document listing failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderPage(w, r, http.StatusOK, documentsPage(user, docs))
}

// downloadDocument streams one protected document. Any name that does not
// resolve to a served file answers 404; the response never distinguishes a
// missing file from a rejected path.
func (h *Handler) downloadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "name")
	file, info, err := h.services.DocumentService.OpenDocument(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		log.Err(err).Str("name", name).Msg("document open failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+info.Name+`"`)
	http.ServeContent(w, r, info.Name, info.ModTime, file)
}

// apiDocuments returns the document listing as JSON.
func (h *Handler) apiDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	docs, err := h.services.DocumentService.ListDocuments(ctx)
	if err != nil {
		log.Err(err).Msg("document listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, docs, http.StatusOK)
}

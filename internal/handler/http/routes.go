package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(h.withSession)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/login", h.loginForm)
		r.Post("/login", h.loginSubmit)
		r.Post("/logout", h.logout)
		r.Post("/api/auth/login", h.apiLogin)
		r.Post("/api/auth/logout", h.apiLogout)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.requireLogin)
		r.Get("/", h.home)
		r.Get("/api/profile", h.profile)
	})

	// document routes, optionally restricted to one group
	router.Group(func(r chi.Router) {
		if h.documentsGroup != "" {
			r.Use(h.requireGroup(h.documentsGroup))
		} else {
			r.Use(h.requireLogin)
		}
		r.Get("/documents", h.documents)
		r.Get("/documents/{name}", h.downloadDocument)
		r.Get("/api/documents", h.apiDocuments)
		r.Get("/api/documents/{name}", h.downloadDocument)
	})

	// staff-only administration
	router.Group(func(r chi.Router) {
		r.Use(h.requireStaff)
		r.Get("/admin/users", h.adminUsers)
		r.Get("/api/users", h.listUsers)
		r.Post("/api/users", h.createUser)
		r.Get("/api/users/{id}", h.getUser)
		r.Patch("/api/users/{id}", h.updateUser)
		r.Put("/api/users/{id}/groups/{group}", h.addGroupMembership)
		r.Delete("/api/users/{id}/groups/{group}", h.removeGroupMembership)
		r.Get("/api/groups", h.listGroups)
		r.Post("/api/groups", h.createGroup)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

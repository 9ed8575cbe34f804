// Package http implements the HTTP transport layer of the portal.
// It provides middleware, HTML page handlers, JSON API handlers, and
// request/response utilities. Tracing, logging, compression, and session
// resolution are all handled at this layer before requests are forwarded
// to the service layer.
package http

import (
	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/service"
)

// sessionCookieName is the name of the HttpOnly cookie that carries the
// opaque session token.
const sessionCookieName = "portal_session"

type Handler struct {
	services *service.Services

	// sessions carries the cookie flags and the login/logout redirect URLs.
	sessions config.Sessions

	// documentsGroup restricts the documents routes to one group when set.
	documentsGroup string

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions config.Sessions, files config.Files, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		sessions:       sessions,
		documentsGroup: files.DocumentsGroup,
		logger:         logger,
	}
}

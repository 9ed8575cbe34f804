package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-access-portal/internal/service"
	"github.com/MKhiriev/go-access-portal/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongCredentials:        http.StatusUnauthorized,
	service.ErrNotAuthenticated:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	store.ErrLoginAlreadyExists:      http.StatusConflict,
	store.ErrGroupAlreadyExists:      http.StatusConflict,
	store.ErrMembershipAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:          http.StatusNotFound,
	store.ErrNoGroupWasFound:         http.StatusNotFound,
	store.ErrNoSessionWasFound:       http.StatusNotFound,
	store.ErrDocumentNotFound:        http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-access-portal/internal/service"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// contextRecorder records the user the session middleware stored in the context.
type contextRecorder struct {
	called bool
	user   models.User
	authed bool
}

func (c *contextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.user, c.authed = utils.GetUserFromContext(r.Context())
	})
}

func TestWithSession_CookieResolvesUser(t *testing.T) {
	const token = "plaintext-session-token"

	h, mocks := newTestHandler(t)
	mocks.auth.EXPECT().Authenticate(gomock.Any(), token).Return(activeUser, nil)

	seen := &contextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.withSession(seen.handler()).ServeHTTP(rec, req)

	require.True(t, seen.called)
	require.True(t, seen.authed)
	assert.Equal(t, activeUser, seen.user)
}

func TestWithSession_StaleCookiePassesThroughAnonymous(t *testing.T) {
	h, mocks := newTestHandler(t)
	mocks.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrNotAuthenticated)

	seen := &contextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "expired"})
	rec := httptest.NewRecorder()
	h.withSession(seen.handler()).ServeHTTP(rec, req)

	require.True(t, seen.called)
	assert.False(t, seen.authed)
}

func TestWithSession_StorageErrorReturns500(t *testing.T) {
	h, mocks := newTestHandler(t)
	mocks.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(models.User{}, errors.New("storage is down"))

	seen := &contextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "token"})
	rec := httptest.NewRecorder()
	h.withSession(seen.handler()).ServeHTTP(rec, req)

	assert.False(t, seen.called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithSession_BearerTokenResolvesUser(t *testing.T) {
	const token = "signed.jwt.token"

	h, mocks := newTestHandler(t)
	mocks.auth.EXPECT().AuthenticateToken(gomock.Any(), token).Return(activeUser, nil)

	seen := &contextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.withSession(seen.handler()).ServeHTTP(rec, req)

	require.True(t, seen.called)
	require.True(t, seen.authed)
	assert.Equal(t, activeUser, seen.user)
}

func TestWithSession_InvalidBearerTokenPassesThroughAnonymous(t *testing.T) {
	h, mocks := newTestHandler(t)
	mocks.auth.EXPECT().AuthenticateToken(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrNotAuthenticated)

	seen := &contextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.withSession(seen.handler()).ServeHTTP(rec, req)

	require.True(t, seen.called)
	assert.False(t, seen.authed)
}

func TestWithSession_NoCredentialsPassesThroughAnonymous(t *testing.T) {
	h, _ := newTestHandler(t)

	seen := &contextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.withSession(seen.handler()).ServeHTTP(rec, req)

	require.True(t, seen.called)
	assert.False(t, seen.authed)
}

// Malformed Authorization headers never reach the auth service: the missing
// AuthenticateToken expectation fails the test if they do.
func TestWithSession_MalformedAuthHeaderPassesThroughAnonymous(t *testing.T) {
	headers := []string{"abc.def.ghi", "Bearer ", "Bearer"}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			h, _ := newTestHandler(t)

			seen := &contextRecorder{}
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			h.withSession(seen.handler()).ServeHTTP(rec, req)

			require.True(t, seen.called)
			assert.False(t, seen.authed)
		})
	}
}

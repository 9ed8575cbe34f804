package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-access-portal/internal/config"
	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("address %q has no host", raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login and stores the bearer token from the response.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post("/api/auth/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var loginResp models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &loginResp); err != nil {
		return models.User{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(loginResp.Token)
	return loginResp.User, nil
}

// Logout implements [ServerAdapter]. The bearer token is stateless on the
// server, so the call mainly clears the local copy.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// Profile implements [ServerAdapter].
func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).Get("/api/profile")
	if err != nil {
		return user, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return user, fmt.Errorf("decode profile response: %w", err)
	}
	return user, nil
}

// ListUsers implements [ServerAdapter]. Filter fields become query
// parameters on GET /api/users.
func (h *httpServerAdapter) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	req := h.authedRequest(ctx)
	if filter.Login != "" {
		req.SetQueryParam("login", filter.Login)
	}
	if filter.Group != "" {
		req.SetQueryParam("group", filter.Group)
	}
	if filter.IsStaff != nil {
		req.SetQueryParam("is_staff", strconv.FormatBool(*filter.IsStaff))
	}
	if filter.IsActive != nil {
		req.SetQueryParam("is_active", strconv.FormatBool(*filter.IsActive))
	}
	if filter.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Offset > 0 {
		req.SetQueryParam("offset", strconv.FormatUint(filter.Offset, 10))
	}

	resp, err := req.Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.User
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, fmt.Errorf("decode users response: %w", err)
	}
	return users, nil
}

// GetUser implements [ServerAdapter].
func (h *httpServerAdapter) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).Get("/api/users/" + strconv.FormatInt(userID, 10))
	if err != nil {
		return user, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return user, fmt.Errorf("decode user response: %w", err)
	}
	return user, nil
}

// CreateUser implements [ServerAdapter].
func (h *httpServerAdapter) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.CreateUserResponse, error) {
	var created models.CreateUserResponse
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/users")
	if err != nil {
		return created, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return created, err
	}

	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return created, fmt.Errorf("decode create user response: %w", err)
	}
	return created, nil
}

// UpdateUser implements [ServerAdapter].
func (h *httpServerAdapter) UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Patch("/api/users/" + strconv.FormatInt(userID, 10))
	if err != nil {
		return user, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return user, fmt.Errorf("decode updated user response: %w", err)
	}
	return user, nil
}

// AddUserToGroup implements [ServerAdapter].
func (h *httpServerAdapter) AddUserToGroup(ctx context.Context, userID int64, groupName string) error {
	resp, err := h.authedRequest(ctx).
		Put("/api/users/" + strconv.FormatInt(userID, 10) + "/groups/" + url.PathEscape(groupName))
	if err != nil {
		return fmt.Errorf("add group membership request: %w", err)
	}
	return mapHTTPError(resp)
}

// RemoveUserFromGroup implements [ServerAdapter].
func (h *httpServerAdapter) RemoveUserFromGroup(ctx context.Context, userID int64, groupName string) error {
	resp, err := h.authedRequest(ctx).
		Delete("/api/users/" + strconv.FormatInt(userID, 10) + "/groups/" + url.PathEscape(groupName))
	if err != nil {
		return fmt.Errorf("remove group membership request: %w", err)
	}
	return mapHTTPError(resp)
}

// ListGroups implements [ServerAdapter].
func (h *httpServerAdapter) ListGroups(ctx context.Context) ([]models.Group, error) {
	resp, err := h.authedRequest(ctx).Get("/api/groups")
	if err != nil {
		return nil, fmt.Errorf("list groups request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var groups []models.Group
	if err = json.Unmarshal(resp.Body(), &groups); err != nil {
		return nil, fmt.Errorf("decode groups response: %w", err)
	}
	return groups, nil
}

// CreateGroup implements [ServerAdapter].
func (h *httpServerAdapter) CreateGroup(ctx context.Context, req models.CreateGroupRequest) (models.Group, error) {
	var group models.Group
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/groups")
	if err != nil {
		return group, fmt.Errorf("create group request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return group, err
	}

	if err = json.Unmarshal(resp.Body(), &group); err != nil {
		return group, fmt.Errorf("decode group response: %w", err)
	}
	return group, nil
}

// GetServerVersion implements [ServerAdapter].
func (h *httpServerAdapter) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-access-portal/internal/logger"
	"github.com/MKhiriev/go-access-portal/internal/utils"
	"github.com/MKhiriev/go-access-portal/models"
	"github.com/go-chi/chi/v5"
)

// createUser handles the staff-only POST /api/users.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AccountService.CreateUser(ctx, req)
	if err != nil {
		log.Err(err).Str("login", req.Login).Msg("user creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusCreated)
}

// listUsers handles the staff-only GET /api/users with filter query params.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter, err := parseUserFilter(r)
	if err != nil {
		log.Err(err).Msg("invalid user filter")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	users, err := h.services.AccountService.ListUsers(ctx, filter)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// getUser handles the staff-only GET /api/users/{id}.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.services.AccountService.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateUser handles the staff-only PATCH /api/users/{id}.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.UpdateUserRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AccountService.UpdateUser(ctx, userID, req)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user update failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// addGroupMembership handles the staff-only PUT /api/users/{id}/groups/{group}.
func (h *Handler) addGroupMembership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	groupName := chi.URLParam(r, "group")

	if err = h.services.AccountService.AddUserToGroup(ctx, userID, groupName); err != nil {
		log.Err(err).Int64("id", userID).Str("group", groupName).Msg("group assignment failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeGroupMembership handles the staff-only DELETE /api/users/{id}/groups/{group}.
func (h *Handler) removeGroupMembership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	groupName := chi.URLParam(r, "group")

	if err = h.services.AccountService.RemoveUserFromGroup(ctx, userID, groupName); err != nil {
		log.Err(err).Int64("id", userID).Str("group", groupName).Msg("group removal failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createGroup handles the staff-only POST /api/groups.
func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	group, err := h.services.AccountService.CreateGroup(ctx, req)
	if err != nil {
		log.Err(err).Str("name", req.Name).Msg("group creation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, group, http.StatusCreated)
}

// listGroups handles the staff-only GET /api/groups.
func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	groups, err := h.services.AccountService.ListGroups(ctx)
	if err != nil {
		log.Err(err).Msg("group listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, groups, http.StatusOK)
}

// userIDFromURL parses the {id} route parameter.
func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseUserFilter builds a [models.UserFilter] from the listing query
// parameters: login, group, is_staff, is_active, limit, offset.
func parseUserFilter(r *http.Request) (models.UserFilter, error) {
	query := r.URL.Query()

	filter := models.UserFilter{
		Login: query.Get("login"),
		Group: query.Get("group"),
	}

	if raw := query.Get("is_staff"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return models.UserFilter{}, err
		}
		filter.IsStaff = &value
	}
	if raw := query.Get("is_active"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return models.UserFilter{}, err
		}
		filter.IsActive = &value
	}
	if raw := query.Get("limit"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.UserFilter{}, err
		}
		filter.Limit = value
	}
	if raw := query.Get("offset"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.UserFilter{}, err
		}
		filter.Offset = value
	}

	return filter, nil
}

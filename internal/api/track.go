package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/itemtrail/itemtrail/internal/track"
)

// TrackHandler serves the shop-floor scanning endpoints: item lookup,
// permission queries, and status transitions. These carry the employee id in
// the request body (the scanning app identifies the worker by badge scan, not
// by session), matching the wire contract of the mobile clients.
type TrackHandler struct {
	Engine *track.Engine
}

type scanRequest struct {
	UID string `json:"uid"`
}

type allowedStatusesRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

type updateStatusRequest struct {
	UID        string `json:"uid"`
	NewStatus  string `json:"new_status"`
	EmployeeID int64  `json:"employee_id"`
	Note       string `json:"note"`
}

type updateStatusResponse struct {
	OK        bool   `json:"ok"`
	UID       string `json:"uid"`
	NewStatus string `json:"new_status"`
	Role      string `json:"role"`
}

// Scan handles POST /api/scan.
func (h *TrackHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UID == "" {
		jsonError(w, http.StatusBadRequest, "uid required")
		return
	}

	result, err := h.Engine.Scan(r.Context(), req.UID)
	if errors.Is(err, track.ErrItemNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("scan failed", "uid", req.UID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to scan item")
		return
	}

	jsonResponse(w, http.StatusOK, result)
}

// AllowedStatuses handles POST /api/allowed_statuses.
func (h *TrackHandler) AllowedStatuses(w http.ResponseWriter, r *http.Request) {
	var req allowedStatusesRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == 0 {
		jsonError(w, http.StatusBadRequest, "employee_id required")
		return
	}

	perms, err := h.Engine.Permissions(r.Context(), req.EmployeeID)
	if errors.Is(err, track.ErrUnknownEmployee) {
		jsonError(w, http.StatusNotFound, "invalid employee_id")
		return
	}
	if err != nil {
		slog.Error("permission lookup failed", "employee_id", req.EmployeeID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to look up permissions")
		return
	}

	jsonResponse(w, http.StatusOK, perms)
}

// UpdateStatus handles POST /api/update_status.
func (h *TrackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UID == "" || req.NewStatus == "" || req.EmployeeID == 0 {
		jsonError(w, http.StatusBadRequest, "uid, new_status, employee_id required")
		return
	}

	result, err := h.Engine.RequestTransition(r.Context(), req.UID, req.NewStatus, req.EmployeeID, req.Note)
	if err != nil {
		var forbidden *track.ForbiddenError
		switch {
		case errors.As(err, &forbidden):
			jsonResponse(w, http.StatusForbidden, map[string]any{
				"error":            forbidden.Error(),
				"allowed_statuses": forbidden.Allowed,
			})
		case errors.Is(err, track.ErrUnknownEmployee):
			jsonError(w, http.StatusNotFound, "invalid employee")
		case errors.Is(err, track.ErrItemNotFound):
			jsonError(w, http.StatusNotFound, "item not found")
		default:
			slog.Error("transition failed", "uid", req.UID, "status", req.NewStatus, "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	slog.Info("status updated",
		"uid", result.UID,
		"status", result.Status,
		"employee_id", req.EmployeeID,
		"role", result.Role)
	jsonResponse(w, http.StatusOK, updateStatusResponse{
		OK:        true,
		UID:       result.UID,
		NewStatus: result.Status,
		Role:      result.Role,
	})
}

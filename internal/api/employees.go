package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/itemtrail/itemtrail/internal/model"
	"github.com/itemtrail/itemtrail/internal/store"
)

// EmployeesHandler handles employee provisioning endpoints (admin only).
type EmployeesHandler struct {
	DB *sql.DB
}

type createEmployeeRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateEmployeeRequest struct {
	Role string `json:"role"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// List handles GET /api/employees.
func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := store.ListEmployees(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list employees", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}
	if employees == nil {
		employees = []model.Employee{}
	}
	jsonResponse(w, http.StatusOK, employees)
}

// Create handles POST /api/employees.
func (h *EmployeesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.FullName == "" || req.Password == "" || req.Role == "" {
		jsonError(w, http.StatusBadRequest, "username, full_name, password, and role required")
		return
	}

	if !model.ValidRole(req.Role) {
		jsonError(w, http.StatusBadRequest, "invalid role")
		return
	}

	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	employee, err := store.CreateEmployee(r.Context(), h.DB, req.Username, req.FullName, string(hash), req.Role)
	if err != nil {
		jsonError(w, http.StatusConflict, "username already exists")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("employee created", "by", claims.Username, "username", req.Username, "role", req.Role)
	jsonResponse(w, http.StatusCreated, employee)
}

// Get handles GET /api/employees/{id}.
func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	employee, err := store.GetEmployee(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get employee", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get employee")
		return
	}
	if employee == nil {
		jsonError(w, http.StatusNotFound, "employee not found")
		return
	}

	jsonResponse(w, http.StatusOK, employee)
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !model.ValidRole(req.Role) {
		jsonError(w, http.StatusBadRequest, "invalid role")
		return
	}

	if err := store.UpdateEmployeeRole(r.Context(), h.DB, id, req.Role); err != nil {
		slog.Error("failed to update employee", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update employee")
		return
	}

	employee, _ := store.GetEmployee(r.Context(), h.DB, id)
	claims := GetClaims(r.Context())
	if employee != nil {
		slog.Info("employee role updated", "by", claims.Username, "username", employee.Username, "new_role", req.Role)
	}
	jsonResponse(w, http.StatusOK, employee)
}

// ResetPassword handles PUT /api/employees/{id}/password.
func (h *EmployeesHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Password == "" {
		jsonError(w, http.StatusBadRequest, "password required")
		return
	}

	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if err := store.UpdateEmployeePassword(r.Context(), h.DB, id, string(hash)); err != nil {
		slog.Error("failed to reset password", "error", err)
		jsonError(w, http.StatusNotFound, "employee not found")
		return
	}

	claims := GetClaims(r.Context())
	target, _ := store.GetEmployee(r.Context(), h.DB, id)
	targetName := fmt.Sprintf("id:%d", id)
	if target != nil {
		targetName = target.Username
	}
	slog.Info("employee password reset", "by", claims.Username, "target", targetName)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password reset"})
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	// Prevent self-deletion.
	claims := GetClaims(r.Context())
	if claims != nil && claims.EmployeeID == id {
		jsonError(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	// Look up target name before deleting.
	target, _ := store.GetEmployee(r.Context(), h.DB, id)
	targetName := fmt.Sprintf("id:%d", id)
	if target != nil {
		targetName = target.Username
	}

	if err := store.DeleteEmployee(r.Context(), h.DB, id); err != nil {
		slog.Error("failed to delete employee", "error", err)
		jsonError(w, http.StatusNotFound, "employee not found")
		return
	}

	slog.Info("employee deleted", "by", claims.Username, "deleted", targetName)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}

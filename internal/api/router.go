package api

import (
	"database/sql"
	"net/http"

	"github.com/itemtrail/itemtrail/internal/model"
	"github.com/itemtrail/itemtrail/internal/track"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	engine := track.New(db)

	trackHandler := &TrackHandler{Engine: engine}
	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	employeesHandler := &EmployeesHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db, Engine: engine}

	authMW := AuthMiddleware(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Shop-floor endpoints used by the scanning app. The employee id travels
	// in the request body; the transition engine enforces permissions.
	mux.HandleFunc("POST /api/scan", trackHandler.Scan)
	mux.HandleFunc("POST /api/allowed_statuses", trackHandler.AllowedStatuses)
	mux.HandleFunc("POST /api/update_status", trackHandler.UpdateStatus)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Employees (admin only).
	mux.Handle("GET /api/employees", authMW(requireAdmin(http.HandlerFunc(employeesHandler.List))))
	mux.Handle("POST /api/employees", authMW(requireAdmin(http.HandlerFunc(employeesHandler.Create))))
	mux.Handle("GET /api/employees/{id}", authMW(requireAdmin(http.HandlerFunc(employeesHandler.Get))))
	mux.Handle("PUT /api/employees/{id}", authMW(requireAdmin(http.HandlerFunc(employeesHandler.Update))))
	mux.Handle("PUT /api/employees/{id}/password", authMW(requireAdmin(http.HandlerFunc(employeesHandler.ResetPassword))))
	mux.Handle("DELETE /api/employees/{id}", authMW(requireAdmin(http.HandlerFunc(employeesHandler.Delete))))

	// Items: read (any authenticated employee), registration and photo
	// upload (admin only).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{uid}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("GET /api/items/{uid}/history", authMW(http.HandlerFunc(itemsHandler.History)))
	mux.Handle("PUT /api/items/{uid}/photo", authMW(requireAdmin(http.HandlerFunc(itemsHandler.UploadPhoto))))
	mux.Handle("GET /api/items/{uid}/photo", authMW(http.HandlerFunc(itemsHandler.GetPhoto)))

	return mux
}

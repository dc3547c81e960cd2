package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/itemtrail/itemtrail/internal/imaging"
	"github.com/itemtrail/itemtrail/internal/model"
	"github.com/itemtrail/itemtrail/internal/store"
	"github.com/itemtrail/itemtrail/internal/track"
)

// ItemsHandler handles item registration and read endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Engine *track.Engine
}

type createItemRequest struct {
	UID           string `json:"uid"`
	ComponentType string `json:"component_type"`
	VendorID      string `json:"vendor_id"`
	LotNo         string `json:"lot_no"`
	SerialNo      string `json:"serial_no"`
	MfgDate       string `json:"mfg_date"` // YYYY-MM-DD
	WarrantyYears *int   `json:"warranty_years"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	items, err := store.ListItems(r.Context(), h.DB, status)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items: registering a freshly manufactured item.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UID == "" || req.ComponentType == "" {
		jsonError(w, http.StatusBadRequest, "uid and component_type required")
		return
	}

	item := &model.Item{
		UID:           req.UID,
		ComponentType: req.ComponentType,
		VendorID:      req.VendorID,
		LotNo:         req.LotNo,
		SerialNo:      req.SerialNo,
		WarrantyYears: req.WarrantyYears,
	}
	if req.MfgDate != "" {
		mfg, err := time.ParseInLocation("2006-01-02", req.MfgDate, time.UTC)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "mfg_date must be YYYY-MM-DD")
			return
		}
		item.MfgDate = &mfg
	}

	created, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		jsonError(w, http.StatusConflict, "uid already registered")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item registered", "by", claims.Username, "uid", created.UID, "component", created.ComponentType)
	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/items/{uid}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")

	item, err := store.GetItem(r.Context(), h.DB, uid)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// History handles GET /api/items/{uid}/history.
func (h *ItemsHandler) History(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")

	events, err := h.Engine.History(r.Context(), uid)
	if errors.Is(err, track.ErrItemNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.Error("failed to get item history", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item history")
		return
	}
	if events == nil {
		events = []model.StatusEvent{}
	}
	jsonResponse(w, http.StatusOK, events)
}

// UploadPhoto handles PUT /api/items/{uid}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemPhoto(r.Context(), h.DB, uid, photo.Data, photo.MIME); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		slog.Error("failed to save photo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/items/{uid}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")

	data, mime, err := store.GetItemPhoto(r.Context(), h.DB, uid)
	if err != nil {
		slog.Error("failed to get photo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itemtrail/itemtrail/internal/model"
)

// ErrItemNotFound is returned by write operations that target a missing UID.
var ErrItemNotFound = errors.New("item not found")

// CreateItem registers a manufactured item under its UID. The status
// projection starts at the schema default ("Manufactured").
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (uid, component_type, vendor_id, lot_no, serial_no, mfg_date, warranty_years)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.UID, item.ComponentType, item.VendorID, item.LotNo, item.SerialNo,
		nullTime(item.MfgDate), nullInt(item.WarrantyYears),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, item.UID)
}

// GetItem returns an item by UID.
func GetItem(ctx context.Context, db *sql.DB, uid string) (*model.Item, error) {
	item := &model.Item{}
	var vendorID, lotNo, serialNo, photoMime sql.NullString
	var mfgDate sql.NullTime
	var warrantyYears sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT uid, component_type, vendor_id, lot_no, serial_no, mfg_date,
		        warranty_years, current_status, photo_mime, created_at
		 FROM items WHERE uid = ?`, uid,
	).Scan(&item.UID, &item.ComponentType, &vendorID, &lotNo, &serialNo, &mfgDate,
		&warrantyYears, &item.CurrentStatus, &photoMime, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.VendorID = vendorID.String
	item.LotNo = lotNo.String
	item.SerialNo = serialNo.String
	item.PhotoMime = photoMime.String
	if mfgDate.Valid {
		item.MfgDate = &mfgDate.Time
	}
	if warrantyYears.Valid {
		years := int(warrantyYears.Int64)
		item.WarrantyYears = &years
	}
	return item, nil
}

// ListItems returns all items, optionally filtered by current status.
func ListItems(ctx context.Context, db *sql.DB, status string) ([]model.Item, error) {
	query := `SELECT uid, component_type, vendor_id, lot_no, serial_no, mfg_date,
	                 warranty_years, current_status, photo_mime, created_at
	          FROM items`
	var args []any

	if status != "" {
		query += ` WHERE current_status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY uid`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var vendorID, lotNo, serialNo, photoMime sql.NullString
		var mfgDate sql.NullTime
		var warrantyYears sql.NullInt64
		if err := rows.Scan(&item.UID, &item.ComponentType, &vendorID, &lotNo, &serialNo, &mfgDate,
			&warrantyYears, &item.CurrentStatus, &photoMime, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.VendorID = vendorID.String
		item.LotNo = lotNo.String
		item.SerialNo = serialNo.String
		item.PhotoMime = photoMime.String
		if mfgDate.Valid {
			item.MfgDate = &mfgDate.Time
		}
		if warrantyYears.Valid {
			years := int(warrantyYears.Int64)
			item.WarrantyYears = &years
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemPhoto stores an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, uid string, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ? WHERE uid = ?`,
		photo, mime, uid,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, uid string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE uid = ?`, uid,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

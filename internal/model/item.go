package model

import "time"

// Item represents one physical manufactured item, identified by the UID
// engraved on it. CurrentStatus is a denormalized projection of the latest
// status event and defaults to "Manufactured" for freshly registered items.
type Item struct {
	UID           string     `json:"uid"`
	ComponentType string     `json:"component_type"`
	VendorID      string     `json:"vendor_id,omitempty"`
	LotNo         string     `json:"lot_no,omitempty"`
	SerialNo      string     `json:"serial_no,omitempty"`
	MfgDate       *time.Time `json:"mfg_date,omitempty"`
	WarrantyYears *int       `json:"warranty_years,omitempty"`
	CurrentStatus string     `json:"current_status"`
	PhotoMime     string     `json:"photo_mime,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Item lifecycle statuses, in nominal lifecycle order. The order is
// informational only: permission checks gate who may set a status, never
// the sequence.
const (
	StatusManufactured      = "Manufactured"
	StatusReceived          = "Received"
	StatusInspected         = "Inspected"
	StatusInstalled         = "Installed"
	StatusServiced          = "Serviced"
	StatusServiceNeeded     = "Service Needed"
	StatusReplacementNeeded = "Replacement Needed"
	StatusReplaced          = "Replaced"
	StatusDiscarded         = "Discarded"
)

// Statuses is the closed enumeration of every assignable status.
var Statuses = []string{
	StatusManufactured,
	StatusReceived,
	StatusInspected,
	StatusInstalled,
	StatusServiced,
	StatusServiceNeeded,
	StatusReplacementNeeded,
	StatusReplaced,
	StatusDiscarded,
}

// ValidStatus reports whether s is part of the closed status enumeration.
func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ExpiryDate returns the warranty expiry for an item: manufacture date plus
// 365 days per warranty year (plain day arithmetic, not calendar years).
// If either input is missing there is no expiry and nil is returned.
func ExpiryDate(mfgDate *time.Time, warrantyYears *int) *time.Time {
	if mfgDate == nil || warrantyYears == nil {
		return nil
	}
	expiry := mfgDate.AddDate(0, 0, 365**warrantyYears)
	return &expiry
}

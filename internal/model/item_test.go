package model

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestExpiryDate(t *testing.T) {
	tests := []struct {
		name     string
		mfg      *time.Time
		warranty *int
		expected *time.Time
	}{
		{"two years", ptr(date(2020, 1, 1)), intPtr(2), ptr(date(2020, 1, 1).AddDate(0, 0, 730))},
		{"one year", ptr(date(2023, 6, 15)), intPtr(1), ptr(date(2023, 6, 15).AddDate(0, 0, 365))},
		{"zero warranty", ptr(date(2022, 3, 10)), intPtr(0), ptr(date(2022, 3, 10))},
		{"missing warranty", ptr(date(2022, 3, 10)), nil, nil},
		{"missing mfg date", nil, intPtr(5), nil},
		{"both missing", nil, nil, nil},
	}

	for _, tt := range tests {
		got := ExpiryDate(tt.mfg, tt.warranty)
		if (got == nil) != (tt.expected == nil) {
			t.Errorf("%s: ExpiryDate = %v, want %v", tt.name, got, tt.expected)
			continue
		}
		if got != nil && !got.Equal(*tt.expected) {
			t.Errorf("%s: ExpiryDate = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestExpiryDateUses365DayYears(t *testing.T) {
	// 2020 is a leap year; 365-day arithmetic lands one day short of the
	// calendar anniversary.
	mfg := date(2020, 1, 1)
	expiry := ExpiryDate(&mfg, intPtr(1))
	if expiry == nil {
		t.Fatal("expected expiry")
	}
	if !expiry.Equal(date(2020, 12, 31)) {
		t.Errorf("expected 2020-12-31, got %v", expiry)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "manufactured", "Broken", "received "} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int          { return &i }

package models

import (
	"testing"
	"time"
)

func TestEventCategoryValid(t *testing.T) {
	for _, c := range EventCategories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, c := range []EventCategory{"", "party", "School"} {
		if c.Valid() {
			t.Errorf("category %q should be invalid", c)
		}
	}
}

func TestEventCategoryDisplayMappingIsTotal(t *testing.T) {
	for _, c := range EventCategories {
		if c.Icon() == "" {
			t.Errorf("category %q has no icon", c)
		}
		if c.Color() == "" {
			t.Errorf("category %q has no color", c)
		}
	}
}

func TestColorValid(t *testing.T) {
	for _, c := range Colors {
		if !c.Valid() {
			t.Errorf("color %q should be valid", c)
		}
	}
	if Color("purple").Valid() {
		t.Error("color purple should be invalid")
	}
}

func TestSessionIsExpired(t *testing.T) {
	s := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if s.IsExpired() {
		t.Error("session expiring in an hour should not be expired")
	}
	s.ExpiresAt = time.Now().Add(-time.Minute)
	if !s.IsExpired() {
		t.Error("session that expired a minute ago should be expired")
	}
}

func TestApprenticeIsLocked(t *testing.T) {
	var a Apprentice
	if a.IsLocked() {
		t.Error("apprentice with no lock should not be locked")
	}
	past := time.Now().Add(-time.Minute)
	a.LockedUntil = &past
	if a.IsLocked() {
		t.Error("expired lock should not count as locked")
	}
	future := time.Now().Add(10 * time.Minute)
	a.LockedUntil = &future
	if !a.IsLocked() {
		t.Error("future lock should count as locked")
	}
}

func TestIsWeekendDay(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2025-06-03", false}, // Tuesday
		{"2025-06-06", false}, // Friday
		{"2025-06-07", true},  // Saturday
		{"2025-06-08", true},  // Sunday
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := IsWeekendDay(d); got != tt.want {
			t.Errorf("IsWeekendDay(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

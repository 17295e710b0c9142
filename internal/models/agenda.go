package models

import "time"

// EventCategory is the closed set of agenda event categories
type EventCategory string

const (
	CategorySchool   EventCategory = "school"
	CategoryFamily   EventCategory = "family"
	CategoryBirthday EventCategory = "birthday"
	CategoryMedical  EventCategory = "medical"
	CategoryFriends  EventCategory = "friends"
)

// EventCategories lists every valid category in display order
var EventCategories = []EventCategory{
	CategorySchool,
	CategoryFamily,
	CategoryBirthday,
	CategoryMedical,
	CategoryFriends,
}

// Valid reports whether c is a member of the closed category set
func (c EventCategory) Valid() bool {
	switch c {
	case CategorySchool, CategoryFamily, CategoryBirthday, CategoryMedical, CategoryFriends:
		return true
	}
	return false
}

// Icon returns the display icon for the category. Total over the valid
// set; invalid categories are rejected before they reach display code.
func (c EventCategory) Icon() string {
	switch c {
	case CategorySchool:
		return "📚"
	case CategoryFamily:
		return "👨‍👩‍👧‍👦"
	case CategoryBirthday:
		return "🎂"
	case CategoryMedical:
		return "🏥"
	case CategoryFriends:
		return "🎮"
	}
	return ""
}

// Color returns the display color name for the category
func (c EventCategory) Color() string {
	switch c {
	case CategorySchool:
		return "blue"
	case CategoryFamily:
		return "green"
	case CategoryBirthday:
		return "pink"
	case CategoryMedical:
		return "purple"
	case CategoryFriends:
		return "orange"
	}
	return ""
}

// AgendaEvent is a one-off calendar entry for an apprentice
type AgendaEvent struct {
	ID           int64         `json:"id"`
	ApprenticeID int64         `json:"apprentice_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         time.Time     `json:"date"`
	Time         string        `json:"time,omitempty"`
	Category     EventCategory `json:"category"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

package models

import "time"

// RoutineTask is a recurring checklist item shown on either weekday or
// weekend/holiday views. Completion persists until toggled back by hand.
type RoutineTask struct {
	ID           int64     `json:"id"`
	ApprenticeID int64     `json:"apprentice_id"`
	Title        string    `json:"title"`
	TimeOfDay    string    `json:"time_of_day"`
	Completed    bool      `json:"completed"`
	IsWeekend    bool      `json:"is_weekend"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsWeekendDay reports whether t falls on a Saturday or Sunday
func IsWeekendDay(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

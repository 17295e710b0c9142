package handlers

import (
	"time"

	"buba/internal/models"
)

// TutorView is the tutor profile exposed to the client
type TutorView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func tutorView(t *models.Tutor) TutorView {
	return TutorView{ID: t.ID, Email: t.Email, Name: t.Name}
}

// ApprenticeView is an apprentice profile without credential material
type ApprenticeView struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Age          int        `json:"age"`
	Gender       string     `json:"gender,omitempty"`
	SupportLevel string     `json:"support_level,omitempty"`
	Relationship string     `json:"relationship,omitempty"`
	Username     string     `json:"username"`
	Stars        int        `json:"stars"`
	MemoryRecord int        `json:"memory_record"`
	Locked       bool       `json:"locked"`
	LockedUntil  *time.Time `json:"locked_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func apprenticeView(a *models.Apprentice) ApprenticeView {
	v := ApprenticeView{
		ID:           a.ID,
		Name:         a.Name,
		Age:          a.Age,
		Gender:       a.Gender,
		SupportLevel: a.SupportLevel,
		Relationship: a.Relationship,
		Username:     a.Username,
		Stars:        a.Stars,
		MemoryRecord: a.MemoryRecord,
		Locked:       a.IsLocked(),
		CreatedAt:    a.CreatedAt,
	}
	if v.Locked {
		v.LockedUntil = a.LockedUntil
	}
	return v
}

func apprenticeViews(apprentices []*models.Apprentice) []ApprenticeView {
	views := make([]ApprenticeView, 0, len(apprentices))
	for _, a := range apprentices {
		views = append(views, apprenticeView(a))
	}
	return views
}

// AgendaEventView augments an event with its display mapping
type AgendaEventView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func agendaEventView(e *models.AgendaEvent) AgendaEventView {
	return AgendaEventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Time:        e.Time,
		Category:    string(e.Category),
		Icon:        e.Category.Icon(),
		Color:       e.Category.Color(),
	}
}

func agendaEventViews(events []*models.AgendaEvent) []AgendaEventView {
	views := make([]AgendaEventView, 0, len(events))
	for _, e := range events {
		views = append(views, agendaEventView(e))
	}
	return views
}

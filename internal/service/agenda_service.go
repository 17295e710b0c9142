package service

import (
	"errors"
	"fmt"
	"time"

	"buba/internal/models"
	"buba/internal/repository"
)

// ErrInvalidCategory is returned for a category outside the closed set
var ErrInvalidCategory = errors.New("invalid event category")

// AgendaService manages one-off calendar events for apprentices
type AgendaService struct {
	repo *repository.AgendaRepository
}

// NewAgendaService creates an agenda service
func NewAgendaService(repo *repository.AgendaRepository) *AgendaService {
	return &AgendaService{repo: repo}
}

// Create adds an agenda event after validating its category
func (s *AgendaService) Create(apprenticeID int64, title, description string, date time.Time, eventTime string, category models.EventCategory) (*models.AgendaEvent, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if category == "" {
		category = models.CategorySchool
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return s.repo.Create(&models.AgendaEvent{
		ApprenticeID: apprenticeID,
		Title:        title,
		Description:  description,
		Date:         date,
		Time:         eventTime,
		Category:     category,
	})
}

// Update edits an agenda event
func (s *AgendaService) Update(apprenticeID, eventID int64, title, description string, date time.Time, eventTime string, category models.EventCategory) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if !category.Valid() {
		return ErrInvalidCategory
	}
	return s.repo.Update(&models.AgendaEvent{
		ID:           eventID,
		ApprenticeID: apprenticeID,
		Title:        title,
		Description:  description,
		Date:         date,
		Time:         eventTime,
		Category:     category,
	})
}

// Delete removes an agenda event
func (s *AgendaService) Delete(apprenticeID, eventID int64) error {
	return s.repo.Delete(eventID, apprenticeID)
}

// List returns all events for an apprentice in chronological order
func (s *AgendaService) List(apprenticeID int64) ([]*models.AgendaEvent, error) {
	return s.repo.ListByApprentice(apprenticeID)
}

// ListForDate returns the events on a single day
func (s *AgendaService) ListForDate(apprenticeID int64, date time.Time) ([]*models.AgendaEvent, error) {
	return s.repo.ListByDate(apprenticeID, date)
}

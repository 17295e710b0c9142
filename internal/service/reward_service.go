package service

import (
	"errors"
	"fmt"

	"buba/internal/models"
)

// ErrInvalidAmount is returned when a star award is zero or negative
var ErrInvalidAmount = errors.New("star amount must be positive")

// StarStore persists reward state. Satisfied by
// repository.ApprenticeRepository; game services depend on this
// interface so star bookkeeping can be tested with a fake.
type StarStore interface {
	AddStars(apprenticeID int64, amount int) (int, error)
	UpdateMemoryRecord(apprenticeID int64, level int) (bool, error)
	GetProgress(apprenticeID int64) (*models.Progress, error)
}

// RewardService handles star bookkeeping shared by every activity
type RewardService struct {
	store StarStore
}

// NewRewardService creates a new reward service
func NewRewardService(store StarStore) *RewardService {
	return &RewardService{store: store}
}

// AddStars awards stars to an apprentice and returns the new balance.
// The store performs the increment atomically.
func (s *RewardService) AddStars(apprenticeID int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	total, err := s.store.AddStars(apprenticeID, amount)
	if err != nil {
		return 0, fmt.Errorf("awarding %d stars: %w", amount, err)
	}
	return total, nil
}

// RecordMemoryLevel raises the memory record to level if it beats the
// stored value. Returns true when a new record was set.
func (s *RewardService) RecordMemoryLevel(apprenticeID int64, level int) (bool, error) {
	if level <= 0 {
		return false, nil
	}
	newRecord, err := s.store.UpdateMemoryRecord(apprenticeID, level)
	if err != nil {
		return false, fmt.Errorf("updating memory record: %w", err)
	}
	return newRecord, nil
}

// Progress returns the apprentice's star balance and memory record
func (s *RewardService) Progress(apprenticeID int64) (*models.Progress, error) {
	p, err := s.store.GetProgress(apprenticeID)
	if err != nil {
		return nil, fmt.Errorf("getting progress: %w", err)
	}
	return p, nil
}

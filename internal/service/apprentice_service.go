package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"buba/internal/credentials"
	"buba/internal/models"
	"buba/internal/repository"
	"buba/internal/security"
	"buba/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrApprenticeNotFound = errors.New("apprentice not found")
)

// ApprenticeService manages apprentice profiles and their PIN logins
type ApprenticeService struct {
	repo        *repository.ApprenticeRepository
	maxAttempts int
	lockout     time.Duration
}

// NewApprenticeService creates an apprentice service
func NewApprenticeService(repo *repository.ApprenticeRepository, maxAttempts int, lockout time.Duration) *ApprenticeService {
	return &ApprenticeService{
		repo:        repo,
		maxAttempts: maxAttempts,
		lockout:     lockout,
	}
}

// Create registers an apprentice profile under a tutor. When username
// or PIN are empty they are generated. The plain-text PIN is returned
// once in the credentials and never stored.
func (s *ApprenticeService) Create(tutorID int64, name string, age int, gender, supportLevel, relationship, username, pin string) (*models.Apprentice, *models.ApprenticeCredentials, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateAge(age); err != nil {
		return nil, nil, err
	}

	if username == "" {
		generated, err := credentials.SuggestUsername(name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate username: %w", err)
		}
		username = generated
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, nil, err
	}

	if pin == "" {
		generated, err := credentials.GeneratePIN()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate pin: %w", err)
		}
		pin = generated
	}
	if err := validation.ValidatePIN(pin); err != nil {
		return nil, nil, err
	}

	pinHash, err := security.HashPassword(pin)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	apprentice, err := s.repo.Create(&models.Apprentice{
		TutorID:      tutorID,
		Name:         name,
		Age:          age,
		Gender:       gender,
		SupportLevel: supportLevel,
		Relationship: relationship,
		Username:     username,
		PINHash:      pinHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, err
	}

	return apprentice, &models.ApprenticeCredentials{Username: username, PIN: pin}, nil
}

// Login verifies a username and PIN. Failed attempts are counted and
// the account locks for the configured window once the limit is hit.
// The result never distinguishes a bad username from a bad PIN.
func (s *ApprenticeService) Login(username, pin string) (*models.LoginResult, error) {
	apprentice, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get apprentice: %w", err)
	}
	if apprentice == nil {
		return &models.LoginResult{Success: false, Message: "Nome de usuário ou PIN incorretos"}, nil
	}

	if apprentice.IsLocked() {
		return &models.LoginResult{
			Success: false,
			Message: "Conta bloqueada temporariamente. Tente novamente mais tarde.",
		}, nil
	}

	if !security.CheckPassword(apprentice.PINHash, pin) {
		count, err := s.repo.RecordFailedAttempt(apprentice.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to record attempt: %w", err)
		}
		if count >= s.maxAttempts {
			if err := s.repo.Lock(apprentice.ID, time.Now().Add(s.lockout)); err != nil {
				log.Printf("Warning: failed to lock apprentice %d: %v", apprentice.ID, err)
			}
			return &models.LoginResult{
				Success: false,
				Message: "Conta bloqueada temporariamente. Tente novamente mais tarde.",
			}, nil
		}
		left := s.maxAttempts - count
		return &models.LoginResult{
			Success:      false,
			Message:      "Nome de usuário ou PIN incorretos",
			AttemptsLeft: &left,
		}, nil
	}

	if err := s.repo.ResetAttempts(apprentice.ID); err != nil {
		log.Printf("Warning: failed to reset attempts for apprentice %d: %v", apprentice.ID, err)
	}

	return &models.LoginResult{
		Success:      true,
		ApprenticeID: apprentice.ID,
		Name:         apprentice.Name,
		TutorID:      apprentice.TutorID,
	}, nil
}

// Get returns an apprentice owned by the tutor
func (s *ApprenticeService) Get(tutorID, apprenticeID int64) (*models.Apprentice, error) {
	apprentice, err := s.repo.GetByID(apprenticeID)
	if err != nil {
		return nil, err
	}
	if apprentice == nil || apprentice.TutorID != tutorID {
		return nil, ErrApprenticeNotFound
	}
	return apprentice, nil
}

// GetByID returns an apprentice regardless of owner. Used by the
// apprentice-facing endpoints where identity comes from the token.
func (s *ApprenticeService) GetByID(apprenticeID int64) (*models.Apprentice, error) {
	apprentice, err := s.repo.GetByID(apprenticeID)
	if err != nil {
		return nil, err
	}
	if apprentice == nil {
		return nil, ErrApprenticeNotFound
	}
	return apprentice, nil
}

// List returns all of a tutor's apprentices
func (s *ApprenticeService) List(tutorID int64) ([]*models.Apprentice, error) {
	return s.repo.ListByTutor(tutorID)
}

// Update edits an apprentice's profile fields
func (s *ApprenticeService) Update(tutorID, apprenticeID int64, name string, age int, gender, supportLevel, relationship string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateAge(age); err != nil {
		return err
	}
	err := s.repo.Update(&models.Apprentice{
		ID:           apprenticeID,
		TutorID:      tutorID,
		Name:         name,
		Age:          age,
		Gender:       gender,
		SupportLevel: supportLevel,
		Relationship: relationship,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrApprenticeNotFound
	}
	return err
}

// Delete removes an apprentice and all of their data
func (s *ApprenticeService) Delete(tutorID, apprenticeID int64) error {
	err := s.repo.Delete(apprenticeID, tutorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrApprenticeNotFound
	}
	return err
}

// RegeneratePIN replaces an apprentice's PIN with a fresh one and
// clears any lockout. Returns the new plain-text PIN once.
func (s *ApprenticeService) RegeneratePIN(tutorID, apprenticeID int64) (string, error) {
	if _, err := s.Get(tutorID, apprenticeID); err != nil {
		return "", err
	}

	pin, err := credentials.GeneratePIN()
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	pinHash, err := security.HashPassword(pin)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	if err := s.repo.UpdatePIN(apprenticeID, pinHash); err != nil {
		return "", err
	}
	return pin, nil
}

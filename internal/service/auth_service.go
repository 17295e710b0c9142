package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"buba/internal/models"
	"buba/internal/repository"
	"buba/internal/security"
	"buba/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// AuthService handles tutor authentication
type AuthService struct {
	tutorRepo       *repository.TutorRepository
	sessionDuration time.Duration
	resetTokenTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(tutorRepo *repository.TutorRepository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		tutorRepo:       tutorRepo,
		sessionDuration: sessionDuration,
		resetTokenTTL:   time.Hour,
	}
}

// Register creates a new tutor account
func (s *AuthService) Register(email, password, name string) (*models.Tutor, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.tutorRepo.GetTutorByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tutor: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tutor, err := s.tutorRepo.CreateTutor(email, passwordHash, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create tutor: %w", err)
	}
	return tutor, nil
}

// Login authenticates a tutor and creates a session
func (s *AuthService) Login(email, password string) (*models.Session, *models.Tutor, error) {
	tutor, err := s.tutorRepo.GetTutorByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get tutor: %w", err)
	}
	if tutor == nil || tutor.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(tutor.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	return s.createSession(tutor)
}

// OAuthLogin signs a tutor in via an external identity, creating the
// account on first login and linking the identity to an existing
// account that shares the email.
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.Tutor, error) {
	tutor, err := s.tutorRepo.GetTutorByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up oauth identity: %w", err)
	}

	if tutor == nil {
		tutor, err = s.tutorRepo.GetTutorByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up tutor: %w", err)
		}
		if tutor != nil {
			if err := s.tutorRepo.LinkOAuth(tutor.ID, provider, subject); err != nil {
				return nil, nil, err
			}
		} else {
			tutor, err = s.tutorRepo.CreateTutor(email, "", name)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create tutor: %w", err)
			}
			if err := s.tutorRepo.LinkOAuth(tutor.ID, provider, subject); err != nil {
				return nil, nil, err
			}
		}
	}

	return s.createSession(tutor)
}

func (s *AuthService) createSession(tutor *models.Tutor) (*models.Session, *models.Tutor, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.tutorRepo.CreateSession(sessionID, tutor.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, tutor, nil
}

// ValidateSession checks a session and returns the associated tutor
func (s *AuthService) ValidateSession(sessionID string) (*models.Tutor, error) {
	session, err := s.tutorRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		if err := s.tutorRepo.DeleteSession(sessionID); err != nil {
			log.Printf("Warning: failed to delete expired session: %v", err)
		}
		return nil, ErrSessionExpired
	}

	tutor, err := s.tutorRepo.GetTutorByID(session.TutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}
	if tutor == nil {
		return nil, ErrSessionNotFound
	}
	return tutor, nil
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	return s.tutorRepo.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes expired sessions
func (s *AuthService) CleanupExpiredSessions() error {
	count, err := s.tutorRepo.DeleteExpiredSessions()
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Cleaned up %d expired sessions", count)
	}
	return nil
}

// RequestPasswordReset generates a reset token and emails it to the
// tutor. Unknown addresses are ignored silently so the endpoint can't
// be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	tutor, err := s.tutorRepo.GetTutorByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get tutor: %w", err)
	}
	if tutor == nil {
		return nil
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.tutorRepo.CreatePasswordResetToken(token, tutor.ID, time.Now().Add(s.resetTokenTTL)); err != nil {
		return err
	}

	if emailService != nil {
		if err := emailService.SendPasswordReset(ctx, tutor.Email, tutor.Name, token); err != nil {
			log.Printf("Warning: failed to send reset email to %s: %v", tutor.Email, err)
		}
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	reset, err := s.tutorRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if reset == nil || reset.Used || reset.IsExpired() {
		return ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.tutorRepo.UpdatePassword(reset.TutorID, passwordHash); err != nil {
		return err
	}
	return s.tutorRepo.MarkResetTokenUsed(token)
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

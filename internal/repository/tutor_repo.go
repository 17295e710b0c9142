package repository

import (
	"database/sql"
	"fmt"
	"time"

	"buba/internal/database"
	"buba/internal/models"
)

// TutorRepository handles database operations for tutors, sessions and
// password reset tokens
type TutorRepository struct {
	db *database.DB
}

// NewTutorRepository creates a new tutor repository
func NewTutorRepository(db *database.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

// CreateTutor inserts a new tutor account
func (r *TutorRepository) CreateTutor(email, passwordHash, name string) (*models.Tutor, error) {
	query := `
		INSERT INTO tutors (email, password_hash, name)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create tutor: %w", err)
	}

	return &models.Tutor{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetTutorByEmail retrieves a tutor by email address
func (r *TutorRepository) GetTutorByEmail(email string) (*models.Tutor, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at
		FROM tutors
		WHERE email = ?
	`
	return r.scanTutor(r.db.QueryRow(query, email))
}

// GetTutorByID retrieves a tutor by ID
func (r *TutorRepository) GetTutorByID(id int64) (*models.Tutor, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at
		FROM tutors
		WHERE id = ?
	`
	return r.scanTutor(r.db.QueryRow(query, id))
}

// GetTutorByOAuth retrieves a tutor by OAuth provider and subject
func (r *TutorRepository) GetTutorByOAuth(provider, subject string) (*models.Tutor, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at
		FROM tutors
		WHERE oauth_provider = ? AND oauth_subject = ?
	`
	return r.scanTutor(r.db.QueryRow(query, provider, subject))
}

func (r *TutorRepository) scanTutor(row *sql.Row) (*models.Tutor, error) {
	tutor := &models.Tutor{}
	err := row.Scan(
		&tutor.ID,
		&tutor.Email,
		&tutor.PasswordHash,
		&tutor.Name,
		&tutor.OAuthProvider,
		&tutor.OAuthSubject,
		&tutor.CreatedAt,
		&tutor.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tutor: %w", err)
	}
	return tutor, nil
}

// LinkOAuth associates an OAuth identity with an existing tutor
func (r *TutorRepository) LinkOAuth(tutorID int64, provider, subject string) error {
	query := `
		UPDATE tutors
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, provider, subject, tutorID); err != nil {
		return fmt.Errorf("failed to link oauth identity: %w", err)
	}
	return nil
}

// UpdatePassword replaces a tutor's password hash
func (r *TutorRepository) UpdatePassword(tutorID int64, passwordHash string) error {
	query := `
		UPDATE tutors
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, passwordHash, tutorID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a tutor
func (r *TutorRepository) CreateSession(sessionID string, tutorID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, tutor_id, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(query, sessionID, tutorID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &models.Session{
		ID:        sessionID,
		TutorID:   tutorID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *TutorRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, tutor_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.TutorID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *TutorRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions and returns the count
func (r *TutorRepository) DeleteExpiredSessions() (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}

// CreatePasswordResetToken stores a reset token for a tutor
func (r *TutorRepository) CreatePasswordResetToken(token string, tutorID int64, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, tutor_id, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(query, token, tutorID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken retrieves a reset token
func (r *TutorRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token, tutor_id, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token = ?
	`
	t := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&t.Token,
		&t.TutorID,
		&t.ExpiresAt,
		&t.Used,
		&t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return t, nil
}

// MarkResetTokenUsed marks a reset token as consumed
func (r *TutorRepository) MarkResetTokenUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = ? WHERE token = ?"
	if _, err := r.db.Exec(query, true, token); err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return nil
}

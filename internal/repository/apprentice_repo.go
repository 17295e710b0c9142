package repository

import (
	"database/sql"
	"fmt"
	"time"

	"buba/internal/database"
	"buba/internal/models"
)

// ApprenticeRepository handles database operations for apprentice profiles
type ApprenticeRepository struct {
	db *database.DB
}

// NewApprenticeRepository creates a new apprentice repository
func NewApprenticeRepository(db *database.DB) *ApprenticeRepository {
	return &ApprenticeRepository{db: db}
}

const apprenticeColumns = `id, tutor_id, name, age, gender, support_level, relationship,
	username, pin_hash, stars, memory_record, failed_attempts, locked_until, created_at, updated_at`

// Create inserts a new apprentice profile. Returns ErrDuplicate when the
// username is already taken.
func (r *ApprenticeRepository) Create(a *models.Apprentice) (*models.Apprentice, error) {
	query := `
		INSERT INTO apprentices (tutor_id, name, age, gender, support_level, relationship, username, pin_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		a.TutorID, a.Name, a.Age, a.Gender, a.SupportLevel, a.Relationship, a.Username, a.PINHash)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create apprentice: %w", err)
	}

	created := *a
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetByID retrieves an apprentice by ID
func (r *ApprenticeRepository) GetByID(id int64) (*models.Apprentice, error) {
	query := fmt.Sprintf("SELECT %s FROM apprentices WHERE id = ?", apprenticeColumns)
	return r.scanApprentice(r.db.QueryRow(query, id))
}

// GetByUsername retrieves an apprentice by username
func (r *ApprenticeRepository) GetByUsername(username string) (*models.Apprentice, error) {
	query := fmt.Sprintf("SELECT %s FROM apprentices WHERE username = ?", apprenticeColumns)
	return r.scanApprentice(r.db.QueryRow(query, username))
}

// ListByTutor retrieves all apprentices belonging to a tutor
func (r *ApprenticeRepository) ListByTutor(tutorID int64) ([]*models.Apprentice, error) {
	query := fmt.Sprintf("SELECT %s FROM apprentices WHERE tutor_id = ? ORDER BY name", apprenticeColumns)
	rows, err := r.db.Query(query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list apprentices: %w", err)
	}
	defer rows.Close()

	var apprentices []*models.Apprentice
	for rows.Next() {
		a, err := r.scanApprenticeRows(rows)
		if err != nil {
			return nil, err
		}
		apprentices = append(apprentices, a)
	}
	return apprentices, rows.Err()
}

// Update modifies an apprentice's profile fields
func (r *ApprenticeRepository) Update(a *models.Apprentice) error {
	query := `
		UPDATE apprentices
		SET name = ?, age = ?, gender = ?, support_level = ?, relationship = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tutor_id = ?
	`
	result, err := r.db.Exec(query, a.Name, a.Age, a.Gender, a.SupportLevel, a.Relationship, a.ID, a.TutorID)
	if err != nil {
		return fmt.Errorf("failed to update apprentice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an apprentice and, via cascading foreign keys, all of
// their routine tasks and agenda events.
func (r *ApprenticeRepository) Delete(id, tutorID int64) error {
	result, err := r.db.Exec("DELETE FROM apprentices WHERE id = ? AND tutor_id = ?", id, tutorID)
	if err != nil {
		return fmt.Errorf("failed to delete apprentice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePIN replaces an apprentice's PIN hash
func (r *ApprenticeRepository) UpdatePIN(id int64, pinHash string) error {
	query := `
		UPDATE apprentices
		SET pin_hash = ?, failed_attempts = 0, locked_until = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, pinHash, id); err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}
	return nil
}

// AddStars atomically increments an apprentice's star balance and
// returns the new total. The increment happens in a single UPDATE so
// concurrent awards never lose stars to a read-modify-write race.
func (r *ApprenticeRepository) AddStars(id int64, amount int) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE apprentices
		SET stars = stars + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, amount, id)
	if err != nil {
		return 0, fmt.Errorf("failed to add stars: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check star update: %w", err)
	}
	if rows == 0 {
		return 0, ErrNotFound
	}

	var total int
	if err := tx.QueryRow("SELECT stars FROM apprentices WHERE id = ?", id).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to read star total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit star update: %w", err)
	}
	return total, nil
}

// UpdateMemoryRecord raises the stored record to level if level beats
// it. The comparison happens inside the UPDATE, so concurrent runs
// can only ever raise the record. Returns true when a new record was set.
func (r *ApprenticeRepository) UpdateMemoryRecord(id int64, level int) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE apprentices
		SET memory_record = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND memory_record < ?
	`, level, id, level)
	if err != nil {
		return false, fmt.Errorf("failed to update memory record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check record update: %w", err)
	}
	return rows == 1, nil
}

// GetProgress retrieves the reward state for an apprentice
func (r *ApprenticeRepository) GetProgress(id int64) (*models.Progress, error) {
	var p models.Progress
	err := r.db.QueryRow("SELECT stars, memory_record FROM apprentices WHERE id = ?", id).
		Scan(&p.Stars, &p.MemoryRecord)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}

// RecordFailedAttempt increments the failed login counter and returns
// the new count.
func (r *ApprenticeRepository) RecordFailedAttempt(id int64) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE apprentices
		SET failed_attempts = failed_attempts + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id); err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}

	var count int
	if err := tx.QueryRow("SELECT failed_attempts FROM apprentices WHERE id = ?", id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to read attempt count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit attempt: %w", err)
	}
	return count, nil
}

// Lock sets a lockout deadline on an apprentice account
func (r *ApprenticeRepository) Lock(id int64, until time.Time) error {
	query := `
		UPDATE apprentices
		SET locked_until = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, until, id); err != nil {
		return fmt.Errorf("failed to lock apprentice: %w", err)
	}
	return nil
}

// ResetAttempts clears the failed-attempt counter and any lockout
func (r *ApprenticeRepository) ResetAttempts(id int64) error {
	query := `
		UPDATE apprentices
		SET failed_attempts = 0, locked_until = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to reset attempts: %w", err)
	}
	return nil
}

func (r *ApprenticeRepository) scanApprentice(row *sql.Row) (*models.Apprentice, error) {
	a := &models.Apprentice{}
	err := row.Scan(
		&a.ID, &a.TutorID, &a.Name, &a.Age, &a.Gender, &a.SupportLevel, &a.Relationship,
		&a.Username, &a.PINHash, &a.Stars, &a.MemoryRecord, &a.FailedAttempts, &a.LockedUntil,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get apprentice: %w", err)
	}
	return a, nil
}

func (r *ApprenticeRepository) scanApprenticeRows(rows *sql.Rows) (*models.Apprentice, error) {
	a := &models.Apprentice{}
	err := rows.Scan(
		&a.ID, &a.TutorID, &a.Name, &a.Age, &a.Gender, &a.SupportLevel, &a.Relationship,
		&a.Username, &a.PINHash, &a.Stars, &a.MemoryRecord, &a.FailedAttempts, &a.LockedUntil,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan apprentice: %w", err)
	}
	return a, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"buba/internal/database"
	"buba/internal/models"
)

// RoutineRepository handles database operations for routine tasks
type RoutineRepository struct {
	db *database.DB
}

// NewRoutineRepository creates a new routine repository
func NewRoutineRepository(db *database.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

// Create inserts a new routine task
func (r *RoutineRepository) Create(t *models.RoutineTask) (*models.RoutineTask, error) {
	query := `
		INSERT INTO routine_tasks (apprentice_id, title, time_of_day, is_weekend)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, t.ApprenticeID, t.Title, t.TimeOfDay, t.IsWeekend)
	if err != nil {
		return nil, fmt.Errorf("failed to create routine task: %w", err)
	}

	created := *t
	created.ID = id
	created.Completed = false
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetByID retrieves a routine task
func (r *RoutineRepository) GetByID(id int64) (*models.RoutineTask, error) {
	query := `
		SELECT id, apprentice_id, title, time_of_day, completed, is_weekend, created_at, updated_at
		FROM routine_tasks
		WHERE id = ?
	`
	t := &models.RoutineTask{}
	err := r.db.QueryRow(query, id).Scan(
		&t.ID, &t.ApprenticeID, &t.Title, &t.TimeOfDay, &t.Completed, &t.IsWeekend,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get routine task: %w", err)
	}
	return t, nil
}

// ListByApprentice retrieves every routine task for an apprentice,
// ordered by time of day then title.
func (r *RoutineRepository) ListByApprentice(apprenticeID int64) ([]*models.RoutineTask, error) {
	query := `
		SELECT id, apprentice_id, title, time_of_day, completed, is_weekend, created_at, updated_at
		FROM routine_tasks
		WHERE apprentice_id = ?
		ORDER BY time_of_day, title
	`
	rows, err := r.db.Query(query, apprenticeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routine tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.RoutineTask
	for rows.Next() {
		t := &models.RoutineTask{}
		if err := rows.Scan(
			&t.ID, &t.ApprenticeID, &t.Title, &t.TimeOfDay, &t.Completed, &t.IsWeekend,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan routine task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update modifies a routine task's editable fields
func (r *RoutineRepository) Update(t *models.RoutineTask) error {
	query := `
		UPDATE routine_tasks
		SET title = ?, time_of_day = ?, is_weekend = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND apprentice_id = ?
	`
	result, err := r.db.Exec(query, t.Title, t.TimeOfDay, t.IsWeekend, t.ID, t.ApprenticeID)
	if err != nil {
		return fmt.Errorf("failed to update routine task: %w", err)
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

// Delete removes a routine task
func (r *RoutineRepository) Delete(id, apprenticeID int64) error {
	result, err := r.db.Exec("DELETE FROM routine_tasks WHERE id = ? AND apprentice_id = ?", id, apprenticeID)
	if err != nil {
		return fmt.Errorf("failed to delete routine task: %w", err)
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

// SetCompleted sets a task's completion flag
func (r *RoutineRepository) SetCompleted(id, apprenticeID int64, completed bool) error {
	query := `
		UPDATE routine_tasks
		SET completed = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND apprentice_id = ?
	`
	result, err := r.db.Exec(query, completed, id, apprenticeID)
	if err != nil {
		return fmt.Errorf("failed to set task completion: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check completion update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompletedForDay sets the completion flag on every task for one
// day kind (weekday or weekend) in a single statement.
func (r *RoutineRepository) SetCompletedForDay(apprenticeID int64, isWeekend, completed bool) error {
	query := `
		UPDATE routine_tasks
		SET completed = ?, updated_at = CURRENT_TIMESTAMP
		WHERE apprentice_id = ? AND is_weekend = ?
	`
	if _, err := r.db.Exec(query, completed, apprenticeID, isWeekend); err != nil {
		return fmt.Errorf("failed to set day completion: %w", err)
	}
	return nil
}

// ResetAllCompletion clears the completed flag on every routine task.
// Used by the optional nightly reset.
func (r *RoutineRepository) ResetAllCompletion() (int64, error) {
	result, err := r.db.Exec("UPDATE routine_tasks SET completed = ?, updated_at = CURRENT_TIMESTAMP WHERE completed = ?", false, true)
	if err != nil {
		return 0, fmt.Errorf("failed to reset routine completion: %w", err)
	}
	return result.RowsAffected()
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"buba/internal/database"
	"buba/internal/models"
)

// AgendaRepository handles database operations for agenda events
type AgendaRepository struct {
	db *database.DB
}

// NewAgendaRepository creates a new agenda repository
func NewAgendaRepository(db *database.DB) *AgendaRepository {
	return &AgendaRepository{db: db}
}

// Create inserts a new agenda event
func (r *AgendaRepository) Create(e *models.AgendaEvent) (*models.AgendaEvent, error) {
	query := `
		INSERT INTO agenda_events (apprentice_id, title, description, event_date, event_time, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		e.ApprenticeID, e.Title, e.Description, e.Date.Format("2006-01-02"), e.Time, string(e.Category))
	if err != nil {
		return nil, fmt.Errorf("failed to create agenda event: %w", err)
	}

	created := *e
	created.ID = id
	created.CreatedAt = time.Now()
	created.UpdatedAt = time.Now()
	return &created, nil
}

// GetByID retrieves an agenda event
func (r *AgendaRepository) GetByID(id int64) (*models.AgendaEvent, error) {
	query := `
		SELECT id, apprentice_id, title, description, event_date, event_time, category, created_at, updated_at
		FROM agenda_events
		WHERE id = ?
	`
	return r.scanEvent(r.db.QueryRow(query, id))
}

// ListByApprentice retrieves every agenda event for an apprentice in
// chronological order.
func (r *AgendaRepository) ListByApprentice(apprenticeID int64) ([]*models.AgendaEvent, error) {
	query := `
		SELECT id, apprentice_id, title, description, event_date, event_time, category, created_at, updated_at
		FROM agenda_events
		WHERE apprentice_id = ?
		ORDER BY event_date, event_time
	`
	return r.list(query, apprenticeID)
}

// ListByDate retrieves the events for an apprentice on a single day
func (r *AgendaRepository) ListByDate(apprenticeID int64, date time.Time) ([]*models.AgendaEvent, error) {
	query := `
		SELECT id, apprentice_id, title, description, event_date, event_time, category, created_at, updated_at
		FROM agenda_events
		WHERE apprentice_id = ? AND event_date = ?
		ORDER BY event_time
	`
	return r.list(query, apprenticeID, date.Format("2006-01-02"))
}

func (r *AgendaRepository) list(query string, args ...interface{}) ([]*models.AgendaEvent, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda events: %w", err)
	}
	defer rows.Close()

	var events []*models.AgendaEvent
	for rows.Next() {
		e, err := r.scanEventRows(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update modifies an agenda event
func (r *AgendaRepository) Update(e *models.AgendaEvent) error {
	query := `
		UPDATE agenda_events
		SET title = ?, description = ?, event_date = ?, event_time = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND apprentice_id = ?
	`
	result, err := r.db.Exec(query,
		e.Title, e.Description, e.Date.Format("2006-01-02"), e.Time, string(e.Category), e.ID, e.ApprenticeID)
	if err != nil {
		return fmt.Errorf("failed to update agenda event: %w", err)
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

// Delete removes an agenda event
func (r *AgendaRepository) Delete(id, apprenticeID int64) error {
	result, err := r.db.Exec("DELETE FROM agenda_events WHERE id = ? AND apprentice_id = ?", id, apprenticeID)
	if err != nil {
		return fmt.Errorf("failed to delete agenda event: %w", err)
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

func (r *AgendaRepository) scanEvent(row *sql.Row) (*models.AgendaEvent, error) {
	e := &models.AgendaEvent{}
	var dateStr string
	err := row.Scan(
		&e.ID, &e.ApprenticeID, &e.Title, &e.Description, &dateStr, &e.Time, &e.Category,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda event: %w", err)
	}
	if e.Date, err = parseEventDate(dateStr); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *AgendaRepository) scanEventRows(rows *sql.Rows) (*models.AgendaEvent, error) {
	e := &models.AgendaEvent{}
	var dateStr string
	err := rows.Scan(
		&e.ID, &e.ApprenticeID, &e.Title, &e.Description, &dateStr, &e.Time, &e.Category,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan agenda event: %w", err)
	}
	if e.Date, err = parseEventDate(dateStr); err != nil {
		return nil, err
	}
	return e, nil
}

// parseEventDate accepts the date-only form plus the timestamp forms
// some drivers return for DATE columns.
func parseEventDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse event date %q", s)
}

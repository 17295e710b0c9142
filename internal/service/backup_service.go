package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"buba/internal/database"
)

// BackupData is the portable backup document. Sessions and reset
// tokens are deliberately excluded; they are ephemeral.
type BackupData struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exported_at"`
	Tutors       []TutorBackup      `json:"tutors"`
	Apprentices  []ApprenticeBackup `json:"apprentices"`
	RoutineTasks []RoutineBackup    `json:"routine_tasks"`
	AgendaEvents []AgendaBackup     `json:"agenda_events"`
}

// TutorBackup is a tutor record for backup
type TutorBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ApprenticeBackup is an apprentice record for backup
type ApprenticeBackup struct {
	ID           int64     `json:"id"`
	TutorID      int64     `json:"tutor_id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	SupportLevel string    `json:"support_level"`
	Relationship string    `json:"relationship"`
	Username     string    `json:"username"`
	PINHash      string    `json:"pin_hash"`
	Stars        int       `json:"stars"`
	MemoryRecord int       `json:"memory_record"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoutineBackup is a routine task record for backup
type RoutineBackup struct {
	ID           int64  `json:"id"`
	ApprenticeID int64  `json:"apprentice_id"`
	Title        string `json:"title"`
	TimeOfDay    string `json:"time_of_day"`
	Completed    bool   `json:"completed"`
	IsWeekend    bool   `json:"is_weekend"`
}

// AgendaBackup is an agenda event record for backup
type AgendaBackup struct {
	ID           int64  `json:"id"`
	ApprenticeID int64  `json:"apprentice_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	EventDate    string `json:"event_date"`
	EventTime    string `json:"event_time"`
	Category     string `json:"category"`
}

// BackupService exports and imports the full dataset as JSON,
// portable across database dialects.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a full backup to outputPath
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes a full backup to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportTutors(backup); err != nil {
		return fmt.Errorf("failed to export tutors: %w", err)
	}
	if err := s.exportApprentices(backup); err != nil {
		return fmt.Errorf("failed to export apprentices: %w", err)
	}
	if err := s.exportRoutineTasks(backup); err != nil {
		return fmt.Errorf("failed to export routine tasks: %w", err)
	}
	if err := s.exportAgendaEvents(backup); err != nil {
		return fmt.Errorf("failed to export agenda events: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d tutors, %d apprentices, %d routine tasks, %d agenda events",
		len(backup.Tutors), len(backup.Apprentices), len(backup.RoutineTasks), len(backup.AgendaEvents))
	return nil
}

// Import restores a backup from inputPath
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup from r. Records are inserted in
// dependency order with their original IDs.
func (s *BackupService) ImportFromReader(r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	if err := s.importTutors(backup.Tutors); err != nil {
		return fmt.Errorf("failed to import tutors: %w", err)
	}
	if err := s.importApprentices(backup.Apprentices); err != nil {
		return fmt.Errorf("failed to import apprentices: %w", err)
	}
	if err := s.importRoutineTasks(backup.RoutineTasks); err != nil {
		return fmt.Errorf("failed to import routine tasks: %w", err)
	}
	if err := s.importAgendaEvents(backup.AgendaEvents); err != nil {
		return fmt.Errorf("failed to import agenda events: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportTutors(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at FROM tutors ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t TutorBackup
		if err := rows.Scan(&t.ID, &t.Email, &t.PasswordHash, &t.Name, &t.OAuthProvider, &t.OAuthSubject, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return err
		}
		backup.Tutors = append(backup.Tutors, t)
	}
	return rows.Err()
}

func (s *BackupService) exportApprentices(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, tutor_id, name, age, gender, support_level, relationship, username, pin_hash, stars, memory_record, created_at, updated_at FROM apprentices ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a ApprenticeBackup
		if err := rows.Scan(&a.ID, &a.TutorID, &a.Name, &a.Age, &a.Gender, &a.SupportLevel, &a.Relationship, &a.Username, &a.PINHash, &a.Stars, &a.MemoryRecord, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
		backup.Apprentices = append(backup.Apprentices, a)
	}
	return rows.Err()
}

func (s *BackupService) exportRoutineTasks(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, apprentice_id, title, time_of_day, completed, is_weekend FROM routine_tasks ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t RoutineBackup
		if err := rows.Scan(&t.ID, &t.ApprenticeID, &t.Title, &t.TimeOfDay, &t.Completed, &t.IsWeekend); err != nil {
			return err
		}
		backup.RoutineTasks = append(backup.RoutineTasks, t)
	}
	return rows.Err()
}

func (s *BackupService) exportAgendaEvents(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, apprentice_id, title, description, event_date, event_time, category FROM agenda_events ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e AgendaBackup
		if err := rows.Scan(&e.ID, &e.ApprenticeID, &e.Title, &e.Description, &e.EventDate, &e.EventTime, &e.Category); err != nil {
			return err
		}
		backup.AgendaEvents = append(backup.AgendaEvents, e)
	}
	return rows.Err()
}

func (s *BackupService) importTutors(tutors []TutorBackup) error {
	for _, t := range tutors {
		_, err := s.db.Exec(`
			INSERT INTO tutors (id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.Email, t.PasswordHash, t.Name, t.OAuthProvider, t.OAuthSubject, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("tutor %d: %w", t.ID, err)
		}
	}
	log.Printf("Imported %d tutors", len(tutors))
	return nil
}

func (s *BackupService) importApprentices(apprentices []ApprenticeBackup) error {
	for _, a := range apprentices {
		_, err := s.db.Exec(`
			INSERT INTO apprentices (id, tutor_id, name, age, gender, support_level, relationship, username, pin_hash, stars, memory_record, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, a.TutorID, a.Name, a.Age, a.Gender, a.SupportLevel, a.Relationship, a.Username, a.PINHash, a.Stars, a.MemoryRecord, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("apprentice %d: %w", a.ID, err)
		}
	}
	log.Printf("Imported %d apprentices", len(apprentices))
	return nil
}

func (s *BackupService) importRoutineTasks(tasks []RoutineBackup) error {
	for _, t := range tasks {
		_, err := s.db.Exec(`
			INSERT INTO routine_tasks (id, apprentice_id, title, time_of_day, completed, is_weekend)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.ID, t.ApprenticeID, t.Title, t.TimeOfDay, t.Completed, t.IsWeekend)
		if err != nil {
			return fmt.Errorf("routine task %d: %w", t.ID, err)
		}
	}
	log.Printf("Imported %d routine tasks", len(tasks))
	return nil
}

func (s *BackupService) importAgendaEvents(events []AgendaBackup) error {
	for _, e := range events {
		_, err := s.db.Exec(`
			INSERT INTO agenda_events (id, apprentice_id, title, description, event_date, event_time, category)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.ApprenticeID, e.Title, e.Description, e.EventDate, e.EventTime, e.Category)
		if err != nil {
			return fmt.Errorf("agenda event %d: %w", e.ID, err)
		}
	}
	log.Printf("Imported %d agenda events", len(events))
	return nil
}

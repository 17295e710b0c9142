package models

import "time"

// Apprentice represents a learner profile managed by a tutor
type Apprentice struct {
	ID             int64
	TutorID        int64
	Name           string
	Age            int
	Gender         string
	SupportLevel   string
	Relationship   string
	Username       string
	PINHash        string
	Stars          int
	MemoryRecord   int
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLocked reports whether login is currently locked out
func (a *Apprentice) IsLocked() bool {
	return a.LockedUntil != nil && time.Now().Before(*a.LockedUntil)
}

// ApprenticeCredentials holds the generated login credentials.
// The PIN is only available in plain text at creation time.
type ApprenticeCredentials struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// LoginResult is the outcome of an apprentice login attempt
type LoginResult struct {
	Success      bool   `json:"success"`
	ApprenticeID int64  `json:"apprentice_id,omitempty"`
	Name         string `json:"name,omitempty"`
	TutorID      int64  `json:"tutor_id,omitempty"`
	Message      string `json:"message,omitempty"`
	AttemptsLeft *int   `json:"attempts_left,omitempty"`
}

// Progress is the reward state displayed by every activity screen
type Progress struct {
	Stars        int `json:"stars"`
	MemoryRecord int `json:"memory_record"`
}

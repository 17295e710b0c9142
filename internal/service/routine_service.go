package service

import (
	"fmt"
	"time"

	"buba/internal/models"
	"buba/internal/repository"
)

// RoutineService manages the recurring daily checklist. Tasks are
// partitioned into weekday and weekend sets; a date sees exactly the
// set matching its kind.
type RoutineService struct {
	repo *repository.RoutineRepository
}

// NewRoutineService creates a routine service
func NewRoutineService(repo *repository.RoutineRepository) *RoutineService {
	return &RoutineService{repo: repo}
}

// TasksForDate filters tasks down to the ones shown on date: weekend
// tasks on Saturdays and Sundays, weekday tasks otherwise.
func TasksForDate(tasks []*models.RoutineTask, date time.Time) []*models.RoutineTask {
	weekend := models.IsWeekendDay(date)
	var out []*models.RoutineTask
	for _, t := range tasks {
		if t.IsWeekend == weekend {
			out = append(out, t)
		}
	}
	return out
}

// AllCompleted reports whether every task in the list is completed.
// An empty list counts as not completed so toggle-all marks it done.
func AllCompleted(tasks []*models.RoutineTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// ListForDate returns the apprentice's tasks for the given date
func (s *RoutineService) ListForDate(apprenticeID int64, date time.Time) ([]*models.RoutineTask, error) {
	tasks, err := s.repo.ListByApprentice(apprenticeID)
	if err != nil {
		return nil, fmt.Errorf("listing routine tasks: %w", err)
	}
	return TasksForDate(tasks, date), nil
}

// ListAll returns every routine task for an apprentice, both day kinds
func (s *RoutineService) ListAll(apprenticeID int64) ([]*models.RoutineTask, error) {
	return s.repo.ListByApprentice(apprenticeID)
}

// Create adds a routine task
func (s *RoutineService) Create(apprenticeID int64, title, timeOfDay string, isWeekend bool) (*models.RoutineTask, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	return s.repo.Create(&models.RoutineTask{
		ApprenticeID: apprenticeID,
		Title:        title,
		TimeOfDay:    timeOfDay,
		IsWeekend:    isWeekend,
	})
}

// Update edits a routine task's fields
func (s *RoutineService) Update(apprenticeID, taskID int64, title, timeOfDay string, isWeekend bool) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	return s.repo.Update(&models.RoutineTask{
		ID:           taskID,
		ApprenticeID: apprenticeID,
		Title:        title,
		TimeOfDay:    timeOfDay,
		IsWeekend:    isWeekend,
	})
}

// Delete removes a routine task
func (s *RoutineService) Delete(apprenticeID, taskID int64) error {
	return s.repo.Delete(taskID, apprenticeID)
}

// Toggle flips one task's completion flag and returns the new value
func (s *RoutineService) Toggle(apprenticeID, taskID int64) (bool, error) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		return false, fmt.Errorf("getting task: %w", err)
	}
	if task == nil || task.ApprenticeID != apprenticeID {
		return false, repository.ErrNotFound
	}
	next := !task.Completed
	if err := s.repo.SetCompleted(taskID, apprenticeID, next); err != nil {
		return false, err
	}
	return next, nil
}

// ToggleAll sets every task for the date's day kind to the opposite of
// their collective state: if all are done they all reopen, otherwise
// they all complete.
func (s *RoutineService) ToggleAll(apprenticeID int64, date time.Time) (bool, error) {
	tasks, err := s.ListForDate(apprenticeID, date)
	if err != nil {
		return false, err
	}
	next := !AllCompleted(tasks)
	if err := s.repo.SetCompletedForDay(apprenticeID, models.IsWeekendDay(date), next); err != nil {
		return false, err
	}
	return next, nil
}

// ResetDailyCompletion reopens every completed task. Wired to the
// optional nightly reset; does nothing unless invoked.
func (s *RoutineService) ResetDailyCompletion() (int64, error) {
	return s.repo.ResetAllCompletion()
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"buba/internal/repository"
	"buba/internal/service"
)

// TasksHandler serves the apprentice-facing routine and agenda views
type TasksHandler struct {
	routineService *service.RoutineService
	agendaService  *service.AgendaService
}

// NewTasksHandler creates a new tasks handler
func NewTasksHandler(routineService *service.RoutineService, agendaService *service.AgendaService) *TasksHandler {
	return &TasksHandler{
		routineService: routineService,
		agendaService:  agendaService,
	}
}

// requestDate reads the optional ?date=YYYY-MM-DD parameter,
// defaulting to today.
func requestDate(r *http.Request) (time.Time, error) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		return time.Parse("2006-01-02", raw)
	}
	return time.Now(), nil
}

// Routine handles GET /api/tasks/routine?date=. Only the tasks for the
// date's day kind (weekday vs weekend) are returned.
func (h *TasksHandler) Routine(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	date, err := requestDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "", nil)
		return
	}

	tasks, err := h.routineService.ListForDate(session.ApprenticeID, date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "routine for date", err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// ToggleTask handles POST /api/tasks/routine/{taskID}/toggle
func (h *TasksHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	taskID, err := pathID(r, "taskID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID", "", nil)
		return
	}

	completed, err := h.routineService.Toggle(session.ApprenticeID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, ErrNotFound, "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "toggle task", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

// ToggleAll handles POST /api/tasks/routine/toggle-all?date=
func (h *TasksHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	date, err := requestDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "", nil)
		return
	}

	completed, err := h.routineService.ToggleAll(session.ApprenticeID, date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "toggle all tasks", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

// Agenda handles GET /api/tasks/agenda?date=. Without a date the full
// agenda is returned in chronological order.
func (h *TasksHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "", nil)
			return
		}
		events, err := h.agendaService.ListForDate(session.ApprenticeID, date)
		if err != nil {
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "agenda for date", err)
			return
		}
		respondJSON(w, http.StatusOK, agendaEventViews(events))
		return
	}

	events, err := h.agendaService.List(session.ApprenticeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "list agenda", err)
		return
	}
	respondJSON(w, http.StatusOK, agendaEventViews(events))
}

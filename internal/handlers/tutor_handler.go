package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"buba/internal/models"
	"buba/internal/repository"
	"buba/internal/service"
	"buba/internal/validation"
)

// TutorHandler serves the tutor-facing management API: apprentice
// profiles, routine tasks and agenda events.
type TutorHandler struct {
	apprenticeService *service.ApprenticeService
	routineService    *service.RoutineService
	agendaService     *service.AgendaService
	rewardService     *service.RewardService
	emailService      *service.EmailService
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(apprenticeService *service.ApprenticeService, routineService *service.RoutineService, agendaService *service.AgendaService, rewardService *service.RewardService, emailService *service.EmailService) *TutorHandler {
	return &TutorHandler{
		apprenticeService: apprenticeService,
		routineService:    routineService,
		agendaService:     agendaService,
		rewardService:     rewardService,
		emailService:      emailService,
	}
}

// ListApprentices handles GET /api/apprentices
func (h *TutorHandler) ListApprentices(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())

	apprentices, err := h.apprenticeService.List(tutor.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "list apprentices", err)
		return
	}
	respondJSON(w, http.StatusOK, apprenticeViews(apprentices))
}

// CreateApprentice handles POST /api/apprentices. The response carries
// the generated credentials; the PIN is not retrievable afterwards.
func (h *TutorHandler) CreateApprentice(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())

	var req struct {
		Name         string `json:"name"`
		Age          int    `json:"age"`
		Gender       string `json:"gender"`
		SupportLevel string `json:"support_level"`
		Relationship string `json:"relationship"`
		Username     string `json:"username"`
		PIN          string `json:"pin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	apprentice, creds, err := h.apprenticeService.Create(tutor.ID, req.Name, req.Age, req.Gender, req.SupportLevel, req.Relationship, req.Username, req.PIN)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "Username already taken", "", nil)
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "create apprentice", err)
		}
		return
	}

	if err := h.emailService.SendApprenticeCredentials(r.Context(), tutor.Email, tutor.Name, apprentice.Name, creds.Username, creds.PIN); err != nil {
		log.Printf("Warning: failed to send credentials email: %v", err)
	}

	respondJSON(w, http.StatusCreated, struct {
		Apprentice  ApprenticeView                `json:"apprentice"`
		Credentials *models.ApprenticeCredentials `json:"credentials"`
	}{apprenticeView(apprentice), creds})
}

// GetApprentice handles GET /api/apprentices/{id}
func (h *TutorHandler) GetApprentice(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}

	apprentice, err := h.apprenticeService.Get(tutor.ID, id)
	if err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}
	respondJSON(w, http.StatusOK, apprenticeView(apprentice))
}

// UpdateApprentice handles PUT /api/apprentices/{id}
func (h *TutorHandler) UpdateApprentice(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}

	var req struct {
		Name         string `json:"name"`
		Age          int    `json:"age"`
		Gender       string `json:"gender"`
		SupportLevel string `json:"support_level"`
		Relationship string `json:"relationship"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	if err := h.apprenticeService.Update(tutor.ID, id, req.Name, req.Age, req.Gender, req.SupportLevel, req.Relationship); err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			respondError(w, http.StatusBadRequest, vErr.Error(), "", nil)
			return
		}
		h.respondApprenticeError(w, err, "update apprentice")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteApprentice handles DELETE /api/apprentices/{id}
func (h *TutorHandler) DeleteApprentice(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}

	if err := h.apprenticeService.Delete(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "delete apprentice")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// RegeneratePIN handles POST /api/apprentices/{id}/pin
func (h *TutorHandler) RegeneratePIN(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}

	pin, err := h.apprenticeService.RegeneratePIN(tutor.ID, id)
	if err != nil {
		h.respondApprenticeError(w, err, "regenerate pin")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"pin": pin})
}

// GetApprenticeProgress handles GET /api/apprentices/{id}/progress
func (h *TutorHandler) GetApprenticeProgress(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	progress, err := h.rewardService.Progress(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "get progress", err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// ListRoutineTasks handles GET /api/apprentices/{id}/routine
func (h *TutorHandler) ListRoutineTasks(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	tasks, err := h.routineService.ListAll(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "list routine tasks", err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// CreateRoutineTask handles POST /api/apprentices/{id}/routine
func (h *TutorHandler) CreateRoutineTask(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	var req struct {
		Title     string `json:"title"`
		TimeOfDay string `json:"time_of_day"`
		IsWeekend bool   `json:"is_weekend"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	task, err := h.routineService.Create(id, req.Title, req.TimeOfDay, req.IsWeekend)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), "create routine task", err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// UpdateRoutineTask handles PUT /api/apprentices/{id}/routine/{taskID}
func (h *TutorHandler) UpdateRoutineTask(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	var req struct {
		Title     string `json:"title"`
		TimeOfDay string `json:"time_of_day"`
		IsWeekend bool   `json:"is_weekend"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	if err := h.routineService.Update(id, taskID, req.Title, req.TimeOfDay, req.IsWeekend); err != nil {
		h.respondNotFoundOr(w, err, "update routine task")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteRoutineTask handles DELETE /api/apprentices/{id}/routine/{taskID}
func (h *TutorHandler) DeleteRoutineTask(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	if err := h.routineService.Delete(id, taskID); err != nil {
		h.respondNotFoundOr(w, err, "delete routine task")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListAgendaEvents handles GET /api/apprentices/{id}/agenda
func (h *TutorHandler) ListAgendaEvents(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	events, err := h.agendaService.List(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "list agenda events", err)
		return
	}
	respondJSON(w, http.StatusOK, agendaEventViews(events))
}

// CreateAgendaEvent handles POST /api/apprentices/{id}/agenda
func (h *TutorHandler) CreateAgendaEvent(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	req, date, ok := h.decodeAgendaRequest(w, r)
	if !ok {
		return
	}

	event, err := h.agendaService.Create(id, req.Title, req.Description, date, req.Time, models.EventCategory(req.Category))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			respondError(w, http.StatusBadRequest, "Invalid event category", "", nil)
			return
		}
		respondError(w, http.StatusBadRequest, err.Error(), "create agenda event", err)
		return
	}
	respondJSON(w, http.StatusCreated, agendaEventView(event))
}

// UpdateAgendaEvent handles PUT /api/apprentices/{id}/agenda/{eventID}
func (h *TutorHandler) UpdateAgendaEvent(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	eventID, err := pathID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	req, date, ok := h.decodeAgendaRequest(w, r)
	if !ok {
		return
	}

	if err := h.agendaService.Update(id, eventID, req.Title, req.Description, date, req.Time, models.EventCategory(req.Category)); err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			respondError(w, http.StatusBadRequest, "Invalid event category", "", nil)
			return
		}
		h.respondNotFoundOr(w, err, "update agenda event")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteAgendaEvent handles DELETE /api/apprentices/{id}/agenda/{eventID}
func (h *TutorHandler) DeleteAgendaEvent(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid apprentice ID", "", nil)
		return
	}
	eventID, err := pathID(r, "eventID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid event ID", "", nil)
		return
	}
	if _, err := h.apprenticeService.Get(tutor.ID, id); err != nil {
		h.respondApprenticeError(w, err, "get apprentice")
		return
	}

	if err := h.agendaService.Delete(id, eventID); err != nil {
		h.respondNotFoundOr(w, err, "delete agenda event")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type agendaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
}

func (h *TutorHandler) decodeAgendaRequest(w http.ResponseWriter, r *http.Request) (*agendaRequest, time.Time, bool) {
	var req agendaRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return nil, time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", "", nil)
		return nil, time.Time{}, false
	}
	return &req, date, true
}

func (h *TutorHandler) respondApprenticeError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, service.ErrApprenticeNotFound) {
		respondError(w, http.StatusNotFound, "Apprentice not found", "", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
}

func (h *TutorHandler) respondNotFoundOr(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}
	respondError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

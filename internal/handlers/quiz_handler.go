package handlers

import (
	"errors"
	"net/http"

	"buba/internal/models"
	"buba/internal/service"
)

// QuizHandler serves the pre-authored quizzes
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Catalog handles GET /api/games/quizzes
func (h *QuizHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, service.QuizTypes)
}

// Start handles POST /api/games/quizzes/{type}/start
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	question, total, err := h.quizService.Start(session.ApprenticeID, r.PathValue("type"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownQuizType) {
			respondError(w, http.StatusNotFound, "Unknown quiz", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "quiz start", err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Question *models.QuizQuestion `json:"question"`
		Round    int                  `json:"round"`
		Total    int                  `json:"total"`
	}{question, 1, total})
}

// Answer handles POST /api/games/quizzes/answer
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	result, err := h.quizService.Answer(session.ApprenticeID, req.Answer)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGame) {
			respondError(w, http.StatusNotFound, "No active quiz", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "quiz answer", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

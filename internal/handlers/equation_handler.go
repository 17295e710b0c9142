package handlers

import (
	"errors"
	"net/http"

	"buba/internal/models"
	"buba/internal/service"
)

// EquationHandler serves the arithmetic drill
type EquationHandler struct {
	equationService *service.EquationService
}

// NewEquationHandler creates a new equation handler
func NewEquationHandler(equationService *service.EquationService) *EquationHandler {
	return &EquationHandler{equationService: equationService}
}

// Start handles POST /api/games/equations/start
func (h *EquationHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	eq, round, total := h.equationService.Start(session.ApprenticeID)
	respondJSON(w, http.StatusOK, struct {
		Equation *models.Equation `json:"equation"`
		Round    int              `json:"round"`
		Total    int              `json:"total"`
	}{eq, round, total})
}

// Submit handles POST /api/games/equations/answer
func (h *EquationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	var req struct {
		Answer int `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	result, err := h.equationService.Submit(session.ApprenticeID, req.Answer)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGame) {
			respondError(w, http.StatusNotFound, "No active drill", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "equation submit", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

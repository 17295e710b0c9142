package handlers

import (
	"errors"
	"net/http"

	"buba/internal/models"
	"buba/internal/service"
)

// MemoryHandler serves the color-sequence memory game
type MemoryHandler struct {
	memoryService *service.MemoryService
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(memoryService *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{memoryService: memoryService}
}

// Start handles POST /api/games/memory/start
func (h *MemoryHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.memoryService.Start(session.ApprenticeID))
}

// State handles GET /api/games/memory
func (h *MemoryHandler) State(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	state, err := h.memoryService.State(session.ApprenticeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "No active game", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Input handles POST /api/games/memory/input
func (h *MemoryHandler) Input(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	var req struct {
		Color string `json:"color"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	result, err := h.memoryService.Input(session.ApprenticeID, models.Color(req.Color))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidColor):
			respondError(w, http.StatusBadRequest, "Invalid color", "", nil)
		case errors.Is(err, service.ErrNoActiveGame):
			respondError(w, http.StatusNotFound, "No active game", "", nil)
		case errors.Is(err, service.ErrGameOver):
			respondError(w, http.StatusConflict, "Game is over", "", nil)
		default:
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "memory input", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, result)
}

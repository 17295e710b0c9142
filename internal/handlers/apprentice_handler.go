package handlers

import (
	"net/http"

	"buba/internal/security"
	"buba/internal/service"
)

// ApprenticeHandler serves the apprentice-facing session endpoints
type ApprenticeHandler struct {
	apprenticeService *service.ApprenticeService
	rewardService     *service.RewardService
	tokens            *security.TokenIssuer
}

// NewApprenticeHandler creates a new apprentice handler
func NewApprenticeHandler(apprenticeService *service.ApprenticeService, rewardService *service.RewardService, tokens *security.TokenIssuer) *ApprenticeHandler {
	return &ApprenticeHandler{
		apprenticeService: apprenticeService,
		rewardService:     rewardService,
		tokens:            tokens,
	}
}

// Login handles POST /api/apprentice/login. On success a session
// token accompanies the result; failure reports attempts_left until
// the lockout engages.
func (h *ApprenticeHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		PIN      string `json:"pin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	result, err := h.apprenticeService.Login(req.Username, req.PIN)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "apprentice login", err)
		return
	}

	if !result.Success {
		respondJSON(w, http.StatusUnauthorized, result)
		return
	}

	token, err := h.tokens.Issue(result.ApprenticeID, result.Name, result.TutorID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "issue apprentice token", err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Success      bool   `json:"success"`
		ApprenticeID int64  `json:"apprentice_id"`
		Name         string `json:"name"`
		Token        string `json:"token"`
		ExpiresInSec int    `json:"expires_in_sec"`
	}{
		Success:      true,
		ApprenticeID: result.ApprenticeID,
		Name:         result.Name,
		Token:        token,
		ExpiresInSec: int(h.tokens.TTL().Seconds()),
	})
}

// Me handles GET /api/apprentice/me
func (h *ApprenticeHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	apprentice, err := h.apprenticeService.GetByID(session.ApprenticeID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, ErrUnauthorized, "apprentice me", err)
		return
	}
	respondJSON(w, http.StatusOK, apprenticeView(apprentice))
}

// Progress handles GET /api/apprentice/progress
func (h *ApprenticeHandler) Progress(w http.ResponseWriter, r *http.Request) {
	session := GetApprenticeFromContext(r.Context())

	progress, err := h.rewardService.Progress(session.ApprenticeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "apprentice progress", err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

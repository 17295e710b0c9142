package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"buba/internal/security"
	"buba/internal/service"
	"buba/internal/validation"

	"golang.org/x/oauth2"
)

// AuthHandler serves tutor registration, login and password reset
type AuthHandler struct {
	authService     *service.AuthService
	emailService    *service.EmailService
	csrf            *security.CSRFGenerator
	sessionDuration time.Duration

	googleOAuth     *oauth2.Config
	redirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, csrf *security.CSRFGenerator, sessionDuration time.Duration, googleOAuth *oauth2.Config, redirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		emailService:    emailService,
		csrf:            csrf,
		sessionDuration: sessionDuration,
		googleOAuth:     googleOAuth,
		redirectBaseURL: redirectBaseURL,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	tutor, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(w, http.StatusConflict, "Email already registered", "", nil)
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "register tutor", err)
		}
		return
	}

	if err := h.emailService.SendWelcome(r.Context(), tutor.Email, tutor.Name); err != nil {
		log.Printf("Warning: failed to send welcome email: %v", err)
	}

	respondJSON(w, http.StatusCreated, tutorView(tutor))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	session, tutor, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "tutor login", err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, tutorView(tutor))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			log.Printf("Warning: failed to delete session: %v", err)
		}
	}
	http.SetCookie(w, security.ExpiredCookie(r, SessionCookieName))
	respondJSON(w, http.StatusNoContent, nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	tutor := GetTutorFromContext(r.Context())
	if tutor == nil {
		respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}
	respondJSON(w, http.StatusOK, tutorView(tutor))
}

// CSRFToken handles GET /api/auth/csrf. The token is bound to the
// current session; clients send it back in X-CSRF-Token.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
		return
	}
	token, err := h.csrf.GenerateToken(cookie.Value)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "generate csrf token", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"csrf_token": token})
}

// RequestPasswordReset handles POST /api/auth/forgot-password. Always
// responds 204 so the endpoint cannot confirm whether an email exists.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		log.Printf("Warning: password reset request failed: %v", err)
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSON, "", err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token", "", nil)
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondError(w, http.StatusInternalServerError, ErrInternalServerError, "reset password", err)
		}
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

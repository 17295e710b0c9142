package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"buba/internal/models"
	"buba/internal/security"
	"buba/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	TutorContextKey      ContextKey = "tutor"
	ApprenticeContextKey ContextKey = "apprentice"
)

// ApprenticeSession is the identity carried by an apprentice token
type ApprenticeSession struct {
	ApprenticeID int64
	Name         string
	TutorID      int64
}

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	tokens      *security.TokenIssuer
	csrf        *security.CSRFGenerator
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, tokens *security.TokenIssuer, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		tokens:      tokens,
		csrf:        csrf,
		limiter:     limiter,
	}
}

// RequireAuth requires a valid tutor session cookie
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		tutor, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.ExpiredCookie(r, SessionCookieName))
			respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), TutorContextKey, tutor)
		next(w, r.WithContext(ctx))
	}
}

// RequireApprentice requires a valid apprentice bearer token. A fresh
// token with a full lifetime is issued on every authenticated request,
// so the session expires only after 30 minutes of inactivity.
func (m *Middleware) RequireApprentice(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		apprenticeID, claims, err := m.tokens.Parse(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		refreshed, err := m.tokens.Issue(apprenticeID, claims.Name, claims.TutorID)
		if err != nil {
			log.Printf("Warning: failed to refresh apprentice token: %v", err)
		} else {
			w.Header().Set(ApprenticeTokenHeader, refreshed)
		}

		session := &ApprenticeSession{
			ApprenticeID: apprenticeID,
			Name:         claims.Name,
			TutorID:      claims.TutorID,
		}
		ctx := context.WithValue(r.Context(), ApprenticeContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect validates the CSRF token on mutating tutor requests.
// Safe methods pass through.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			respondError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		if !m.csrf.ValidateToken(cookie.Value, r.Header.Get("X-CSRF-Token")) {
			respondError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the per-IP budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// Logging logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// GetTutorFromContext retrieves the tutor from the request context
func GetTutorFromContext(ctx context.Context) *models.Tutor {
	tutor, ok := ctx.Value(TutorContextKey).(*models.Tutor)
	if !ok {
		return nil
	}
	return tutor
}

// GetApprenticeFromContext retrieves the apprentice session from the
// request context
func GetApprenticeFromContext(ctx context.Context) *ApprenticeSession {
	session, ok := ctx.Value(ApprenticeContextKey).(*ApprenticeSession)
	if !ok {
		return nil
	}
	return session
}

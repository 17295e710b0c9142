package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"buba/internal/security"
)

type googleUserInfo struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// StartGoogleOAuth handles GET /auth/google/start
func (h *AuthHandler) StartGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil || h.googleOAuth.ClientID == "" {
		respondError(w, http.StatusBadRequest, "Google login not configured", "", nil)
		return
	}

	state := security.GenerateSessionID()
	h.setTempCookie(w, r, "oauth_state", state, 10*time.Minute)

	config := h.oauthConfig(r)
	http.Redirect(w, r, config.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusSeeOther)
}

// GoogleOAuthCallback handles GET /auth/google/callback
func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondError(w, http.StatusBadRequest, "Invalid OAuth state", "", err)
		return
	}
	h.clearTempCookie(w, r, "oauth_state")

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Missing authorization code", "", nil)
		return
	}

	config := h.oauthConfig(r)
	token, err := config.Exchange(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusBadGateway, "OAuth exchange failed", "google oauth exchange", err)
		return
	}

	info, err := fetchGoogleUser(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to fetch user info", "google userinfo", err)
		return
	}
	if info.Email == "" || info.Subject == "" {
		respondError(w, http.StatusBadGateway, "Incomplete user info from Google", "", nil)
		return
	}
	if info.Name == "" {
		info.Name = info.Email
	}

	session, _, err := h.authService.OAuthLogin("google", info.Subject, info.Email, info.Name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError, "oauth login", err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) oauthConfig(r *http.Request) *oauth2.Config {
	config := *h.googleOAuth
	base := h.redirectBaseURL
	if base == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	config.RedirectURL = base + "/auth/google/callback"
	return &config
}

func fetchGoogleUser(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	var info googleUserInfo

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return info, fmt.Errorf("requesting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("decoding user info: %w", err)
	}
	return info, nil
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTempCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, security.ExpiredCookie(r, name))
}

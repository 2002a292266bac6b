package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexedwards/argon2id"

	mw "github.com/kalobtand/table-reservations/internal/http/middleware"
	"github.com/kalobtand/table-reservations/internal/http/response"
	"github.com/kalobtand/table-reservations/pkg/auth"
	"github.com/kalobtand/table-reservations/pkg/config"
	"github.com/kalobtand/table-reservations/pkg/logger"
)

type AuthHandler struct {
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login checks the admin credentials and issues a short-lived session
// token, both as a JSON body and as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid json")
		return
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if h.cfg.AdminEmail == "" || h.cfg.AdminPasswordHash == "" {
		logger.WarnContext(r.Context(), "Admin credentials not configured, refusing login")
		response.Unauthorized(w, "invalid credentials")
		return
	}

	match, err := argon2id.ComparePasswordAndHash(in.Password, h.cfg.AdminPasswordHash)
	if err != nil || !match || email != strings.ToLower(h.cfg.AdminEmail) {
		response.Unauthorized(w, "invalid credentials")
		return
	}

	token, err := auth.NewAdminToken(email, h.cfg.JWTSecret, h.cfg.SessionTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to sign session token", "error", err)
		response.InternalError(w)
		return
	}

	// Secure comes from config so plain-HTTP dev setups keep the cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	logger.InfoContext(r.Context(), "Admin logged in", "email", email)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResponse{
		Token:     token,
		ExpiresIn: int64(h.cfg.SessionTTL.Seconds()),
	})
}

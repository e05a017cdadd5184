// Package handler contains the HTTP layer: request parsing, response
// writing, and nothing else. Business rules live in internal/service.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mlaurent/pantry-planner/internal/auth"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/service"
)

// AuthHandler exposes registration, login, logout, and profile lookup.
type AuthHandler struct {
	svc      *service.AuthService
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. tokenTTL sets the lifetime of the
// session cookie to match the JWT expiry.
func NewAuthHandler(svc *service.AuthService, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, tokenTTL: tokenTTL, logger: logger}
}

// userResponse is the public view of a user — everything except the hash.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// HandleRegister creates an account.
//
// HTTP: POST /api/auth/register
// BODY: {"username":"...", "email":"...", "password":"..."}
// 201 → {"success":true, "token":"...", "data":{user}}
// 400 on missing fields or duplicate email/username.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Register(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Token:   result.Token,
		Data:    toUserResponse(result.User),
	})
}

// HandleLogin authenticates with email + password.
//
// HTTP: POST /api/auth/login
// 200 → {"success":true, "token":"...", "data":{user}}; 401 on bad credentials.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setTokenCookie(w, result.Token)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Token:   result.Token,
		Data:    toUserResponse(result.User),
	})
}

// HandleLogout clears the session cookie. The JWT itself stays valid until
// expiry (stateless tokens can't be revoked without a denylist); logout is a
// client-side affair plus this cookie removal.
//
// HTTP: POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeData(w, http.StatusOK, struct{}{})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/auth/me (authenticated)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	writeData(w, http.StatusOK, toUserResponse(user))
}

// setTokenCookie stores the JWT in an HttpOnly cookie as the fallback
// transport for browser clients. HttpOnly keeps it out of reach of injected
// scripts; API clients ignore it and use the Authorization header.
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

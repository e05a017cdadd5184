package handler

// RESPONSE HELPERS:
// Every API response uses the same envelope:
//
//	success: {"success":true, "data":..., "count":N?}
//	failure: {"success":false, "message":"...", "error":"validation_error"}
//
// "error" is the machine-readable kind, "message" the human-readable detail.
// One shape for everything means the frontend parses every response the same
// way regardless of status code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/auth"
	"github.com/mlaurent/pantry-planner/internal/model"
)

// envelope is the single response shape for the whole API.
type envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"` // list responses only
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"` // auth responses only
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// debugErrors controls whether unexpected (500) errors include the underlying
// detail in the response. Off in production — raw errors can leak SQL or
// file paths. Enabled from server setup when ENV=development.
var debugErrors = false

// EnableDebugErrors switches 500 responses to include the underlying error
// text. Call once during startup, before serving.
func EnableDebugErrors() {
	debugErrors = true
}

// writeJSON sends any payload with the given status. Headers and status must
// be set before the first body write — hence the fixed order here.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent — all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeData sends a success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeList sends a success envelope with a count field, the shape list
// endpoints use.
func writeList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// writeError maps a domain error to the appropriate HTTP status and sends
// the failure envelope.
//
// The service layer returns apperror sentinels; this is the one place they
// become status codes. Validation→400, Conflict→400 (the API contract treats
// duplicate email as a bad request, not 409), Unauthorized→401,
// Forbidden→403, NotFound→404, anything else→500 with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		kind := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			kind = "validation_error"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			kind = "conflict"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			kind = "unauthorized"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			kind = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			kind = "not_found"
		}

		writeJSON(w, status, envelope{
			Success: false,
			Message: appErr.Message,
			Error:   kind,
		})
		return
	}

	message := "an internal error occurred"
	if debugErrors {
		message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: message,
		Error:   "internal_error",
	})
}

// decodeBody parses a JSON request body into dst, returning a validation
// error the caller can hand straight to writeError.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	return nil
}

// requestUser pulls the authenticated user from the request context. Every
// caller sits behind auth.RequireAuth, so a missing user means the route was
// wired without the middleware; respond 401 and flag it in the log.
func requestUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		slog.Error("authenticated route reached without user in context",
			slog.String("path", r.URL.Path))
		writeJSON(w, http.StatusUnauthorized, envelope{
			Success: false,
			Message: "valid authentication required",
			Error:   "unauthorized",
		})
		return nil, false
	}
	return user, true
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/mlaurent/pantry-planner/internal/service"
)

// SuggestionHandler serves the derived shopping and restock suggestions.
type SuggestionHandler struct {
	svc    *service.SuggestionService
	logger *slog.Logger
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(svc *service.SuggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, logger: logger}
}

// HandleGet computes both suggestion lists from the caller's current plan,
// recipes, and inventory. Nothing is persisted — the response is a pure
// derivation, recomputed on every call.
//
// HTTP: GET /api/suggestions
// 200 → {"success":true, "data":{"shopping":[...], "lowStock":[...]}}
func (h *SuggestionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	suggestions, err := h.svc.Suggestions(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, suggestions)
}

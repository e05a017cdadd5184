package handler

import (
	"log/slog"
	"net/http"

	"github.com/mlaurent/pantry-planner/internal/service"
)

// WeekPlanHandler exposes the caller's single planning grid.
type WeekPlanHandler struct {
	svc    *service.WeekPlanService
	logger *slog.Logger
}

// NewWeekPlanHandler creates a WeekPlanHandler.
func NewWeekPlanHandler(svc *service.WeekPlanService, logger *slog.Logger) *WeekPlanHandler {
	return &WeekPlanHandler{svc: svc, logger: logger}
}

// HandleGet returns the caller's week plan, creating an empty grid on first
// access. Safe to call repeatedly — the same plan comes back every time.
//
// HTTP: GET /api/weekplan
func (h *WeekPlanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	plan, err := h.svc.Get(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, plan)
}

// HandlePut replaces the caller's entire grid.
//
// HTTP: PUT /api/weekplan
// BODY: {"monday":{"lunch":null,"dinner":"<recipeID>"}, ..., "sunday":{...}}
// 400 if a slot references an unknown recipe, 403 if it references someone
// else's.
func (h *WeekPlanHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	var in service.WeekPlanInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	plan, err := h.svc.Put(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, plan)
}

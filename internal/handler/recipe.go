package handler

import (
	"log/slog"
	"net/http"

	"github.com/mlaurent/pantry-planner/internal/service"
)

// RecipeHandler exposes recipe CRUD, same pattern as articles.
type RecipeHandler struct {
	svc    *service.RecipeService
	logger *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, logger: logger}
}

// HandleList returns the caller's recipes.
//
// HTTP: GET /api/recipes
func (h *RecipeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	recipes, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, recipes, len(recipes))
}

// HandleCreate adds a recipe to the caller's collection.
//
// HTTP: POST /api/recipes
// BODY: {"name":"Carbonara", "type":"diner", "instructions":"...",
//        "ingredients":[{"name":"Pâtes","quantity":250,"unit":"g"}]}
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	var in service.RecipeInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	recipe, err := h.svc.Create(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, recipe)
}

// HandleGet returns a single owned recipe.
//
// HTTP: GET /api/recipes/{id}
func (h *RecipeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	recipe, err := h.svc.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, recipe)
}

// HandleUpdate patches an owned recipe.
//
// HTTP: PUT /api/recipes/{id}
func (h *RecipeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	var patch service.RecipePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	recipe, err := h.svc.Update(r.Context(), user.ID, r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, recipe)
}

// HandleDelete removes an owned recipe and clears it from the week plan.
//
// HTTP: DELETE /api/recipes/{id}
func (h *RecipeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, struct{}{})
}

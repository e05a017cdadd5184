package handler

import (
	"log/slog"
	"net/http"

	"github.com/mlaurent/pantry-planner/internal/service"
)

// ArticleHandler exposes inventory CRUD. Every route is authenticated and
// scoped to the caller's own articles.
type ArticleHandler struct {
	svc    *service.ArticleService
	logger *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(svc *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

// HandleList returns the caller's articles.
//
// HTTP: GET /api/articles
// 200 → {"success":true, "count":N, "data":[...]}
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	articles, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, articles, len(articles))
}

// HandleCreate adds an article to the caller's inventory.
//
// HTTP: POST /api/articles
// BODY: {"name":"Pâtes", "quantity":2, "unit":"paquets", "threshold":1}
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	var in service.ArticleInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	article, err := h.svc.Create(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, article)
}

// HandleGet returns a single owned article.
//
// HTTP: GET /api/articles/{id}
// 404 if the article doesn't exist, 403 if it belongs to someone else.
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	article, err := h.svc.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, article)
}

// HandleUpdate patches an owned article. Absent body fields stay unchanged.
//
// HTTP: PUT /api/articles/{id}
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := requestUser(w, r)
	if !ok {
		return
	}

	var patch service.ArticlePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	article, err := h.svc.Update(r.Context(), user.ID, r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, article)
}

// HandleDelete removes an owned article.
//
// HTTP: DELETE /api/articles/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

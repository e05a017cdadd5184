package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlaurent/pantry-planner/internal/auth"
	"github.com/mlaurent/pantry-planner/internal/handler"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository/sqlite"
	"github.com/mlaurent/pantry-planner/internal/service"
)

// articleEnv bundles everything an article handler test needs: the handler
// behind the real auth middleware, the backing database, and a token per
// seeded user.
type articleEnv struct {
	db     *sqlite.DB
	tokens *auth.TokenService
	// authed wraps a HandlerFunc in RequireAuth, exactly as the router does
	authed func(http.HandlerFunc) http.Handler
	h      *handler.ArticleHandler
}

func newArticleEnv(t *testing.T) *articleEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 0)
	require.NoError(t, err)

	svc := service.NewArticleService(db, logger)
	requireAuth := auth.RequireAuth(tokens, db)

	return &articleEnv{
		db:     db,
		tokens: tokens,
		authed: func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) },
		h:      handler.NewArticleHandler(svc, logger),
	}
}

func (e *articleEnv) createUser(t *testing.T, username string) (*model.User, string) {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$fakehash",
	}
	require.NoError(t, e.db.CreateUser(context.Background(), user))
	token, err := e.tokens.Generate(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *articleEnv) createArticle(t *testing.T, userID, name string) *model.Article {
	t.Helper()
	article := &model.Article{
		Name: name, Quantity: 2, Unit: model.UnitKg, Threshold: 1, UserID: userID,
	}
	require.NoError(t, e.db.CreateArticle(context.Background(), article))
	return article
}

// getWithID issues an authenticated GET /api/articles/{id}.
func getWithID(token, id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/articles/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.SetPathValue("id", id)
	return req
}

func TestArticleHandleList(t *testing.T) {
	env := newArticleEnv(t)
	user, token := env.createUser(t, "marie")
	env.createArticle(t, user.ID, "Farine")
	env.createArticle(t, user.ID, "Lait")

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.authed(env.h.HandleList).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var env2 struct {
		Success bool            `json:"success"`
		Count   int             `json:"count"`
		Data    []model.Article `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env2))
	assert.True(t, env2.Success)
	assert.Equal(t, 2, env2.Count)
	assert.Len(t, env2.Data, 2)
}

func TestArticleHandleList_Unauthenticated(t *testing.T) {
	env := newArticleEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	rr := httptest.NewRecorder()
	env.authed(env.h.HandleList).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestArticleHandleGet_StatusMapping(t *testing.T) {
	env := newArticleEnv(t)
	marie, marieToken := env.createUser(t, "marie")
	_, paulToken := env.createUser(t, "paul")
	article := env.createArticle(t, marie.ID, "Farine")

	t.Run("owner gets 200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.authed(env.h.HandleGet).ServeHTTP(rr, getWithID(marieToken, article.ID))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("other user gets 403", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.authed(env.h.HandleGet).ServeHTTP(rr, getWithID(paulToken, article.ID))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing article gets 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		env.authed(env.h.HandleGet).ServeHTTP(rr, getWithID(marieToken, "nonexistent-id"))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

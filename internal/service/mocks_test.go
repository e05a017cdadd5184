package service

// Hand-written in-memory mocks for the repository interfaces.
//
// The services only see the interfaces, so these maps stand in for sqlite
// exactly the way the real DB does — including returning the same apperror
// values, which the services' error paths depend on.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// =========================================================================
// USERS
// =========================================================================

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("a user with this email already exists")
		}
		if u.Username == user.Username {
			return apperror.Conflict("a user with this username already exists")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

// =========================================================================
// ARTICLES
// =========================================================================

type mockArticleRepo struct {
	articles map[string]*model.Article
	nextID   int
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[string]*model.Article)}
}

func (m *mockArticleRepo) CreateArticle(_ context.Context, article *model.Article) error {
	m.nextID++
	article.ID = fmt.Sprintf("article-%d", m.nextID)
	stored := *article
	m.articles[article.ID] = &stored
	return nil
}

func (m *mockArticleRepo) GetArticleByID(_ context.Context, id string) (*model.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, apperror.NotFound("article", id)
	}
	result := *a
	return &result, nil
}

func (m *mockArticleRepo) ListArticlesByUser(_ context.Context, userID string) ([]model.Article, error) {
	result := []model.Article{}
	for _, a := range m.articles {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockArticleRepo) UpdateArticle(_ context.Context, article *model.Article) error {
	if _, ok := m.articles[article.ID]; !ok {
		return apperror.NotFound("article", article.ID)
	}
	stored := *article
	m.articles[article.ID] = &stored
	return nil
}

func (m *mockArticleRepo) DeleteArticle(_ context.Context, id string) error {
	if _, ok := m.articles[id]; !ok {
		return apperror.NotFound("article", id)
	}
	delete(m.articles, id)
	return nil
}

// =========================================================================
// RECIPES
// =========================================================================

type mockRecipeRepo struct {
	recipes map[string]*model.Recipe
	nextID  int
}

func newMockRecipeRepo() *mockRecipeRepo {
	return &mockRecipeRepo{recipes: make(map[string]*model.Recipe)}
}

func (m *mockRecipeRepo) CreateRecipe(_ context.Context, recipe *model.Recipe) error {
	m.nextID++
	recipe.ID = fmt.Sprintf("recipe-%d", m.nextID)
	stored := *recipe
	m.recipes[recipe.ID] = &stored
	return nil
}

func (m *mockRecipeRepo) GetRecipeByID(_ context.Context, id string) (*model.Recipe, error) {
	r, ok := m.recipes[id]
	if !ok {
		return nil, apperror.NotFound("recipe", id)
	}
	result := *r
	return &result, nil
}

func (m *mockRecipeRepo) ListRecipesByUser(_ context.Context, userID string) ([]model.Recipe, error) {
	result := []model.Recipe{}
	for _, r := range m.recipes {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRecipeRepo) UpdateRecipe(_ context.Context, recipe *model.Recipe) error {
	if _, ok := m.recipes[recipe.ID]; !ok {
		return apperror.NotFound("recipe", recipe.ID)
	}
	stored := *recipe
	m.recipes[recipe.ID] = &stored
	return nil
}

func (m *mockRecipeRepo) DeleteRecipe(_ context.Context, id string) error {
	if _, ok := m.recipes[id]; !ok {
		return apperror.NotFound("recipe", id)
	}
	delete(m.recipes, id)
	return nil
}

// =========================================================================
// WEEK PLANS
// =========================================================================

type mockWeekPlanRepo struct {
	plans  map[string]*model.WeekPlan // keyed by userID (one per user)
	nextID int
}

func newMockWeekPlanRepo() *mockWeekPlanRepo {
	return &mockWeekPlanRepo{plans: make(map[string]*model.WeekPlan)}
}

func (m *mockWeekPlanRepo) CreateWeekPlan(_ context.Context, plan *model.WeekPlan) error {
	if _, ok := m.plans[plan.UserID]; ok {
		return apperror.Conflict("week plan already exists for this user")
	}
	m.nextID++
	plan.ID = fmt.Sprintf("plan-%d", m.nextID)
	stored := *plan
	m.plans[plan.UserID] = &stored
	return nil
}

func (m *mockWeekPlanRepo) GetWeekPlanByUser(_ context.Context, userID string) (*model.WeekPlan, error) {
	p, ok := m.plans[userID]
	if !ok {
		return nil, apperror.NotFound("week plan", userID)
	}
	result := *p
	return &result, nil
}

func (m *mockWeekPlanRepo) UpdateWeekPlan(_ context.Context, plan *model.WeekPlan) error {
	existing, ok := m.plans[plan.UserID]
	if !ok || existing.ID != plan.ID {
		return apperror.NotFound("week plan", plan.ID)
	}
	stored := *plan
	m.plans[plan.UserID] = &stored
	return nil
}

func (m *mockWeekPlanRepo) ClearRecipeRefs(_ context.Context, userID, recipeID string) error {
	plan, ok := m.plans[userID]
	if !ok {
		return nil
	}
	for _, slot := range plan.Slots() {
		if *slot != nil && **slot == recipeID {
			*slot = nil
		}
	}
	return nil
}

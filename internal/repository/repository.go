// Package repository defines the storage interfaces the service layer
// programs against.
//
// Each entity gets its own small interface. The sqlite package implements all
// of them on one *DB value; tests implement them with in-memory maps. The
// service layer never imports a concrete storage package — swapping the
// backing store means changing one line in internal/server.
package repository

import (
	"context"

	"github.com/mlaurent/pantry-planner/internal/model"
)

// UserRepository stores user accounts. Create must fail with a conflict
// error when the email or username is already taken — uniqueness is enforced
// by the store, not by a racy check-then-insert in the service.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// ArticleRepository stores inventory items. List is scoped by owner; GetArticleByID
// is not — the service layer loads by ID and checks ownership itself so it
// can distinguish "not found" from "wrong owner".
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticleByID(ctx context.Context, id string) (*model.Article, error)
	ListArticlesByUser(ctx context.Context, userID string) ([]model.Article, error)
	UpdateArticle(ctx context.Context, article *model.Article) error
	DeleteArticle(ctx context.Context, id string) error
}

// RecipeRepository stores recipes, same access pattern as articles.
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error)
	ListRecipesByUser(ctx context.Context, userID string) ([]model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
}

// WeekPlanRepository stores the one-per-user planning grid.
//
// GetWeekPlanByUser returns apperror.ErrNotFound when the user has no plan yet; the
// service layer reacts by creating an empty one (lazy get-or-create).
// ClearRecipeRefs nulls every slot referencing recipeID in the owner's plan —
// the storage half of the recipe-delete cascade.
type WeekPlanRepository interface {
	CreateWeekPlan(ctx context.Context, plan *model.WeekPlan) error
	GetWeekPlanByUser(ctx context.Context, userID string) (*model.WeekPlan, error)
	UpdateWeekPlan(ctx context.Context, plan *model.WeekPlan) error
	ClearRecipeRefs(ctx context.Context, userID, recipeID string) error
}

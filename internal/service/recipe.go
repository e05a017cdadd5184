package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

// RecipeInput carries the fields for creating a recipe.
type RecipeInput struct {
	Name         string             `json:"name"`
	Type         model.MealType     `json:"type"`
	Instructions string             `json:"instructions"`
	Ingredients  []model.Ingredient `json:"ingredients"`
}

// RecipePatch carries the fields for a partial update; nil means unchanged.
// A non-nil empty Ingredients slice clears the list.
type RecipePatch struct {
	Name         *string             `json:"name"`
	Type         *model.MealType     `json:"type"`
	Instructions *string             `json:"instructions"`
	Ingredients  *[]model.Ingredient `json:"ingredients"`
}

// RecipeService handles the recipe business logic, including the week-plan
// cascade on delete.
type RecipeService struct {
	repo   repository.RecipeRepository
	plans  repository.WeekPlanRepository
	logger *slog.Logger
}

// NewRecipeService creates a RecipeService. The week-plan repository is
// needed because deleting a recipe must clear every plan slot that
// references it.
func NewRecipeService(
	repo repository.RecipeRepository,
	plans repository.WeekPlanRepository,
	logger *slog.Logger,
) *RecipeService {
	return &RecipeService{repo: repo, plans: plans, logger: logger}
}

// List returns all recipes owned by userID.
func (s *RecipeService) List(ctx context.Context, userID string) ([]model.Recipe, error) {
	recipes, err := s.repo.ListRecipesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list recipes",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// Create validates and saves a new recipe owned by userID.
func (s *RecipeService) Create(ctx context.Context, userID string, in RecipeInput) (*model.Recipe, error) {
	if err := validateRecipeFields(in.Name, in.Type, in.Ingredients); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		Name:         strings.TrimSpace(in.Name),
		Type:         in.Type,
		Instructions: strings.TrimSpace(in.Instructions),
		Ingredients:  in.Ingredients,
		UserID:       userID,
	}

	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		s.logger.Error("failed to create recipe",
			slog.String("name", recipe.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	s.logger.Info("recipe created",
		slog.String("id", recipe.ID),
		slog.String("name", recipe.Name),
	)

	return recipe, nil
}

// Get returns one recipe after checking ownership.
func (s *RecipeService) Get(ctx context.Context, userID, id string) (*model.Recipe, error) {
	return s.getOwnedRecipe(ctx, userID, id)
}

// Update applies a patch to an owned recipe.
func (s *RecipeService) Update(ctx context.Context, userID, id string, patch RecipePatch) (*model.Recipe, error) {
	recipe, err := s.getOwnedRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		recipe.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		recipe.Type = *patch.Type
	}
	if patch.Instructions != nil {
		recipe.Instructions = strings.TrimSpace(*patch.Instructions)
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = *patch.Ingredients
	}

	if err := validateRecipeFields(recipe.Name, recipe.Type, recipe.Ingredients); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRecipe(ctx, recipe); err != nil {
		s.logger.Error("failed to update recipe",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating recipe: %w", err)
	}

	s.logger.Info("recipe updated", slog.String("id", recipe.ID))

	return recipe, nil
}

// Delete removes an owned recipe and clears every week-plan slot that
// references it. The cascade runs first: if clearing fails, the recipe
// remains and the week plan is untouched; once the slots are cleared, a
// delete failure leaves no dangling references either way.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwnedRecipe(ctx, userID, id); err != nil {
		return err
	}

	if err := s.plans.ClearRecipeRefs(ctx, userID, id); err != nil {
		return fmt.Errorf("clearing week plan slots for recipe %s: %w", id, err)
	}

	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}

	s.logger.Info("recipe deleted", slog.String("id", id))
	return nil
}

func (s *RecipeService) getOwnedRecipe(ctx context.Context, userID, id string) (*model.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "recipe ID is required")
	}

	recipe, err := s.repo.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if recipe.UserID != userID {
		s.logger.Warn("cross-user recipe access denied",
			slog.String("recipeID", id),
			slog.String("ownerID", recipe.UserID),
			slog.String("callerID", userID),
		)
		return nil, apperror.Forbidden("you do not have access to this recipe")
	}

	return recipe, nil
}

func validateRecipeFields(name string, mealType model.MealType, ingredients []model.Ingredient) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ValidationFailed("name", "recipe name is required")
	}
	if len(name) > MaxNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("recipe name must be %d characters or less", MaxNameLength))
	}
	if !model.ValidMealType(mealType) {
		return apperror.ValidationFailed("type", fmt.Sprintf("unknown meal type %q", mealType))
	}

	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return apperror.ValidationFailed("ingredients",
				fmt.Sprintf("ingredient %d: name is required", i+1))
		}
		if ing.Quantity <= 0 {
			return apperror.ValidationFailed("ingredients",
				fmt.Sprintf("ingredient %d: quantity must be positive", i+1))
		}
		if !model.ValidUnit(ing.Unit) {
			return apperror.ValidationFailed("ingredients",
				fmt.Sprintf("ingredient %d: unknown unit %q", i+1, ing.Unit))
		}
	}

	return nil
}

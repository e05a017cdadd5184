package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

// WeekPlanInput is the 7×2 grid as the client submits it: seven named days,
// each with nullable lunch/dinner recipe IDs.
type WeekPlanInput struct {
	Monday    model.DayPlan `json:"monday"`
	Tuesday   model.DayPlan `json:"tuesday"`
	Wednesday model.DayPlan `json:"wednesday"`
	Thursday  model.DayPlan `json:"thursday"`
	Friday    model.DayPlan `json:"friday"`
	Saturday  model.DayPlan `json:"saturday"`
	Sunday    model.DayPlan `json:"sunday"`
}

// WeekPlanService manages the one-per-user planning grid.
type WeekPlanService struct {
	plans   repository.WeekPlanRepository
	recipes repository.RecipeRepository
	logger  *slog.Logger
}

// NewWeekPlanService creates a WeekPlanService. The recipe repository is
// needed to validate that every slot in a submitted grid references a recipe
// the caller actually owns.
func NewWeekPlanService(
	plans repository.WeekPlanRepository,
	recipes repository.RecipeRepository,
	logger *slog.Logger,
) *WeekPlanService {
	return &WeekPlanService{plans: plans, recipes: recipes, logger: logger}
}

// Get returns the user's week plan, creating an empty one on first access.
//
// IDEMPOTENT GET-OR-CREATE:
// Two concurrent first requests can both see "not found" and both try to
// create. The UNIQUE constraint on user_id makes the second insert fail with
// a conflict, which we resolve by re-reading — both callers end up with the
// same single plan. Repeated calls always return that one plan.
func (s *WeekPlanService) Get(ctx context.Context, userID string) (*model.WeekPlan, error) {
	plan, err := s.plans.GetWeekPlanByUser(ctx, userID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("fetching week plan: %w", err)
	}

	plan = &model.WeekPlan{UserID: userID}
	if err := s.plans.CreateWeekPlan(ctx, plan); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost the creation race — the plan exists now.
			return s.plans.GetWeekPlanByUser(ctx, userID)
		}
		return nil, fmt.Errorf("creating week plan: %w", err)
	}

	s.logger.Info("week plan created", slog.String("userID", userID))

	return plan, nil
}

// Put replaces the user's entire grid with the submitted one (last write
// wins). Every referenced recipe must exist and belong to the caller:
// an unknown ID is a validation error, someone else's recipe is Forbidden.
func (s *WeekPlanService) Put(ctx context.Context, userID string, in WeekPlanInput) (*model.WeekPlan, error) {
	if err := s.validateSlotRefs(ctx, userID, in); err != nil {
		return nil, err
	}

	// Get-or-create so a PUT before any GET still works.
	plan, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan.Monday = in.Monday
	plan.Tuesday = in.Tuesday
	plan.Wednesday = in.Wednesday
	plan.Thursday = in.Thursday
	plan.Friday = in.Friday
	plan.Saturday = in.Saturday
	plan.Sunday = in.Sunday

	if err := s.plans.UpdateWeekPlan(ctx, plan); err != nil {
		s.logger.Error("failed to update week plan",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating week plan: %w", err)
	}

	s.logger.Info("week plan updated", slog.String("userID", userID))

	return plan, nil
}

// validateSlotRefs checks every non-null slot in the submitted grid.
// Recipes are looked up once even when referenced from several slots.
func (s *WeekPlanService) validateSlotRefs(ctx context.Context, userID string, in WeekPlanInput) error {
	grid := model.WeekPlan{
		Monday: in.Monday, Tuesday: in.Tuesday, Wednesday: in.Wednesday,
		Thursday: in.Thursday, Friday: in.Friday, Saturday: in.Saturday,
		Sunday: in.Sunday,
	}

	for _, id := range grid.RecipeIDs() {
		recipe, err := s.recipes.GetRecipeByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.ValidationFailed("plan",
					fmt.Sprintf("recipe %s does not exist", id))
			}
			return fmt.Errorf("validating plan slot: %w", err)
		}
		if recipe.UserID != userID {
			return apperror.Forbidden("you do not have access to recipe " + id)
		}
	}

	return nil
}

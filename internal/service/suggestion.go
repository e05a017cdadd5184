package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

// ShoppingSuggestion is one aggregated ingredient line: the total quantity of
// an ingredient needed across every planned meal of the week.
type ShoppingSuggestion struct {
	Name     string     `json:"name"`
	Unit     model.Unit `json:"unit"`
	Quantity float64    `json:"quantity"`
}

// RestockSuggestion flags an article at or below its reorder threshold.
type RestockSuggestion struct {
	ArticleID         string     `json:"articleId"`
	Name              string     `json:"name"`
	Unit              model.Unit `json:"unit"`
	CurrentQuantity   float64    `json:"currentQuantity"`
	SuggestedQuantity float64    `json:"suggestedQuantity"`
}

// RestockPolicy decides how much to suggest buying for a low article:
// factor × threshold, but never less than the floor.
//
// The default (2×, floor 5) is a heuristic, not a law — it lives here as a
// named value precisely so deployments can tune it.
type RestockPolicy struct {
	Factor float64
	Floor  float64
}

// DefaultRestockPolicy is the stock restock heuristic: max(2×threshold, 5).
var DefaultRestockPolicy = RestockPolicy{Factor: 2, Floor: 5}

// Suggestions bundles both suggestion kinds for the API response.
type Suggestions struct {
	Shopping []ShoppingSuggestion `json:"shopping"`
	LowStock []RestockSuggestion  `json:"lowStock"`
}

// SuggestionService computes shopping and restock suggestions on demand.
// It holds no state between calls — same plan, recipes, and inventory always
// produce the same output.
type SuggestionService struct {
	plans    repository.WeekPlanRepository
	recipes  repository.RecipeRepository
	articles repository.ArticleRepository
	policy   RestockPolicy
	logger   *slog.Logger
}

// NewSuggestionService creates a SuggestionService with the given restock
// policy (pass DefaultRestockPolicy unless the deployment tunes it).
func NewSuggestionService(
	plans repository.WeekPlanRepository,
	recipes repository.RecipeRepository,
	articles repository.ArticleRepository,
	policy RestockPolicy,
	logger *slog.Logger,
) *SuggestionService {
	return &SuggestionService{
		plans:    plans,
		recipes:  recipes,
		articles: articles,
		policy:   policy,
		logger:   logger,
	}
}

// Suggestions loads the user's plan, recipes, and inventory, and derives both
// suggestion lists. A user with no plan yet simply gets an empty shopping
// list — no plan is created as a side effect of asking.
func (s *SuggestionService) Suggestions(ctx context.Context, userID string) (*Suggestions, error) {
	plan, err := s.plans.GetWeekPlanByUser(ctx, userID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("fetching week plan: %w", err)
	}

	recipes, err := s.recipes.ListRecipesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	articles, err := s.articles.ListArticlesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	return &Suggestions{
		Shopping: BuildShoppingList(plan, recipes),
		LowStock: BuildLowStock(articles, s.policy),
	}, nil
}

// BuildShoppingList sums ingredient quantities across every planned meal of
// the week.
//
// Lines are keyed by (name, unit): the same ingredient in the same unit sums
// into one line, while "Farine 500 g" and "Farine 1 kg" stay separate — no
// unit conversion ever happens. A recipe planned in three slots contributes
// its ingredients three times. Slots referencing a recipe that is not in the
// given set are skipped (the cascade makes that transient at worst).
//
// The result is sorted by name then unit so identical inputs produce
// identical output regardless of map iteration order.
func BuildShoppingList(plan *model.WeekPlan, recipes []model.Recipe) []ShoppingSuggestion {
	suggestions := []ShoppingSuggestion{}
	if plan == nil {
		return suggestions
	}

	byID := make(map[string]*model.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	type key struct {
		name string
		unit model.Unit
	}
	totals := make(map[key]float64)

	for _, slot := range plan.Slots() {
		if *slot == nil {
			continue
		}
		recipe, ok := byID[**slot]
		if !ok {
			continue
		}
		for _, ing := range recipe.Ingredients {
			totals[key{ing.Name, ing.Unit}] += ing.Quantity
		}
	}

	for k, total := range totals {
		suggestions = append(suggestions, ShoppingSuggestion{
			Name:     k.name,
			Unit:     k.unit,
			Quantity: total,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Name != suggestions[j].Name {
			return suggestions[i].Name < suggestions[j].Name
		}
		return suggestions[i].Unit < suggestions[j].Unit
	})

	return suggestions
}

// BuildLowStock flags every article whose quantity is at or below its
// threshold (out-of-stock articles included) and proposes a restock quantity
// per the policy. Output is sorted by article name.
func BuildLowStock(articles []model.Article, policy RestockPolicy) []RestockSuggestion {
	suggestions := []RestockSuggestion{}

	for _, a := range articles {
		if a.Quantity > a.Threshold {
			continue
		}
		suggested := a.Threshold * policy.Factor
		if suggested < policy.Floor {
			suggested = policy.Floor
		}
		suggestions = append(suggestions, RestockSuggestion{
			ArticleID:         a.ID,
			Name:              a.Name,
			Unit:              a.Unit,
			CurrentQuantity:   a.Quantity,
			SuggestedQuantity: suggested,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Name < suggestions[j].Name
	})

	return suggestions
}

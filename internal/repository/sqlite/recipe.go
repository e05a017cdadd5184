package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

var _ repository.RecipeRepository = (*DB)(nil)

// CreateRecipe inserts a new recipe. The ingredient list is marshalled to a
// JSON array for the ingredients column.
func (db *DB) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	now := time.Now()
	recipe.ID = xid.New().String()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	ingredients, err := marshalIngredients(recipe.Ingredients)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO recipes (id, name, type, instructions, ingredients, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.Name,
		string(recipe.Type),
		recipe.Instructions,
		ingredients,
		recipe.UserID,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting recipe: %w", err)
	}

	return nil
}

// GetRecipeByID retrieves a recipe regardless of owner; the service layer
// does the ownership check.
func (db *DB) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, type, instructions, ingredients, user_id, created_at, updated_at
		 FROM recipes WHERE id = ?`,
		id,
	)

	recipe, err := scanRecipe(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("recipe", id)
		}
		return nil, fmt.Errorf("sqlite: getting recipe %s: %w", id, err)
	}

	return recipe, nil
}

// ListRecipesByUser returns all recipes owned by userID, newest first.
func (db *DB) ListRecipesByUser(ctx context.Context, userID string) ([]model.Recipe, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, type, instructions, ingredients, user_id, created_at, updated_at
		 FROM recipes WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing recipes for user %s: %w", userID, err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning recipe row: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating recipe rows: %w", err)
	}

	return recipes, nil
}

// UpdateRecipe rewrites the mutable fields of a recipe and bumps updated_at.
func (db *DB) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	recipe.UpdatedAt = time.Now()

	ingredients, err := marshalIngredients(recipe.Ingredients)
	if err != nil {
		return err
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE recipes SET name = ?, type = ?, instructions = ?, ingredients = ?, updated_at = ?
		 WHERE id = ?`,
		recipe.Name,
		string(recipe.Type),
		recipe.Instructions,
		ingredients,
		recipe.UpdatedAt,
		recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating recipe %s: %w", recipe.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking recipe update result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("recipe", recipe.ID)
	}

	return nil
}

// DeleteRecipe removes a recipe by ID. The week-plan slot cascade is driven
// by the service layer via ClearRecipeRefs — this method only deletes the row.
func (db *DB) DeleteRecipe(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting recipe %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking recipe delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("recipe", id)
	}

	return nil
}

// scanRecipe reads one recipe row through the given Scan function, shared by
// the single-row and multi-row paths.
func scanRecipe(scan func(...any) error) (*model.Recipe, error) {
	var (
		r           model.Recipe
		ingredients string
	)

	if err := scan(
		&r.ID,
		&r.Name,
		&r.Type,
		&r.Instructions,
		&ingredients,
		&r.UserID,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("decoding ingredients for recipe %s: %w", r.ID, err)
	}

	return &r, nil
}

func marshalIngredients(ingredients []model.Ingredient) (string, error) {
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	data, err := json.Marshal(ingredients)
	if err != nil {
		return "", fmt.Errorf("sqlite: encoding ingredients: %w", err)
	}
	return string(data), nil
}

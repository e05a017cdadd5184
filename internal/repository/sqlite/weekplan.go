package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

var _ repository.WeekPlanRepository = (*DB)(nil)

// slotColumns lists the 14 meal-slot columns in the same order as
// model.WeekPlan.Slots(): lunch then dinner, per day, Monday→Sunday.
// The two orderings must stay in sync — planSlotArgs and scanWeekPlan
// rely on the correspondence.
var slotColumns = []string{
	"monday_lunch", "monday_dinner",
	"tuesday_lunch", "tuesday_dinner",
	"wednesday_lunch", "wednesday_dinner",
	"thursday_lunch", "thursday_dinner",
	"friday_lunch", "friday_dinner",
	"saturday_lunch", "saturday_dinner",
	"sunday_lunch", "sunday_dinner",
}

// CreateWeekPlan inserts a user's planning grid. The UNIQUE constraint on
// user_id guarantees at most one plan per user even under concurrent
// first-access requests; the loser surfaces a conflict the service layer
// resolves by re-reading.
func (db *DB) CreateWeekPlan(ctx context.Context, plan *model.WeekPlan) error {
	now := time.Now()
	plan.ID = xid.New().String()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `INSERT INTO week_plans (id, user_id, ` + strings.Join(slotColumns, ", ") + `, created_at, updated_at)
	          VALUES (?, ?` + strings.Repeat(", ?", len(slotColumns)) + `, ?, ?)`

	args := []any{plan.ID, plan.UserID}
	args = append(args, planSlotArgs(plan)...)
	args = append(args, plan.CreatedAt, plan.UpdatedAt)

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "week_plans.user_id") {
			return apperror.Conflict("week plan already exists for this user")
		}
		return fmt.Errorf("sqlite: inserting week plan: %w", err)
	}

	return nil
}

// GetWeekPlanByUser retrieves the single plan owned by userID.
// Returns apperror.ErrNotFound when the user has no plan yet.
func (db *DB) GetWeekPlanByUser(ctx context.Context, userID string) (*model.WeekPlan, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, `+strings.Join(slotColumns, ", ")+`, created_at, updated_at
		 FROM week_plans WHERE user_id = ?`,
		userID,
	)

	plan, err := scanWeekPlan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("week plan", userID)
		}
		return nil, fmt.Errorf("sqlite: getting week plan for user %s: %w", userID, err)
	}

	return plan, nil
}

// UpdateWeekPlan replaces the whole grid. The plan is always written whole —
// a single UPDATE per request means concurrent writes serialize in SQLite
// and the last one wins.
func (db *DB) UpdateWeekPlan(ctx context.Context, plan *model.WeekPlan) error {
	plan.UpdatedAt = time.Now()

	query := `UPDATE week_plans SET `
	for _, col := range slotColumns {
		query += col + ` = ?, `
	}
	query += `updated_at = ? WHERE id = ?`

	args := planSlotArgs(plan)
	args = append(args, plan.UpdatedAt, plan.ID)

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating week plan %s: %w", plan.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking week plan update result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("week plan", plan.ID)
	}

	return nil
}

// ClearRecipeRefs nulls every slot in the owner's plan that references
// recipeID. Runs as one statement so the cascade is atomic with respect to
// concurrent plan reads — a reader sees either all references or none.
func (db *DB) ClearRecipeRefs(ctx context.Context, userID, recipeID string) error {
	query := `UPDATE week_plans SET `
	args := make([]any, 0, 2*len(slotColumns)+1)
	for i, col := range slotColumns {
		if i > 0 {
			query += `, `
		}
		// Column names come from the fixed slotColumns list, never from input.
		query += col + ` = CASE WHEN ` + col + ` = ? THEN NULL ELSE ` + col + ` END`
		args = append(args, recipeID)
	}
	query += ` WHERE user_id = ?`
	args = append(args, userID)

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: clearing recipe %s from week plan: %w", recipeID, err)
	}

	// No plan row is fine — nothing referenced the recipe.
	return nil
}

// planSlotArgs converts the plan's 14 slots into driver arguments, nil for
// empty slots.
func planSlotArgs(plan *model.WeekPlan) []any {
	args := make([]any, 0, 14)
	for _, slot := range plan.Slots() {
		if *slot == nil {
			args = append(args, nil)
		} else {
			args = append(args, **slot)
		}
	}
	return args
}

// scanWeekPlan reads one plan row, mapping NULL slot columns back to nil.
func scanWeekPlan(row *sql.Row) (*model.WeekPlan, error) {
	var (
		p     model.WeekPlan
		slots [14]sql.NullString
	)

	dest := []any{&p.ID, &p.UserID}
	for i := range slots {
		dest = append(dest, &slots[i])
	}
	dest = append(dest, &p.CreatedAt, &p.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for i, slot := range p.Slots() {
		if slots[i].Valid {
			v := slots[i].String
			*slot = &v
		}
	}

	return &p, nil
}

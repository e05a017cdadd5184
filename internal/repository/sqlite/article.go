package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

var _ repository.ArticleRepository = (*DB)(nil)

// CreateArticle inserts a new inventory article. ID and timestamps are generated
// here and written back through the pointer.
func (db *DB) CreateArticle(ctx context.Context, article *model.Article) error {
	now := time.Now()
	article.ID = xid.New().String()
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO articles (id, name, quantity, unit, threshold, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID,
		article.Name,
		article.Quantity,
		string(article.Unit),
		article.Threshold,
		article.UserID,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting article: %w", err)
	}

	return nil
}

// GetArticleByID retrieves an article regardless of owner. Ownership is checked in
// the service layer, which needs to tell "missing" and "not yours" apart.
func (db *DB) GetArticleByID(ctx context.Context, id string) (*model.Article, error) {
	var a model.Article

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, quantity, unit, threshold, user_id, created_at, updated_at
		 FROM articles WHERE id = ?`,
		id,
	).Scan(
		&a.ID,
		&a.Name,
		&a.Quantity,
		&a.Unit,
		&a.Threshold,
		&a.UserID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("article", id)
		}
		return nil, fmt.Errorf("sqlite: getting article %s: %w", id, err)
	}

	return &a, nil
}

// ListArticlesByUser returns all articles owned by userID, newest first.
func (db *DB) ListArticlesByUser(ctx context.Context, userID string) ([]model.Article, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, quantity, unit, threshold, user_id, created_at, updated_at
		 FROM articles WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles for user %s: %w", userID, err)
	}
	defer rows.Close()

	// Non-nil empty slice so an empty list marshals as [] rather than null.
	articles := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Quantity,
			&a.Unit,
			&a.Threshold,
			&a.UserID,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning article row: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating article rows: %w", err)
	}

	return articles, nil
}

// UpdateArticle rewrites the mutable fields of an article and bumps updated_at.
// Returns apperror.ErrNotFound if the row no longer exists.
func (db *DB) UpdateArticle(ctx context.Context, article *model.Article) error {
	article.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE articles SET name = ?, quantity = ?, unit = ?, threshold = ?, updated_at = ?
		 WHERE id = ?`,
		article.Name,
		article.Quantity,
		string(article.Unit),
		article.Threshold,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating article %s: %w", article.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking article update result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("article", article.ID)
	}

	return nil
}

// DeleteArticle removes an article by ID.
func (db *DB) DeleteArticle(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting article %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking article delete result: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("article", id)
	}

	return nil
}

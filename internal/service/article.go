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

// MaxNameLength bounds article, recipe, and ingredient names.
const MaxNameLength = 100

// ArticleInput carries the fields for creating an inventory article.
type ArticleInput struct {
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      model.Unit `json:"unit"`
	Threshold float64    `json:"threshold"`
}

// ArticlePatch carries the fields for a partial update. Nil means
// "leave unchanged" — quantity 0 is a legitimate value (out of stock), so
// zero values can't double as absent ones.
type ArticlePatch struct {
	Name      *string     `json:"name"`
	Quantity  *float64    `json:"quantity"`
	Unit      *model.Unit `json:"unit"`
	Threshold *float64    `json:"threshold"`
}

// ArticleService handles the inventory business logic.
//
// OWNERSHIP ENFORCEMENT:
// Every by-ID operation loads the record first and compares its owner with
// the caller. A mismatch is Forbidden (403) — deliberately not NotFound: the
// record exists, the caller just may not touch it. List never needs the check
// because it queries by owner in the first place.
type ArticleService struct {
	repo   repository.ArticleRepository
	logger *slog.Logger
}

// NewArticleService creates an ArticleService.
func NewArticleService(repo repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{repo: repo, logger: logger}
}

// List returns all articles owned by userID.
func (s *ArticleService) List(ctx context.Context, userID string) ([]model.Article, error) {
	articles, err := s.repo.ListArticlesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list articles",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// Create validates and saves a new article owned by userID.
func (s *ArticleService) Create(ctx context.Context, userID string, in ArticleInput) (*model.Article, error) {
	if err := validateArticleFields(in.Name, in.Quantity, in.Unit, in.Threshold); err != nil {
		return nil, err
	}

	article := &model.Article{
		Name:      strings.TrimSpace(in.Name),
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Threshold: in.Threshold,
		UserID:    userID,
	}

	if err := s.repo.CreateArticle(ctx, article); err != nil {
		s.logger.Error("failed to create article",
			slog.String("name", article.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating article: %w", err)
	}

	s.logger.Info("article created",
		slog.String("id", article.ID),
		slog.String("name", article.Name),
	)

	return article, nil
}

// Get returns one article after checking ownership.
func (s *ArticleService) Get(ctx context.Context, userID, id string) (*model.Article, error) {
	return s.getOwned(ctx, userID, id)
}

// Update applies a patch to an owned article. Only non-nil patch fields
// change; every changed field is re-validated.
func (s *ArticleService) Update(ctx context.Context, userID, id string, patch ArticlePatch) (*model.Article, error) {
	article, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		article.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Quantity != nil {
		article.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		article.Unit = *patch.Unit
	}
	if patch.Threshold != nil {
		article.Threshold = *patch.Threshold
	}

	if err := validateArticleFields(article.Name, article.Quantity, article.Unit, article.Threshold); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateArticle(ctx, article); err != nil {
		s.logger.Error("failed to update article",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating article: %w", err)
	}

	s.logger.Info("article updated", slog.String("id", article.ID))

	return article, nil
}

// Delete removes an owned article.
func (s *ArticleService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}

	s.logger.Info("article deleted", slog.String("id", id))
	return nil
}

// getOwned loads an article and verifies the caller owns it.
func (s *ArticleService) getOwned(ctx context.Context, userID, id string) (*model.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "article ID is required")
	}

	article, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.UserID != userID {
		// Policy violation, not an empty result — log it as such.
		s.logger.Warn("cross-user article access denied",
			slog.String("articleID", id),
			slog.String("ownerID", article.UserID),
			slog.String("callerID", userID),
		)
		return nil, apperror.Forbidden("you do not have access to this article")
	}

	return article, nil
}

func validateArticleFields(name string, quantity float64, unit model.Unit, threshold float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ValidationFailed("name", "article name is required")
	}
	if len(name) > MaxNameLength {
		return apperror.ValidationFailed("name",
			fmt.Sprintf("article name must be %d characters or less", MaxNameLength))
	}
	if quantity < 0 {
		return apperror.ValidationFailed("quantity", "quantity cannot be negative")
	}
	if !model.ValidUnit(unit) {
		return apperror.ValidationFailed("unit", fmt.Sprintf("unknown unit %q", unit))
	}
	if threshold < 0 {
		return apperror.ValidationFailed("threshold", "threshold cannot be negative")
	}
	return nil
}

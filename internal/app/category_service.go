package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
)

// CategoryService handles the category commands and queries.
type CategoryService struct {
	categories repository.CategoryRepository
	users      repository.UserRepository
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(
	categories repository.CategoryRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *CategoryService {
	return &CategoryService{
		categories: categories,
		users:      users,
		logger:     logger,
	}
}

// CreateCategory creates a category for an existing user. The name must be
// unique among the user's categories.
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.CreateCategory")
	defer span.End()

	if err := validateCreateCategory(req); err != nil {
		return nil, err
	}
	ctype, _ := domain.ParseCategoryType(req.Type)

	if _, err := s.users.GetByID(ctx, req.UserID); errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound(domain.KindUser, req.UserID)
	} else if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	taken, err := s.categories.ExistsByNameAndUserID(ctx, name, req.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Field: "name", Value: name}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	category, err := domain.NewCategory(req.Name, req.Description, ctype, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("category.id", category.ID().String()))
	s.logger.InfoContext(ctx, "category created",
		slog.String("id", category.ID().String()),
		slog.String("type", ctype.String()),
	)
	return projectCategory(category), nil
}

// UpdateCategory applies a partial update. A blank name or type keeps the
// current value; a nil description pointer keeps the current description.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.UpdateCategory")
	defer span.End()

	if err := validateUpdateCategory(req); err != nil {
		return nil, err
	}

	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if notBlank(req.Name) {
		if err := category.ChangeName(req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := category.ChangeDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Type != "" {
		ctype, _ := domain.ParseCategoryType(req.Type)
		category.ChangeType(ctype)
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "category updated", slog.String("id", id.String()))
	return projectCategory(category), nil
}

// DeleteCategory removes a category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "CategoryService.DeleteCategory")
	defer span.End()

	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, category); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "category deleted", slog.String("id", id.String()))
	return nil
}

// GetCategoryByID returns the projection of one category. Absence surfaces as
// repository.ErrNotFound.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.GetCategoryByID")
	defer span.End()

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectCategory(category), nil
}

// ListCategoriesByUser returns the user's categories.
func (s *CategoryService) ListCategoriesByUser(ctx context.Context, userID uuid.UUID) ([]*CategoryResponse, error) {
	ctx, span := tracer.Start(ctx, "CategoryService.ListCategoriesByUser")
	defer span.End()

	categories, err := s.categories.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return projectCategories(categories), nil
}

func (s *CategoryService) loadCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound(domain.KindCategory, id)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

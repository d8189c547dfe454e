package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

// MemoryCategoryRepository provides an in-memory store for categories.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*domain.Category
}

// NewMemoryCategoryRepository creates an empty MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[uuid.UUID]*domain.Category),
	}
}

// GetByID retrieves a category by id.
func (r *MemoryCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	_, span := tracer.Start(ctx, "CategoryRepository.GetByID",
		trace.WithAttributes(attribute.String("category.id", id.String())),
	)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		span.SetAttributes(attribute.Bool("category.found", false))
		return nil, ErrNotFound
	}
	span.SetAttributes(attribute.Bool("category.found", true))
	return category, nil
}

// GetByUserID returns every category owned by the user.
func (r *MemoryCategoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	_, span := tracer.Start(ctx, "CategoryRepository.GetByUserID",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*domain.Category, 0)
	for _, category := range r.categories {
		if category.UserID() == userID {
			categories = append(categories, category)
		}
	}
	span.SetAttributes(attribute.Int("category.count", len(categories)))
	return categories, nil
}

// GetByNameAndUserID retrieves the user's category with the given name,
// compared case-insensitively.
func (r *MemoryCategoryRepository) GetByNameAndUserID(ctx context.Context, name string, userID uuid.UUID) (*domain.Category, error) {
	_, span := tracer.Start(ctx, "CategoryRepository.GetByNameAndUserID")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.categories {
		if category.UserID() == userID && strings.EqualFold(category.Name(), name) {
			span.SetAttributes(attribute.Bool("category.found", true))
			return category, nil
		}
	}
	span.SetAttributes(attribute.Bool("category.found", false))
	return nil, ErrNotFound
}

// ExistsByNameAndUserID reports whether the user already has a category with
// the given name.
func (r *MemoryCategoryRepository) ExistsByNameAndUserID(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	category, err := r.GetByNameAndUserID(ctx, name, userID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return category != nil, nil
}

// Save upserts a category by id.
func (r *MemoryCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	_, span := tracer.Start(ctx, "CategoryRepository.Save",
		trace.WithAttributes(attribute.String("category.id", category.ID().String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories[category.ID()] = category
	return nil
}

// Delete removes the category with the matching id.
func (r *MemoryCategoryRepository) Delete(ctx context.Context, category *domain.Category) error {
	_, span := tracer.Start(ctx, "CategoryRepository.Delete",
		trace.WithAttributes(attribute.String("category.id", category.ID().String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, category.ID())
	return nil
}

// DeleteByUserID removes every category owned by the user.
func (r *MemoryCategoryRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, span := tracer.Start(ctx, "CategoryRepository.DeleteByUserID",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, category := range r.categories {
		if category.UserID() == userID {
			delete(r.categories, id)
		}
	}
	return nil
}

// Count returns the current number of categories.
func (r *MemoryCategoryRepository) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.categories))
}

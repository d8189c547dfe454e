package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

// MemoryUserRepository provides an in-memory store for user aggregates.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by id.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	_, span := tracer.Start(ctx, "UserRepository.GetByID",
		trace.WithAttributes(attribute.String("user.id", id.String())),
	)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		span.SetAttributes(attribute.Bool("user.found", false))
		return nil, ErrNotFound
	}
	span.SetAttributes(attribute.Bool("user.found", true))
	return user, nil
}

// GetByEmail retrieves a user by its normalized email.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	_, span := tracer.Start(ctx, "UserRepository.GetByEmail")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email() == email {
			span.SetAttributes(attribute.Bool("user.found", true))
			return user, nil
		}
	}
	span.SetAttributes(attribute.Bool("user.found", false))
	return nil, ErrNotFound
}

// GetByUsername retrieves a user by username.
func (r *MemoryUserRepository) GetByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	_, span := tracer.Start(ctx, "UserRepository.GetByUsername")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username() == username {
			span.SetAttributes(attribute.Bool("user.found", true))
			return user, nil
		}
	}
	span.SetAttributes(attribute.Bool("user.found", false))
	return nil, ErrNotFound
}

// ExistsByEmail reports whether any user has the given email.
func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	user, err := r.GetByEmail(ctx, email)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// ExistsByUsername reports whether any user has the given username.
func (r *MemoryUserRepository) ExistsByUsername(ctx context.Context, username domain.Username) (bool, error) {
	user, err := r.GetByUsername(ctx, username)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetAll returns every stored user ordered by creation time.
func (r *MemoryUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	_, span := tracer.Start(ctx, "UserRepository.GetAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sortUsers(users)

	span.SetAttributes(attribute.Int("user.count", len(users)))
	return users, nil
}

// GetPaged returns a creation-ordered window of users.
func (r *MemoryUserRepository) GetPaged(ctx context.Context, skip, take int) ([]*domain.User, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if skip < 0 {
		skip = 0
	}
	if skip >= len(users) || take <= 0 {
		return []*domain.User{}, nil
	}
	end := skip + take
	if end > len(users) {
		end = len(users)
	}
	return users[skip:end], nil
}

// Save upserts a user by id.
func (r *MemoryUserRepository) Save(ctx context.Context, user *domain.User) error {
	_, span := tracer.Start(ctx, "UserRepository.Save",
		trace.WithAttributes(attribute.String("user.id", user.ID().String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID()] = user
	return nil
}

// Delete removes the user with the matching id.
func (r *MemoryUserRepository) Delete(ctx context.Context, user *domain.User) error {
	_, span := tracer.Start(ctx, "UserRepository.Delete",
		trace.WithAttributes(attribute.String("user.id", user.ID().String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, user.ID())
	return nil
}

// Count returns the current number of users.
func (r *MemoryUserRepository) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users))
}

func sortUsers(users []*domain.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt().Equal(users[j].CreatedAt()) {
			return users[i].ID().String() < users[j].ID().String()
		}
		return users[i].CreatedAt().Before(users[j].CreatedAt())
	})
}

package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agustinleonardi/TaskManagerPro/internal/auth"
	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
)

var tracer = otel.Tracer("github.com/agustinleonardi/TaskManagerPro/internal/app")

// UserService handles the user commands and queries. Each method is one use
// case: validate the raw request, load what it references, apply the domain
// mutation, persist, project.
type UserService struct {
	users      repository.UserRepository
	tasks      repository.TaskRepository
	categories repository.CategoryRepository
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	categories repository.CategoryRepository,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		tasks:      tasks,
		categories: categories,
		hasher:     hasher,
		logger:     logger,
	}
}

// CreateUser registers a new user. Fails with a ConflictError when the email
// or username is already taken.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.CreateUser")
	defer span.End()

	if err := validateCreateUser(req); err != nil {
		return nil, err
	}

	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	username, err := domain.NewUsername(req.Username)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Field: "email", Value: email.String()}
	}
	taken, err = s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Field: "username", Value: username.String()}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(email, username, hash)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID().String()))
	s.logger.InfoContext(ctx, "user created",
		slog.String("id", user.ID().String()),
		slog.String("username", username.String()),
	)
	return projectUser(user), nil
}

// UpdateUser applies a partial update. Blank fields keep their current value.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.UpdateUser")
	defer span.End()

	if err := validateUpdateUser(req); err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var email domain.Email
	var username domain.Username
	if notBlank(req.Email) {
		if email, err = domain.NewEmail(req.Email); err != nil {
			return nil, err
		}
		if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID() != id {
			return nil, &domain.ConflictError{Field: "email", Value: email.String()}
		}
	}
	if notBlank(req.Username) {
		if username, err = domain.NewUsername(req.Username); err != nil {
			return nil, err
		}
		if other, err := s.users.GetByUsername(ctx, username); err == nil && other.ID() != id {
			return nil, &domain.ConflictError{Field: "username", Value: username.String()}
		}
	}
	var hash string
	if req.Password != "" {
		if hash, err = s.hasher.Hash(req.Password); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if notBlank(req.Email) {
		user.ChangeEmail(email)
	}
	if notBlank(req.Username) {
		user.ChangeUsername(username)
	}
	if hash != "" {
		if err := user.ChangePasswordHash(hash); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user updated", slog.String("id", id.String()))
	return projectUser(user), nil
}

// DeleteUser removes a user together with their tasks and categories.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "UserService.DeleteUser")
	defer span.End()

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.tasks.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("id", id.String()))
	return nil
}

// GetUserByID returns the projection of one user. Absence surfaces as
// repository.ErrNotFound, an expected query outcome.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.GetUserByID")
	defer span.End()

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectUser(user), nil
}

// GetUserByEmail returns the projection of the user with the given email.
func (s *UserService) GetUserByEmail(ctx context.Context, rawEmail string) (*UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.GetUserByEmail")
	defer span.End()

	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return projectUser(user), nil
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.ListUsers")
	defer span.End()

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return projectUsers(users), nil
}

// ListUsersPaged returns a creation-ordered window of users.
func (s *UserService) ListUsersPaged(ctx context.Context, skip, take int) ([]*UserResponse, error) {
	ctx, span := tracer.Start(ctx, "UserService.ListUsersPaged")
	defer span.End()

	users, err := s.users.GetPaged(ctx, skip, take)
	if err != nil {
		return nil, err
	}
	return projectUsers(users), nil
}

func (s *UserService) loadUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound(domain.KindUser, id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

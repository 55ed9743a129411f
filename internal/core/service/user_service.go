package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// UserService implements admin-gated user management.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, caller authz.Caller) ([]*domain.User, error) {
	if err := authz.CanUsers(caller, authz.ActionList); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("users").Inc()
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *UserService) Create(ctx context.Context, caller authz.Caller, input ports.CreateUserInput) (*domain.User, error) {
	if err := authz.CanUsers(caller, authz.ActionCreate); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("users").Inc()
		return nil, err
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           ulid.Make().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(role)).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, caller authz.Caller, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if err := authz.CanUsers(caller, authz.ActionUpdate); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("users").Inc()
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, caller authz.Caller, id string) error {
	if err := authz.CanUsers(caller, authz.ActionDelete); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("users").Inc()
		return err
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

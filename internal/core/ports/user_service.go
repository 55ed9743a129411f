package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// CreateUserInput carries the fields for creating a user. Role defaults to
// USER when empty.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries the mutable user fields. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// UserService defines use-case operations on users. Every operation takes the
// caller so authorization is enforced at the service boundary, not only at
// the route.
type UserService interface {
	List(ctx context.Context, caller authz.Caller) ([]*domain.User, error)
	Create(ctx context.Context, caller authz.Caller, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, caller authz.Caller, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller authz.Caller, id string) error
}

package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/authz"
)

// CreateProjectInput carries the fields for creating a project. The caller
// becomes the manager and is automatically added to the member set.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput carries the mutable project fields. Nil fields are left
// unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService defines use-case operations on projects. Mutation responses
// return the full denormalized record so clients can replace their cached
// copy wholesale.
type ProjectService interface {
	List(ctx context.Context, caller authz.Caller) ([]*ProjectRecord, error)
	Create(ctx context.Context, caller authz.Caller, input CreateProjectInput) (*ProjectRecord, error)
	Update(ctx context.Context, caller authz.Caller, id string, input UpdateProjectInput) (*ProjectRecord, error)
	Delete(ctx context.Context, caller authz.Caller, id string) error
	AddMember(ctx context.Context, caller authz.Caller, projectID, userID string) (*ProjectRecord, error)
	RemoveMember(ctx context.Context, caller authz.Caller, projectID, userID string) (*ProjectRecord, error)
}

package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// CreateTaskInput carries the fields for creating a task. Status defaults to
// TODO when empty; AssignedTo may be nil for an unassigned task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	ProjectID   string
	AssignedTo  *string
}

// UpdateTaskInput carries the mutable task fields of a PATCH. Nil fields were
// not supplied. Which fields a caller may supply is decided by the
// authorization core per record.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssignedTo  *string
}

// TaskService defines use-case operations on tasks. ProjectID on List is an
// optional filter; for managers a filter naming a project they do not manage
// is a denial, not an empty result.
type TaskService interface {
	List(ctx context.Context, caller authz.Caller, projectID string) ([]*TaskRecord, error)
	Create(ctx context.Context, caller authz.Caller, input CreateTaskInput) (*TaskRecord, error)
	Update(ctx context.Context, caller authz.Caller, id string, input UpdateTaskInput) (*TaskRecord, error)
	Delete(ctx context.Context, caller authz.Caller, id string) error
}

package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// TaskRecord is the denormalized task view: assignee and project display
// fields are joined at read time. AssigneeName/AssigneeEmail are empty while
// the task is unassigned.
type TaskRecord struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        domain.TaskStatus `json:"status"`
	ProjectID     string            `json:"project_id"`
	ProjectName   string            `json:"project_name"`
	AssignedTo    *string           `json:"assigned_to"`
	AssigneeName  string            `json:"assignee_name,omitempty"`
	AssigneeEmail string            `json:"assignee_email,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// FindRecord returns the denormalized view of a single task.
	FindRecord(ctx context.Context, id string) (*TaskRecord, error)
	// List executes the scope predicate as part of the query; unauthorized
	// rows are never read.
	List(ctx context.Context, scope authz.TaskScope) ([]*TaskRecord, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

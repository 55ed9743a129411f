package ports

import (
	"context"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// MemberRecord is the member view embedded in project responses.
type MemberRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectRecord is the denormalized project view returned by list and
// mutation responses: manager display fields, the member set, and the task
// count are joined at read time so clients never need a second fetch.
type ProjectRecord struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	ManagerID    string         `json:"manager_id"`
	ManagerName  string         `json:"manager_name"`
	ManagerEmail string         `json:"manager_email"`
	Members      []MemberRecord `json:"members"`
	TaskCount    int64          `json:"task_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ProjectRepository defines persistence operations for projects and their
// membership relation.
type ProjectRepository interface {
	// Create inserts the project and its initial members in one transaction.
	Create(ctx context.Context, p *domain.Project, memberIDs ...string) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// FindRecord returns the denormalized view of a single project.
	FindRecord(ctx context.Context, id string) (*ProjectRecord, error)
	// List executes the scope predicate as part of the query; unauthorized
	// rows are never read.
	List(ctx context.Context, scope authz.ProjectScope) ([]*ProjectRecord, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	// AddMember has set semantics: adding an existing member is a no-op.
	AddMember(ctx context.Context, projectID, userID string) error
	// RemoveMember is idempotent: removing a non-member is a no-op.
	RemoveMember(ctx context.Context, projectID, userID string) error
}

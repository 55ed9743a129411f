package authz

import "github.com/taskflow/taskflow-api/internal/core/domain"

// Scopes are query predicates, not boolean gates. The store translates them
// into WHERE clauses so only authorized rows are ever read; list reads never
// fetch-then-filter in memory.

// ProjectScopeKind selects the visibility predicate for project lists.
type ProjectScopeKind int

const (
	// ProjectScopeAll matches every project.
	ProjectScopeAll ProjectScopeKind = iota
	// ProjectScopeManagerOrMember matches projects managed by UserID or
	// having UserID as a member.
	ProjectScopeManagerOrMember
	// ProjectScopeMemberOrAssignee matches projects having UserID as a
	// member or containing at least one task assigned to UserID.
	ProjectScopeMemberOrAssignee
)

// ProjectScope is the visibility predicate for a project list read.
type ProjectScope struct {
	Kind   ProjectScopeKind
	UserID string
}

// ProjectsScope computes the caller's project visibility.
func ProjectsScope(c Caller) ProjectScope {
	switch c.Role {
	case domain.RoleAdmin:
		return ProjectScope{Kind: ProjectScopeAll}
	case domain.RoleManager:
		return ProjectScope{Kind: ProjectScopeManagerOrMember, UserID: c.ID}
	default:
		return ProjectScope{Kind: ProjectScopeMemberOrAssignee, UserID: c.ID}
	}
}

// TaskScopeKind selects the visibility predicate for task lists.
type TaskScopeKind int

const (
	// TaskScopeAll matches every task.
	TaskScopeAll TaskScopeKind = iota
	// TaskScopeManagedProjects matches tasks belonging to projects managed
	// by UserID.
	TaskScopeManagedProjects
	// TaskScopeAssignee matches tasks assigned to UserID.
	TaskScopeAssignee
)

// TaskScope is the visibility predicate for a task list read. ProjectID, when
// non-empty, further restricts the result to one project; for managers the
// service must have cleared that filter via CanFilterTasksByProject first.
type TaskScope struct {
	Kind      TaskScopeKind
	UserID    string
	ProjectID string
}

// TasksScope computes the caller's task visibility, optionally filtered by
// project.
func TasksScope(c Caller, projectID string) TaskScope {
	switch c.Role {
	case domain.RoleAdmin:
		return TaskScope{Kind: TaskScopeAll, ProjectID: projectID}
	case domain.RoleManager:
		return TaskScope{Kind: TaskScopeManagedProjects, UserID: c.ID, ProjectID: projectID}
	default:
		return TaskScope{Kind: TaskScopeAssignee, UserID: c.ID, ProjectID: projectID}
	}
}

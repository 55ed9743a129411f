// Package authz is the authorization core: pure decisions over
// (caller, action, resource) tuples plus visibility scopes for list reads.
// It holds no state and performs no I/O; services fetch whatever records a
// decision needs and pass them in.
package authz

import (
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// Action enumerates the operations the authorization tables cover.
type Action int

const (
	ActionList Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionAddMember
	ActionRemoveMember
)

// Caller identifies the authenticated actor a decision is made for.
type Caller struct {
	ID   string
	Role domain.Role
}

// Role/action tables. An absent entry means DENY, so a new role or action is
// denied everywhere until every table below grants it explicitly.
var (
	userActions = map[domain.Role]map[Action]bool{
		domain.RoleAdmin: {
			ActionList:   true,
			ActionCreate: true,
			ActionUpdate: true,
			ActionDelete: true,
		},
		// Managers read the user list to populate assignment pickers.
		domain.RoleManager: {
			ActionList: true,
		},
		domain.RoleUser: {},
	}

	projectActions = map[domain.Role]map[Action]bool{
		domain.RoleAdmin: {
			ActionList:         true,
			ActionCreate:       true,
			ActionUpdate:       true,
			ActionDelete:       true,
			ActionAddMember:    true,
			ActionRemoveMember: true,
		},
		domain.RoleManager: {
			ActionList:         true,
			ActionCreate:       true,
			ActionUpdate:       true,
			ActionDelete:       true,
			ActionAddMember:    true,
			ActionRemoveMember: true,
		},
		domain.RoleUser: {
			ActionList: true,
		},
	}

	taskActions = map[domain.Role]map[Action]bool{
		domain.RoleAdmin: {
			ActionList:   true,
			ActionCreate: true,
			ActionUpdate: true,
			ActionDelete: true,
		},
		domain.RoleManager: {
			ActionList:   true,
			ActionCreate: true,
			ActionUpdate: true,
			ActionDelete: true,
		},
		// Task updates by users are decided per record; see CanUpdateTask.
		domain.RoleUser: {
			ActionList:   true,
			ActionUpdate: true,
		},
	}
)

func allowed(table map[domain.Role]map[Action]bool, c Caller, a Action) error {
	if table[c.Role][a] {
		return nil
	}
	return domain.ErrForbidden
}

// CanUsers decides a user-resource action for the caller.
func CanUsers(c Caller, a Action) error { return allowed(userActions, c, a) }

// CanProjects decides a project-resource action for the caller. Ownership of
// the target project is deliberately not consulted: any manager may mutate
// any project (preserved reference behavior).
func CanProjects(c Caller, a Action) error { return allowed(projectActions, c, a) }

// CanTasks decides a task-resource action for the caller. For ActionUpdate
// this is only the coarse role gate; CanUpdateTask applies the per-record
// assignee and field rules.
func CanTasks(c Caller, a Action) error { return allowed(taskActions, c, a) }

// TaskPatch mirrors the mutable task fields of an update request. A nil field
// was not supplied by the caller.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssignedTo  *string
}

// CanUpdateTask applies the per-record task update rules. The target task has
// already been fetched, so existence (NotFound) was settled before this call.
// Ordering matters: ownership is checked before field scoping, so a
// non-assignee is told "forbidden" rather than leaking which fields are
// restricted.
func CanUpdateTask(c Caller, task *domain.Task, patch TaskPatch) error {
	switch c.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return nil
	case domain.RoleUser:
		if task.AssignedTo == nil || *task.AssignedTo != c.ID {
			return domain.ErrForbidden
		}
		if patch.Title != nil || patch.Description != nil || patch.AssignedTo != nil {
			return domain.ErrRestrictedTaskFields
		}
		return nil
	}
	return domain.ErrForbidden
}

// CanFilterTasksByProject decides whether the caller may request the task list
// of one specific project. Managers are denied outright for projects they do
// not manage; an empty result would be indistinguishable from an empty
// project and leak its existence.
func CanFilterTasksByProject(c Caller, project *domain.Project) error {
	if c.Role == domain.RoleManager && project.ManagerID != c.ID {
		return domain.ErrForbidden
	}
	return nil
}

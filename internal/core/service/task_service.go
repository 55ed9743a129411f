package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// TaskService implements task CRUD with role- and record-level authorization.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, logger: logger}
}

// List returns the tasks visible to the caller, optionally filtered by
// project. A manager asking for a project they do not manage is denied, not
// given an empty list.
func (s *TaskService) List(ctx context.Context, caller authz.Caller, projectID string) ([]*ports.TaskRecord, error) {
	if err := authz.CanTasks(caller, authz.ActionList); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("tasks").Inc()
		return nil, err
	}

	if projectID != "" {
		project, err := s.projects.FindByID(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if err := authz.CanFilterTasksByProject(caller, project); err != nil {
			metrics.AuthzDenialsTotal.WithLabelValues("tasks").Inc()
			return nil, err
		}
	}

	return s.tasks.List(ctx, authz.TasksScope(caller, projectID))
}

func (s *TaskService) Create(ctx context.Context, caller authz.Caller, input ports.CreateTaskInput) (*ports.TaskRecord, error) {
	if err := authz.CanTasks(caller, authz.ActionCreate); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("tasks").Inc()
		return nil, err
	}
	if input.Title == "" || input.ProjectID == "" {
		return nil, fmt.Errorf("%w: title and project_id are required", domain.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}

	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if input.AssignedTo != nil {
		if _, err := s.users.FindByID(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(status)).Inc()
	s.logger.Info().Str("task_id", task.ID).Str("project_id", task.ProjectID).Msg("task created")
	return s.tasks.FindRecord(ctx, task.ID)
}

// Update applies a partial task update. Checks run in a fixed order:
// existence, then role/ownership, then field scoping. A rejected request
// leaves the record untouched.
func (s *TaskService) Update(ctx context.Context, caller authz.Caller, id string, input ports.UpdateTaskInput) (*ports.TaskRecord, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := authz.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
	}
	if err := authz.CanUpdateTask(caller, task, patch); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthzDenialsTotal.WithLabelValues("tasks").Inc()
		}
		return nil, err
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *input.Status)
		}
		task.Status = *input.Status
	}
	if caller.Role == domain.RoleManager || caller.Role == domain.RoleAdmin {
		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.AssignedTo != nil {
			if _, err := s.users.FindByID(ctx, *input.AssignedTo); err != nil {
				return nil, err
			}
			task.AssignedTo = input.AssignedTo
		}
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info().Str("task_id", id).Str("status", string(task.Status)).Msg("task updated")
	return s.tasks.FindRecord(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, caller authz.Caller, id string) error {
	if err := authz.CanTasks(caller, authz.ActionDelete); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("tasks").Inc()
		return err
	}
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/api/metrics"
	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

// ProjectService implements project CRUD and membership management. Mutations
// are gated on role only; ownership of the target project is not checked
// (preserved reference behavior, see DESIGN.md).
type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, users: users, logger: logger}
}

func (s *ProjectService) List(ctx context.Context, caller authz.Caller) ([]*ports.ProjectRecord, error) {
	if err := authz.CanProjects(caller, authz.ActionList); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("projects").Inc()
		return nil, err
	}
	return s.projects.List(ctx, authz.ProjectsScope(caller))
}

// Create inserts a project managed by the caller. The caller is added to the
// member set in the same transaction.
func (s *ProjectService) Create(ctx context.Context, caller authz.Caller, input ports.CreateProjectInput) (*ports.ProjectRecord, error) {
	if err := authz.CanProjects(caller, authz.ActionCreate); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("projects").Inc()
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          ulid.Make().String(),
		Name:        input.Name,
		Description: input.Description,
		ManagerID:   caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project, caller.ID); err != nil {
		return nil, err
	}

	metrics.ProjectsCreatedTotal.Inc()
	s.logger.Info().Str("project_id", project.ID).Str("manager_id", caller.ID).Msg("project created")
	return s.projects.FindRecord(ctx, project.ID)
}

func (s *ProjectService) Update(ctx context.Context, caller authz.Caller, id string, input ports.UpdateProjectInput) (*ports.ProjectRecord, error) {
	if err := authz.CanProjects(caller, authz.ActionUpdate); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("projects").Inc()
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", id).Msg("project updated")
	return s.projects.FindRecord(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, caller authz.Caller, id string) error {
	if err := authz.CanProjects(caller, authz.ActionDelete); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("projects").Inc()
		return err
	}
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) AddMember(ctx context.Context, caller authz.Caller, projectID, userID string) (*ports.ProjectRecord, error) {
	if err := authz.CanProjects(caller, authz.ActionAddMember); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("projects").Inc()
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.projects.AddMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member added")
	return s.projects.FindRecord(ctx, projectID)
}

// RemoveMember detaches a user from the project. Removing a user who is not a
// member leaves the member set unchanged and succeeds.
func (s *ProjectService) RemoveMember(ctx context.Context, caller authz.Caller, projectID, userID string) (*ports.ProjectRecord, error) {
	if err := authz.CanProjects(caller, authz.ActionRemoveMember); err != nil {
		metrics.AuthzDenialsTotal.WithLabelValues("projects").Inc()
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.projects.RemoveMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member removed")
	return s.projects.FindRecord(ctx, projectID)
}

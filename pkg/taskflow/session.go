package taskflow

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated API client bound to one user's token.
type Session struct {
	client *Client
	token  string

	// User identifies the session owner as returned by login. Zero-valued
	// for sessions created from a stored token.
	User User
}

// Token returns the raw session token, e.g. for persistence between runs.
func (s *Session) Token() string { return s.token }

// --- Users ---

func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := s.client.do(ctx, http.MethodGet, "/users", s.token, nil, &out)
	return out, err
}

func (s *Session) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPost, "/users", s.token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	var out User
	if err := s.client.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), s.token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), s.token, nil, nil)
}

// --- Projects ---

func (s *Session) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := s.client.do(ctx, http.MethodGet, "/projects", s.token, nil, &out)
	return out, err
}

func (s *Session) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	var out Project
	if err := s.client.do(ctx, http.MethodPost, "/projects", s.token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProject(ctx context.Context, id string, input UpdateProjectInput) (*Project, error) {
	var out Project
	if err := s.client.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), s.token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteProject(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), s.token, nil, nil)
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

// AddMember adds a user to the project's member set; adding an existing
// member is a no-op. Returns the updated project record.
func (s *Session) AddMember(ctx context.Context, projectID, userID string) (*Project, error) {
	var out Project
	path := "/projects/" + url.PathEscape(projectID) + "/members"
	if err := s.client.do(ctx, http.MethodPost, path, s.token, addMemberRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember removes a user from the project's member set; removing a
// non-member is a no-op. Returns the updated project record.
func (s *Session) RemoveMember(ctx context.Context, projectID, userID string) (*Project, error) {
	var out Project
	path := "/projects/" + url.PathEscape(projectID) + "/members/" + url.PathEscape(userID)
	if err := s.client.do(ctx, http.MethodDelete, path, s.token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Tasks ---

// ListTasks lists visible tasks, optionally restricted to one project.
func (s *Session) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	path := "/tasks"
	if projectID != "" {
		path += "?projectId=" + url.QueryEscape(projectID)
	}
	var out []Task
	err := s.client.do(ctx, http.MethodGet, path, s.token, nil, &out)
	return out, err
}

func (s *Session) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	var out Task
	if err := s.client.do(ctx, http.MethodPost, "/tasks", s.token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*Task, error) {
	var out Task
	if err := s.client.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), s.token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), s.token, nil, nil)
}

package taskflow

import "time"

// User is the API's user representation. The password digest is never
// serialized by the server.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is the member view embedded in project responses.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Project is the denormalized project view returned by the API.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ManagerID    string    `json:"manager_id"`
	ManagerName  string    `json:"manager_name"`
	ManagerEmail string    `json:"manager_email"`
	Members      []Member  `json:"members"`
	TaskCount    int64     `json:"task_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Task is the denormalized task view returned by the API.
type Task struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	AssignedTo    *string   `json:"assigned_to"`
	AssigneeName  string    `json:"assignee_name,omitempty"`
	AssigneeEmail string    `json:"assignee_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateUserInput are the fields for creating a user. Role defaults to USER
// server-side when empty.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserInput are the mutable user fields; nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// CreateProjectInput are the fields for creating a project.
type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProjectInput are the mutable project fields; nil fields are left
// unchanged.
type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateTaskInput are the fields for creating a task. Status defaults to
// TODO server-side when empty.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	ProjectID   string  `json:"project_id"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

// UpdateTaskInput are the mutable task fields of a PATCH; nil fields are not
// sent. Which fields the server accepts depends on the caller's role.
type UpdateTaskInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

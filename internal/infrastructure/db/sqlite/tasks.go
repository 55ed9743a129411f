package sqlite

import (
	"context"
	"database/sql"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type tasksRepo struct {
	db *sql.DB
}

// taskScopeSQL renders the visibility predicate of a task scope as a WHERE
// fragment over aliases t (tasks) and p (projects), with its bind arguments.
func taskScopeSQL(scope authz.TaskScope) (string, []any) {
	var clauses []string
	var args []any

	switch scope.Kind {
	case authz.TaskScopeManagedProjects:
		clauses = append(clauses, `p.manager_id = ?`)
		args = append(args, scope.UserID)
	case authz.TaskScopeAssignee:
		clauses = append(clauses, `t.assigned_to = ?`)
		args = append(args, scope.UserID)
	}
	if scope.ProjectID != "" {
		clauses = append(clauses, `t.project_id = ?`)
		args = append(args, scope.ProjectID)
	}
	if len(clauses) == 0 {
		return `1 = 1`, nil
	}

	where := clauses[0]
	for _, c := range clauses[1:] {
		where += ` AND ` + c
	}
	return where, args
}

const taskRecordQuery = `
	SELECT t.id, t.title, t.description, t.status, t.project_id, p.name,
	       t.assigned_to, u.name, u.email, t.created_at
	FROM tasks t
	JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.assigned_to`

func scanTaskRecord(row interface{ Scan(...any) error }) (*ports.TaskRecord, error) {
	var rec ports.TaskRecord
	var status string
	var assignedTo, assigneeName, assigneeEmail sql.NullString
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &status, &rec.ProjectID,
		&rec.ProjectName, &assignedTo, &assigneeName, &assigneeEmail, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.TaskStatus(status)
	rec.AssignedTo = stringPtr(assignedTo)
	rec.AssigneeName = assigneeName.String
	rec.AssigneeEmail = assigneeEmail.String
	return &rec, nil
}

func (r *tasksRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, project_id, assigned_to, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), t.ProjectID, nullString(t.AssignedTo), t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *tasksRepo) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	var status string
	var assignedTo sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, status, project_id, assigned_to, created_at, updated_at
		 FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &status, &t.ProjectID, &assignedTo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrTaskNotFound)
	}
	t.Status = domain.TaskStatus(status)
	t.AssignedTo = stringPtr(assignedTo)
	return &t, nil
}

func (r *tasksRepo) FindRecord(ctx context.Context, id string) (*ports.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx, taskRecordQuery+` WHERE t.id = ?`, id)
	rec, err := scanTaskRecord(row)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrTaskNotFound)
	}
	return rec, nil
}

func (r *tasksRepo) List(ctx context.Context, scope authz.TaskScope) ([]*ports.TaskRecord, error) {
	where, args := taskScopeSQL(scope)
	rows, err := r.db.QueryContext(ctx, taskRecordQuery+` WHERE `+where+` ORDER BY t.created_at, t.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ports.TaskRecord
	for rows.Next() {
		rec, err := scanTaskRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *tasksRepo) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, assigned_to = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, string(t.Status), nullString(t.AssignedTo), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *tasksRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

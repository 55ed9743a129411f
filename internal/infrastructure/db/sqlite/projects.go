package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type projectsRepo struct {
	db *sql.DB
}

// projectScopeSQL renders the visibility predicate of a project scope as a
// WHERE fragment over alias p, with its bind arguments.
func projectScopeSQL(scope authz.ProjectScope) (string, []any) {
	switch scope.Kind {
	case authz.ProjectScopeManagerOrMember:
		return `(p.manager_id = ? OR EXISTS (
			SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = ?))`,
			[]any{scope.UserID, scope.UserID}
	case authz.ProjectScopeMemberOrAssignee:
		return `(EXISTS (
			SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = ?)
			OR EXISTS (
			SELECT 1 FROM tasks t WHERE t.project_id = p.id AND t.assigned_to = ?))`,
			[]any{scope.UserID, scope.UserID}
	default:
		return `1 = 1`, nil
	}
}

const projectRecordQuery = `
	SELECT p.id, p.name, p.description, p.manager_id, u.name, u.email,
	       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count,
	       p.created_at
	FROM projects p
	JOIN users u ON u.id = p.manager_id`

func (r *projectsRepo) Create(ctx context.Context, p *domain.Project, memberIDs ...string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, description, manager_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.ManagerID, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return err
		}
		for _, userID := range memberIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO project_members (project_id, user_id) VALUES (?, ?)`,
				p.ID, userID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectsRepo) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, manager_id, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ManagerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrProjectNotFound)
	}
	return &p, nil
}

func (r *projectsRepo) FindRecord(ctx context.Context, id string) (*ports.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx, projectRecordQuery+` WHERE p.id = ?`, id)
	rec, err := scanProjectRecord(row)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrProjectNotFound)
	}
	if err := r.attachMembers(ctx, []*ports.ProjectRecord{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *projectsRepo) List(ctx context.Context, scope authz.ProjectScope) ([]*ports.ProjectRecord, error) {
	where, args := projectScopeSQL(scope)
	rows, err := r.db.QueryContext(ctx, projectRecordQuery+` WHERE `+where+` ORDER BY p.created_at, p.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ports.ProjectRecord
	for rows.Next() {
		rec, err := scanProjectRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachMembers(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProjectRecord(row interface{ Scan(...any) error }) (*ports.ProjectRecord, error) {
	rec := &ports.ProjectRecord{Members: []ports.MemberRecord{}}
	err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.ManagerID,
		&rec.ManagerName, &rec.ManagerEmail, &rec.TaskCount, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// attachMembers loads the member sets of all given projects in one query.
func (r *projectsRepo) attachMembers(ctx context.Context, records []*ports.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}

	byID := make(map[string]*ports.ProjectRecord, len(records))
	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
		placeholders = append(placeholders, "?")
		args = append(args, rec.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT pm.project_id, u.id, u.name, u.email
		 FROM project_members pm
		 JOIN users u ON u.id = pm.user_id
		 WHERE pm.project_id IN (`+strings.Join(placeholders, ", ")+`)
		 ORDER BY u.created_at, u.id`,
		args...,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var projectID string
		var m ports.MemberRecord
		if err := rows.Scan(&projectID, &m.ID, &m.Name, &m.Email); err != nil {
			return err
		}
		if rec, ok := byID[projectID]; ok {
			rec.Members = append(rec.Members, m)
		}
	}
	return rows.Err()
}

func (r *projectsRepo) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *projectsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *projectsRepo) AddMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_members (project_id, user_id) VALUES (?, ?)`,
		projectID, userID,
	)
	return err
}

func (r *projectsRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	return err
}

package service

// In-memory stub repositories. Scope handling mirrors the SQL predicates the
// sqlite repositories execute so service tests exercise the same visibility
// rules.

import (
	"context"
	"sort"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type stubs struct {
	users    *stubUserRepo
	projects *stubProjectRepo
	tasks    *stubTaskRepo
}

func newStubs() *stubs {
	s := &stubs{
		users:    &stubUserRepo{users: make(map[string]*domain.User)},
		projects: &stubProjectRepo{projects: make(map[string]*domain.Project), members: make(map[string]map[string]bool)},
		tasks:    &stubTaskRepo{tasks: make(map[string]*domain.Task)},
	}
	s.projects.users = s.users
	s.projects.tasks = s.tasks
	s.tasks.projects = s.projects
	s.tasks.users = s.users
	return s
}

func taskScopeAll() authz.TaskScope {
	return authz.TaskScope{Kind: authz.TaskScopeAll}
}

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// --- projects ---

type stubProjectRepo struct {
	projects map[string]*domain.Project
	members  map[string]map[string]bool
	users    *stubUserRepo
	tasks    *stubTaskRepo
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project, memberIDs ...string) error {
	r.projects[p.ID] = cloneProject(p)
	set := make(map[string]bool)
	for _, id := range memberIDs {
		set[id] = true
	}
	r.members[p.ID] = set
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) record(p *domain.Project) *ports.ProjectRecord {
	rec := &ports.ProjectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ManagerID:   p.ManagerID,
		Members:     []ports.MemberRecord{},
		CreatedAt:   p.CreatedAt,
	}
	if m, ok := r.users.users[p.ManagerID]; ok {
		rec.ManagerName = m.Name
		rec.ManagerEmail = m.Email
	}
	memberIDs := make([]string, 0, len(r.members[p.ID]))
	for id := range r.members[p.ID] {
		memberIDs = append(memberIDs, id)
	}
	sort.Strings(memberIDs)
	for _, id := range memberIDs {
		if u, ok := r.users.users[id]; ok {
			rec.Members = append(rec.Members, ports.MemberRecord{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	for _, t := range r.tasks.tasks {
		if t.ProjectID == p.ID {
			rec.TaskCount++
		}
	}
	return rec
}

func (r *stubProjectRepo) FindRecord(_ context.Context, id string) (*ports.ProjectRecord, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return r.record(p), nil
}

func (r *stubProjectRepo) visible(p *domain.Project, scope authz.ProjectScope) bool {
	switch scope.Kind {
	case authz.ProjectScopeAll:
		return true
	case authz.ProjectScopeManagerOrMember:
		return p.ManagerID == scope.UserID || r.members[p.ID][scope.UserID]
	case authz.ProjectScopeMemberOrAssignee:
		if r.members[p.ID][scope.UserID] {
			return true
		}
		for _, t := range r.tasks.tasks {
			if t.ProjectID == p.ID && t.AssignedTo != nil && *t.AssignedTo == scope.UserID {
				return true
			}
		}
	}
	return false
}

func (r *stubProjectRepo) List(_ context.Context, scope authz.ProjectScope) ([]*ports.ProjectRecord, error) {
	var out []*ports.ProjectRecord
	for _, p := range r.projects {
		if r.visible(p, scope) {
			out = append(out, r.record(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	delete(r.members, id)
	for tid, t := range r.tasks.tasks {
		if t.ProjectID == id {
			delete(r.tasks.tasks, tid)
		}
	}
	return nil
}

func (r *stubProjectRepo) AddMember(_ context.Context, projectID, userID string) error {
	if r.members[projectID] == nil {
		r.members[projectID] = make(map[string]bool)
	}
	r.members[projectID][userID] = true
	return nil
}

func (r *stubProjectRepo) RemoveMember(_ context.Context, projectID, userID string) error {
	delete(r.members[projectID], userID)
	return nil
}

// --- tasks ---

type stubTaskRepo struct {
	tasks    map[string]*domain.Task
	projects *stubProjectRepo
	users    *stubUserRepo
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	if t.AssignedTo != nil {
		v := *t.AssignedTo
		clone.AssignedTo = &v
	}
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) record(t *domain.Task) *ports.TaskRecord {
	rec := &ports.TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		ProjectID:   t.ProjectID,
		AssignedTo:  cloneTask(t).AssignedTo,
		CreatedAt:   t.CreatedAt,
	}
	if p, ok := r.projects.projects[t.ProjectID]; ok {
		rec.ProjectName = p.Name
	}
	if t.AssignedTo != nil {
		if u, ok := r.users.users[*t.AssignedTo]; ok {
			rec.AssigneeName = u.Name
			rec.AssigneeEmail = u.Email
		}
	}
	return rec
}

func (r *stubTaskRepo) FindRecord(_ context.Context, id string) (*ports.TaskRecord, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return r.record(t), nil
}

func (r *stubTaskRepo) visible(t *domain.Task, scope authz.TaskScope) bool {
	if scope.ProjectID != "" && t.ProjectID != scope.ProjectID {
		return false
	}
	switch scope.Kind {
	case authz.TaskScopeAll:
		return true
	case authz.TaskScopeManagedProjects:
		p, ok := r.projects.projects[t.ProjectID]
		return ok && p.ManagerID == scope.UserID
	case authz.TaskScopeAssignee:
		return t.AssignedTo != nil && *t.AssignedTo == scope.UserID
	}
	return false
}

func (r *stubTaskRepo) List(_ context.Context, scope authz.TaskScope) ([]*ports.TaskRecord, error) {
	var out []*ports.TaskRecord
	for _, t := range r.tasks {
		if r.visible(t, scope) {
			out = append(out, r.record(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

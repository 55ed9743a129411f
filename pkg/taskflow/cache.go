package taskflow

import "sync"

// Cache is a client-side store of fetched records, reconciled incrementally
// from mutation responses instead of re-fetching whole collections:
//
//   - a fetch replaces the collection wholesale,
//   - a create appends the returned record,
//   - an update replaces the cached record by id with the returned one,
//   - a delete removes the record by id.
//
// Creating a task also bumps the cached TaskCount of its project, so project
// counters stay useful without a project re-fetch (eventually consistent; the
// next project fetch is authoritative). Callers apply a mutation's result
// only after it succeeded, so a rejected call leaves the cache untouched.
type Cache struct {
	mu       sync.RWMutex
	users    []User
	projects []Project
	tasks    []Task
}

func NewCache() *Cache {
	return &Cache{}
}

// --- Users ---

func (c *Cache) SetUsers(users []User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append([]User(nil), users...)
}

func (c *Cache) Users() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]User(nil), c.users...)
}

func (c *Cache) UserCreated(u User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, u)
}

func (c *Cache) UserUpdated(u User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.users {
		if c.users[i].ID == u.ID {
			c.users[i] = u
			return
		}
	}
}

func (c *Cache) UserDeleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = removeByID(c.users, id, func(u User) string { return u.ID })
}

// --- Projects ---

func (c *Cache) SetProjects(projects []Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = append([]Project(nil), projects...)
}

func (c *Cache) Projects() []Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Project(nil), c.projects...)
}

func (c *Cache) ProjectCreated(p Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = append(c.projects, p)
}

func (c *Cache) ProjectUpdated(p Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.projects {
		if c.projects[i].ID == p.ID {
			c.projects[i] = p
			return
		}
	}
}

func (c *Cache) ProjectDeleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = removeByID(c.projects, id, func(p Project) string { return p.ID })
}

// --- Tasks ---

func (c *Cache) SetTasks(tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append([]Task(nil), tasks...)
}

func (c *Cache) Tasks() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Task(nil), c.tasks...)
}

// TaskCreated appends the task and bumps its project's cached task counter.
func (c *Cache) TaskCreated(t Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, t)
	for i := range c.projects {
		if c.projects[i].ID == t.ProjectID {
			c.projects[i].TaskCount++
			return
		}
	}
}

func (c *Cache) TaskUpdated(t Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == t.ID {
			c.tasks[i] = t
			return
		}
	}
}

func (c *Cache) TaskDeleted(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = removeByID(c.tasks, id, func(t Task) string { return t.ID })
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}

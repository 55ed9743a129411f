package taskflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_FetchReplacesWholesale(t *testing.T) {
	cache := NewCache()
	cache.SetProjects([]Project{{ID: "p1"}, {ID: "p2"}})
	cache.SetProjects([]Project{{ID: "p3"}})

	projects := cache.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "p3", projects[0].ID)
}

func TestCache_CreateAppends(t *testing.T) {
	cache := NewCache()
	cache.SetUsers([]User{{ID: "u1", Name: "Admin"}})
	cache.UserCreated(User{ID: "u2", Name: "Bob"})

	users := cache.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[1].ID)
}

func TestCache_UpdateReplacesByID(t *testing.T) {
	cache := NewCache()
	cache.SetTasks([]Task{
		{ID: "t1", Title: "T1", Status: "TODO"},
		{ID: "t2", Title: "T2", Status: "TODO"},
	})

	cache.TaskUpdated(Task{ID: "t2", Title: "T2", Status: "DONE"})

	tasks := cache.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "TODO", tasks[0].Status)
	assert.Equal(t, "DONE", tasks[1].Status)
}

func TestCache_UpdateUnknownIDIsNoop(t *testing.T) {
	cache := NewCache()
	cache.SetProjects([]Project{{ID: "p1", Name: "P1"}})

	cache.ProjectUpdated(Project{ID: "ghost", Name: "Ghost"})

	projects := cache.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "P1", projects[0].Name)
}

func TestCache_DeleteRemovesByID(t *testing.T) {
	cache := NewCache()
	cache.SetUsers([]User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}})

	cache.UserDeleted("u2")

	users := cache.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, "u3", users[1].ID)
}

func TestCache_TaskCreateBumpsProjectCounter(t *testing.T) {
	cache := NewCache()
	cache.SetProjects([]Project{
		{ID: "p1", TaskCount: 2},
		{ID: "p2", TaskCount: 0},
	})

	cache.TaskCreated(Task{ID: "t1", Title: "T1", ProjectID: "p1"})

	projects := cache.Projects()
	assert.EqualValues(t, 3, projects[0].TaskCount)
	assert.EqualValues(t, 0, projects[1].TaskCount)

	tasks := cache.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestCache_TaskCreateForUncachedProject(t *testing.T) {
	cache := NewCache()
	cache.TaskCreated(Task{ID: "t1", ProjectID: "p-unseen"})

	assert.Len(t, cache.Tasks(), 1)
	assert.Empty(t, cache.Projects())
}

func TestCache_SnapshotsAreCopies(t *testing.T) {
	cache := NewCache()
	cache.SetTasks([]Task{{ID: "t1", Status: "TODO"}})

	snapshot := cache.Tasks()
	snapshot[0].Status = "DONE"

	assert.Equal(t, "TODO", cache.Tasks()[0].Status)
}

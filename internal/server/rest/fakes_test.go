package rest

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtech/tasklist/internal/common"
	"github.com/jtech/tasklist/internal/dbx"
	"github.com/jtech/tasklist/internal/server/models"
	tasklistsrepo "github.com/jtech/tasklist/internal/server/repositories/tasklists"
	tasksrepo "github.com/jtech/tasklist/internal/server/repositories/tasks"
	usersrepo "github.com/jtech/tasklist/internal/server/repositories/users"
)

// In-memory repositories backing the handler tests, so requests exercise the
// full middleware/handler/service path without a database.

type memClock struct{ t time.Time }

func (c *memClock) next() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type memStore struct {
	clock *memClock
	users map[string]*models.User
	lists map[string]*models.TaskList
	tasks map[string]*models.Task
}

func newMemStore() *memStore {
	return &memStore{
		clock: &memClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		users: map[string]*models.User{},
		lists: map[string]*models.TaskList{},
		tasks: map[string]*models.Task{},
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) usersrepo.Repository          { return (*memUsers)(m) }
func (m *memStore) TaskLists(dbx.DBTX) tasklistsrepo.Repository  { return (*memLists)(m) }
func (m *memStore) Tasks(dbx.DBTX) tasksrepo.Repository          { return (*memTasks)(m) }

type memUsers memStore

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	now := m.clock.next()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

type memLists memStore

func (m *memLists) Create(ctx context.Context, l *models.TaskList) (*models.TaskList, error) {
	now := m.clock.next()
	l.ID = uuid.NewString()
	l.Active = true
	l.CreatedAt = now
	l.UpdatedAt = now
	m.lists[l.ID] = l
	return l, nil
}

func (m *memLists) GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.TaskList, error) {
	l, ok := m.lists[id]
	if !ok || l.UserID != ownerID || !l.Active {
		return nil, common.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (m *memLists) matching(ownerID string, f tasklistsrepo.Filter) []*models.TaskList {
	var out []*models.TaskList
	for _, l := range m.lists {
		if l.UserID != ownerID || !l.Active {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memLists) ListByOwner(ctx context.Context, ownerID string, f tasklistsrepo.Filter, p models.PageRequest) ([]*models.TaskList, int64, error) {
	all := m.matching(ownerID, f)
	return slicePage(all, p), int64(len(all)), nil
}

func (m *memLists) ListAllByOwner(ctx context.Context, ownerID string, f tasklistsrepo.Filter) ([]*models.TaskList, error) {
	return m.matching(ownerID, f), nil
}

func (m *memLists) Update(ctx context.Context, l *models.TaskList) (*models.TaskList, error) {
	stored, ok := m.lists[l.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Name = l.Name
	stored.UpdatedAt = m.clock.next()
	copied := *stored
	return &copied, nil
}

func (m *memLists) Delete(ctx context.Context, id string) error {
	if _, ok := m.lists[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.lists, id)
	return nil
}

func (m *memLists) SetInactive(ctx context.Context, id string) error {
	l, ok := m.lists[id]
	if !ok {
		return common.ErrNotFound
	}
	l.Active = false
	l.UpdatedAt = m.clock.next()
	return nil
}

type memTasks memStore

func (m *memTasks) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	now := m.clock.next()
	t.ID = uuid.NewString()
	t.Active = true
	t.CreatedAt = now
	t.UpdatedAt = now
	m.tasks[t.ID] = t
	copied := *t
	return &copied, nil
}

func (m *memTasks) GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != ownerID || !t.Active {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *memTasks) matching(ownerID string, f tasksrepo.Filter) []*models.Task {
	var out []*models.Task
	for _, t := range m.tasks {
		if t.UserID != ownerID || !t.Active {
			continue
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Title)) {
			continue
		}
		if f.TaskListID != "" && (t.TaskListID == nil || *t.TaskListID != f.TaskListID) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memTasks) ListByOwner(ctx context.Context, ownerID string, f tasksrepo.Filter, p models.PageRequest) ([]*models.Task, int64, error) {
	all := m.matching(ownerID, f)
	return slicePage(all, p), int64(len(all)), nil
}

func (m *memTasks) ListAllByOwner(ctx context.Context, ownerID string, f tasksrepo.Filter) ([]*models.Task, error) {
	return m.matching(ownerID, f), nil
}

func (m *memTasks) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	stored, ok := m.tasks[t.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.Completed = t.Completed
	stored.TaskListID = t.TaskListID
	stored.UpdatedAt = m.clock.next()
	copied := *stored
	return &copied, nil
}

func (m *memTasks) Delete(ctx context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memTasks) SetInactive(ctx context.Context, id string) error {
	t, ok := m.tasks[id]
	if !ok {
		return common.ErrNotFound
	}
	t.Active = false
	t.UpdatedAt = m.clock.next()
	return nil
}

func slicePage[T any](all []T, p models.PageRequest) []T {
	start := p.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + p.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

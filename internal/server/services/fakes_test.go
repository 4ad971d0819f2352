package services

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
	"github.com/jtech/tasklist/internal/server/repositories/repomanager"
	tasklistsrepo "github.com/jtech/tasklist/internal/server/repositories/tasklists"
	tasksrepo "github.com/jtech/tasklist/internal/server/repositories/tasks"
	usersrepo "github.com/jtech/tasklist/internal/server/repositories/users"
)

// --- test doubles: in-memory repositories ---

// fakeClock hands out strictly increasing timestamps so created_at ordering
// and updated_at advancement are observable without sleeping.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fakeUsersRepo struct {
	clock *fakeClock
	users map[string]*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	now := f.clock.next()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeTaskListsRepo struct {
	clock *fakeClock
	lists map[string]*models.TaskList
}

func (f *fakeTaskListsRepo) Create(ctx context.Context, l *models.TaskList) (*models.TaskList, error) {
	now := f.clock.next()
	l.ID = uuid.NewString()
	l.Active = true
	l.CreatedAt = now
	l.UpdatedAt = now
	f.lists[l.ID] = l
	copied := *l
	return &copied, nil
}

func (f *fakeTaskListsRepo) GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.TaskList, error) {
	l, ok := f.lists[id]
	if !ok || l.UserID != ownerID || !l.Active {
		return nil, common.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeTaskListsRepo) matching(ownerID string, filter tasklistsrepo.Filter) []*models.TaskList {
	var result []*models.TaskList
	for _, l := range f.lists {
		if l.UserID != ownerID || !l.Active {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(filter.Name)) {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (f *fakeTaskListsRepo) ListByOwner(ctx context.Context, ownerID string, filter tasklistsrepo.Filter, p models.PageRequest) ([]*models.TaskList, int64, error) {
	all := f.matching(ownerID, filter)
	return pageSlice(all, p), int64(len(all)), nil
}

func (f *fakeTaskListsRepo) ListAllByOwner(ctx context.Context, ownerID string, filter tasklistsrepo.Filter) ([]*models.TaskList, error) {
	return f.matching(ownerID, filter), nil
}

func (f *fakeTaskListsRepo) Update(ctx context.Context, l *models.TaskList) (*models.TaskList, error) {
	stored, ok := f.lists[l.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Name = l.Name
	stored.UpdatedAt = f.clock.next()
	copied := *stored
	return &copied, nil
}

func (f *fakeTaskListsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.lists[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.lists, id)
	return nil
}

func (f *fakeTaskListsRepo) SetInactive(ctx context.Context, id string) error {
	l, ok := f.lists[id]
	if !ok {
		return common.ErrNotFound
	}
	l.Active = false
	l.UpdatedAt = f.clock.next()
	return nil
}

type fakeTasksRepo struct {
	clock *fakeClock
	tasks map[string]*models.Task
}

func (f *fakeTasksRepo) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	now := f.clock.next()
	t.ID = uuid.NewString()
	t.Active = true
	t.CreatedAt = now
	t.UpdatedAt = now
	f.tasks[t.ID] = t
	copied := *t
	return &copied, nil
}

func (f *fakeTasksRepo) GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != ownerID || !t.Active {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTasksRepo) matching(ownerID string, filter tasksrepo.Filter) []*models.Task {
	var result []*models.Task
	for _, t := range f.tasks {
		if t.UserID != ownerID || !t.Active {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.TaskListID != "" && (t.TaskListID == nil || *t.TaskListID != filter.TaskListID) {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (f *fakeTasksRepo) ListByOwner(ctx context.Context, ownerID string, filter tasksrepo.Filter, p models.PageRequest) ([]*models.Task, int64, error) {
	all := f.matching(ownerID, filter)
	return pageSlice(all, p), int64(len(all)), nil
}

func (f *fakeTasksRepo) ListAllByOwner(ctx context.Context, ownerID string, filter tasksrepo.Filter) ([]*models.Task, error) {
	return f.matching(ownerID, filter), nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	stored, ok := f.tasks[t.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.Completed = t.Completed
	stored.TaskListID = t.TaskListID
	stored.UpdatedAt = f.clock.next()
	copied := *stored
	return &copied, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasksRepo) SetInactive(ctx context.Context, id string) error {
	t, ok := f.tasks[id]
	if !ok {
		return common.ErrNotFound
	}
	t.Active = false
	t.UpdatedAt = f.clock.next()
	return nil
}

func pageSlice[T any](all []T, p models.PageRequest) []T {
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

type fakeRepoManager struct {
	usersRepo *fakeUsersRepo
	listsRepo *fakeTaskListsRepo
	tasksRepo *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	clock := newFakeClock()
	return &fakeRepoManager{
		usersRepo: &fakeUsersRepo{clock: clock, users: map[string]*models.User{}},
		listsRepo: &fakeTaskListsRepo{clock: clock, lists: map[string]*models.TaskList{}},
		tasksRepo: &fakeTasksRepo{clock: clock, tasks: map[string]*models.Task{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.usersRepo }
func (m *fakeRepoManager) TaskLists(db dbx.DBTX) tasklistsrepo.Repository { return m.listsRepo }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository         { return m.tasksRepo }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// fakeHasher is a transparent stand-in for bcrypt, fast enough for unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) ([]byte, error) {
	return []byte("digest:" + password), nil
}

func (fakeHasher) Verify(password string, digest []byte) bool {
	return string(digest) == "digest:"+password
}

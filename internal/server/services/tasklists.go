package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jtech/tasklist/internal/common"
	"github.com/jtech/tasklist/internal/server/models"
	"github.com/jtech/tasklist/internal/server/repositories/repomanager"
	"github.com/jtech/tasklist/internal/server/repositories/tasklists"
)

// TaskListService applies the ownership-scoped lifecycle to task lists.
// The delete policy is fixed per deployment: soft keeps inactive rows for
// history, hard removes them.
type TaskListService struct {
	db           *sql.DB
	repos        repomanager.RepositoryManager
	deletePolicy models.DeletePolicy
}

func NewTaskListService(db *sql.DB, m repomanager.RepositoryManager, policy models.DeletePolicy) *TaskListService {
	return &TaskListService{db: db, repos: m, deletePolicy: policy}
}

// TaskListPatch carries a partial update. Nil fields are left unchanged.
type TaskListPatch struct {
	Name *string
}

func (s *TaskListService) Create(ctx context.Context, owner *models.User, name string) (*models.TaskList, error) {
	v := &common.ValidationError{}
	name = checkRequired(v, "name", name, maxNameLen)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	list, err := s.repos.TaskLists(s.db).Create(ctx, &models.TaskList{
		Name:   name,
		UserID: owner.ID,
		Active: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating task list: %w", err)
	}
	return list, nil
}

// List returns one page of the owner's active lists, ordered by creation time.
func (s *TaskListService) List(ctx context.Context, owner *models.User, filter tasklists.Filter, page models.PageRequest) (*models.Page[*models.TaskList], error) {
	page = page.Normalized()
	filter.Name = strings.TrimSpace(filter.Name)

	items, total, err := s.repos.TaskLists(s.db).ListByOwner(ctx, owner.ID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("listing task lists: %w", err)
	}
	return models.NewPage(items, total, page), nil
}

// ListAll returns every active list of the owner, same filter and order as
// List but without pagination metadata.
func (s *TaskListService) ListAll(ctx context.Context, owner *models.User, filter tasklists.Filter) ([]*models.TaskList, error) {
	filter.Name = strings.TrimSpace(filter.Name)

	items, err := s.repos.TaskLists(s.db).ListAllByOwner(ctx, owner.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing task lists: %w", err)
	}
	return items, nil
}

// Get resolves the list by id within the owner's scope. Malformed ids,
// missing rows, rows owned by someone else, and inactive rows all collapse
// into ErrNotFound.
func (s *TaskListService) Get(ctx context.Context, owner *models.User, rawID string) (*models.TaskList, error) {
	id, err := resolveID(rawID)
	if err != nil {
		return nil, err
	}
	return s.getOwned(ctx, owner, id)
}

// Update applies the supplied fields and refreshes updated_at, even when the
// patch turns out to be a no-op.
func (s *TaskListService) Update(ctx context.Context, owner *models.User, rawID string, patch TaskListPatch) (*models.TaskList, error) {
	id, err := resolveID(rawID)
	if err != nil {
		return nil, err
	}

	list, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	v := &common.ValidationError{}
	if patch.Name != nil {
		list.Name = checkRequired(v, "name", *patch.Name, maxNameLen)
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	updated, err := s.repos.TaskLists(s.db).Update(ctx, list)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("updating task list: %w", err)
	}
	return updated, nil
}

// Delete ends the list's lifecycle according to the configured policy. A
// second delete of the same record yields ErrNotFound.
func (s *TaskListService) Delete(ctx context.Context, owner *models.User, rawID string) error {
	id, err := resolveID(rawID)
	if err != nil {
		return err
	}

	list, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}

	repo := s.repos.TaskLists(s.db)
	if s.deletePolicy == models.DeleteHard {
		err = repo.Delete(ctx, list.ID)
	} else {
		err = repo.SetInactive(ctx, list.ID)
	}
	if err != nil {
		if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting task list: %w", err)
	}
	return nil
}

func (s *TaskListService) getOwned(ctx context.Context, owner *models.User, id string) (*models.TaskList, error) {
	list, err := s.repos.TaskLists(s.db).GetByOwnerAndID(ctx, id, owner.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading task list: %w", err)
	}
	return list, nil
}

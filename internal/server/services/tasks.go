package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jtech/tasklist/internal/common"
	"github.com/jtech/tasklist/internal/server/models"
	"github.com/jtech/tasklist/internal/server/repositories/repomanager"
	"github.com/jtech/tasklist/internal/server/repositories/tasks"
)

// TaskService applies the ownership-scoped lifecycle to tasks. Tasks may
// optionally belong to a task list of the same owner; a cross-owner parent is
// rejected as not found.
type TaskService struct {
	db           *sql.DB
	repos        repomanager.RepositoryManager
	deletePolicy models.DeletePolicy
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, policy models.DeletePolicy) *TaskService {
	return &TaskService{db: db, repos: m, deletePolicy: policy}
}

// NewTask carries the fields accepted at creation. TaskListID is optional.
type NewTask struct {
	Title       string
	Description string
	Completed   bool
	TaskListID  string
}

// TaskPatch carries a partial update. Nil fields are left unchanged.
// TaskListID pointing at an empty string detaches the task from its list;
// pointing at an id revalidates and reattaches.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	TaskListID  *string
}

func (s *TaskService) Create(ctx context.Context, owner *models.User, in NewTask) (*models.Task, error) {
	v := &common.ValidationError{}
	title := checkRequired(v, "title", in.Title, maxTitleLen)
	description := checkOptional(v, "description", in.Description, maxDescriptionLen)
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		Completed:   in.Completed,
		UserID:      owner.ID,
		Active:      true,
	}

	if strings.TrimSpace(in.TaskListID) != "" {
		parent, err := s.resolveParent(ctx, owner, in.TaskListID)
		if err != nil {
			return nil, err
		}
		task.TaskListID = &parent.ID
	}

	created, err := s.repos.Tasks(s.db).Create(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return created, nil
}

// List returns one page of the owner's active tasks, ordered by creation
// time. An unparseable TaskListID filter is dropped rather than leaking a
// distinct error.
func (s *TaskService) List(ctx context.Context, owner *models.User, filter tasks.Filter, page models.PageRequest) (*models.Page[*models.Task], error) {
	page = page.Normalized()
	filter = normalizeTaskFilter(filter)

	items, total, err := s.repos.Tasks(s.db).ListByOwner(ctx, owner.ID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return models.NewPage(items, total, page), nil
}

// ListAll returns every active task of the owner, same filter and order as
// List but without pagination metadata.
func (s *TaskService) ListAll(ctx context.Context, owner *models.User, filter tasks.Filter) ([]*models.Task, error) {
	filter = normalizeTaskFilter(filter)

	items, err := s.repos.Tasks(s.db).ListAllByOwner(ctx, owner.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return items, nil
}

// Get resolves the task by id within the owner's scope, collapsing malformed,
// missing, foreign, and inactive records into ErrNotFound.
func (s *TaskService) Get(ctx context.Context, owner *models.User, rawID string) (*models.Task, error) {
	id, err := resolveID(rawID)
	if err != nil {
		return nil, err
	}
	return s.getOwned(ctx, owner, id)
}

// Update applies only the supplied fields and refreshes updated_at even for a
// no-op patch. A supplied parent id is revalidated exactly as in Create.
func (s *TaskService) Update(ctx context.Context, owner *models.User, rawID string, patch TaskPatch) (*models.Task, error) {
	id, err := resolveID(rawID)
	if err != nil {
		return nil, err
	}

	task, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	v := &common.ValidationError{}
	if patch.Title != nil {
		task.Title = checkRequired(v, "title", *patch.Title, maxTitleLen)
	}
	if patch.Description != nil {
		task.Description = checkOptional(v, "description", *patch.Description, maxDescriptionLen)
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	if patch.TaskListID != nil {
		if strings.TrimSpace(*patch.TaskListID) == "" {
			task.TaskListID = nil
		} else {
			parent, err := s.resolveParent(ctx, owner, *patch.TaskListID)
			if err != nil {
				return nil, err
			}
			task.TaskListID = &parent.ID
		}
	}

	updated, err := s.repos.Tasks(s.db).Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return updated, nil
}

// Delete ends the task's lifecycle according to the configured policy. A
// second delete of the same record yields ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, owner *models.User, rawID string) error {
	id, err := resolveID(rawID)
	if err != nil {
		return err
	}

	task, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}

	repo := s.repos.Tasks(s.db)
	if s.deletePolicy == models.DeleteHard {
		err = repo.Delete(ctx, task.ID)
	} else {
		err = repo.SetInactive(ctx, task.ID)
	}
	if err != nil {
		if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// resolveParent resolves a task list reference within the owner's scope.
// A malformed, missing, foreign, or inactive parent is ErrNotFound.
func (s *TaskService) resolveParent(ctx context.Context, owner *models.User, rawID string) (*models.TaskList, error) {
	id, err := resolveID(rawID)
	if err != nil {
		return nil, err
	}

	parent, err := s.repos.TaskLists(s.db).GetByOwnerAndID(ctx, id, owner.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading parent list: %w", err)
	}
	return parent, nil
}

func (s *TaskService) getOwned(ctx context.Context, owner *models.User, id string) (*models.Task, error) {
	task, err := s.repos.Tasks(s.db).GetByOwnerAndID(ctx, id, owner.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}
	return task, nil
}

func normalizeTaskFilter(f tasks.Filter) tasks.Filter {
	f.Title = strings.TrimSpace(f.Title)
	f.TaskListID = strings.TrimSpace(f.TaskListID)
	if f.TaskListID != "" {
		if id, err := uuid.Parse(f.TaskListID); err == nil {
			f.TaskListID = id.String()
		} else {
			f.TaskListID = ""
		}
	}
	return f
}

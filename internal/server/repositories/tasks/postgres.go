package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jtech/tasklist/internal/common"
	"github.com/jtech/tasklist/internal/dbx"
	"github.com/jtech/tasklist/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, title, description, completed, user_id, task_list_id, active, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (title, description, completed, user_id, task_list_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Completed, task.UserID, nullableID(task.TaskListID)).
		Scan(&task.ID, &task.Active, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, classify(err)
	}
	return task, nil
}

func (r *PostgresRepository) GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1 AND user_id = $2 AND active
	`
	return scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// taskFilterClause is shared by both listing paths so the paginated and the
// unpaginated variants always see the same rows in the same order. NULLIF
// keeps the uuid cast safe when no parent restriction is supplied.
const taskFilterClause = `
	WHERE user_id = $1 AND active
	  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
	  AND (NULLIF($3, '') IS NULL OR task_list_id = NULLIF($3, '')::uuid)
`

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, f Filter, p models.PageRequest) ([]*models.Task, int64, error) {
	var total int64
	countQuery := `SELECT count(*) FROM tasks` + taskFilterClause
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID, f.Title, f.TaskListID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks` + taskFilterClause + `
		ORDER BY created_at, id
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, f.Title, f.TaskListID, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) ListAllByOwner(ctx context.Context, ownerID string, f Filter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks` + taskFilterClause + `
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, f.Title, f.TaskListID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, task_list_id = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Completed, nullableID(task.TaskListID), task.ID).
		Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, classify(err)
	}
	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetInactive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanTask(row *sql.Row) (*models.Task, error) {
	task := &models.Task{}
	var listID sql.NullString
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Completed,
		&task.UserID, &listID, &task.Active, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if listID.Valid {
		task.TaskListID = &listID.String
	}
	return task, nil
}

func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	var result []*models.Task
	for rows.Next() {
		task := &models.Task{}
		var listID sql.NullString
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Completed,
			&task.UserID, &listID, &task.Active, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		if listID.Valid {
			id := listID.String
			task.TaskListID = &id
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// classify maps Postgres integrity violations to the shared sentinels:
// foreign-key violations become ErrConflict, unique violations ErrConflict too
// (tasks carry no unique business key, so any 23505 here is unexpected churn).
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23505":
			return common.ErrConflict
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func nullableID(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}

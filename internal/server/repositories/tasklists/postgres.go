package tasklists

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

// PostgresRepository implements task list storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listColumns = `id, name, user_id, active, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, list *models.TaskList) (*models.TaskList, error) {
	query := `
		INSERT INTO task_lists (name, user_id)
		VALUES ($1, $2)
		RETURNING id, active, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, list.Name, list.UserID).
		Scan(&list.ID, &list.Active, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.TaskList, error) {
	query := `
		SELECT ` + listColumns + ` FROM task_lists
		WHERE id = $1 AND user_id = $2 AND active
	`

	list := &models.TaskList{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&list.ID, &list.Name, &list.UserID, &list.Active, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// listFilterClause is shared by both listing paths so the paginated and the
// unpaginated variants always see the same rows in the same order.
const listFilterClause = `
	WHERE user_id = $1 AND active
	  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
`

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, f Filter, p models.PageRequest) ([]*models.TaskList, int64, error) {
	var total int64
	countQuery := `SELECT count(*) FROM task_lists` + listFilterClause
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID, f.Name).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + listColumns + ` FROM task_lists` + listFilterClause + `
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, f.Name, p.Size, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items, err := scanLists(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) ListAllByOwner(ctx context.Context, ownerID string, f Filter) ([]*models.TaskList, error) {
	query := `SELECT ` + listColumns + ` FROM task_lists` + listFilterClause + `
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, f.Name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanLists(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, list *models.TaskList) (*models.TaskList, error) {
	query := `
		UPDATE task_lists SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`

	if err := r.db.QueryRowContext(ctx, query, list.Name, list.ID).Scan(&list.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_lists WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return common.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) SetInactive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE task_lists SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func scanLists(rows *sql.Rows) ([]*models.TaskList, error) {
	var result []*models.TaskList
	for rows.Next() {
		item := &models.TaskList{}
		if err := rows.Scan(&item.ID, &item.Name, &item.UserID, &item.Active, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

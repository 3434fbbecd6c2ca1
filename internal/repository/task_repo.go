package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListByProject returns the project's tasks, newest first. The project must
// belong to tenantID, otherwise domain.ErrProjectNotFound.
func (r *TaskRepository) ListByProject(ctx context.Context, tenantID, projectID int64) ([]*domain.Task, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM projects WHERE id = $1 AND tenant_id = $2`,
		projectID, tenantID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, title, done, created_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY id DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// Create inserts an open task. The ownership check and the insert are one
// statement: nothing is inserted unless the project belongs to tenantID.
func (r *TaskRepository) Create(ctx context.Context, tenantID, projectID int64, title string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, done)
		SELECT p.id, $3, FALSE
		FROM projects p
		WHERE p.id = $1 AND p.tenant_id = $2
		RETURNING id, project_id, title, done, created_at
	`, projectID, tenantID, title).Scan(&t.ID, &t.ProjectID, &t.Title, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Toggle flips done in a single statement so concurrent toggles never lose
// an update. Tasks outside tenantID report domain.ErrTaskNotFound.
func (r *TaskRepository) Toggle(ctx context.Context, tenantID, taskID int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, `
		UPDATE tasks t
		SET done = NOT t.done
		FROM projects p
		WHERE t.id = $1 AND p.id = t.project_id AND p.tenant_id = $2
		RETURNING t.id, t.project_id, t.title, t.done, t.created_at
	`, taskID, tenantID).Scan(&t.ID, &t.ProjectID, &t.Title, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

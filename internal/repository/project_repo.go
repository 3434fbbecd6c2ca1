package repository

import (
	"context"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListByTenant returns the tenant's projects, newest first.
func (r *ProjectRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, tenant_id, name, created_at
		FROM projects
		WHERE tenant_id = $1
		ORDER BY id DESC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (r *ProjectRepository) Create(ctx context.Context, tenantID int64, name string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx, `
		INSERT INTO projects (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id, tenant_id, name, created_at
	`, tenantID, name).Scan(&p.ID, &p.TenantID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]*domain.Project, error) {
	res := make([]*domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProbeRepository answers liveness questions about the store.
type ProbeRepository struct {
	db *pgxpool.Pool
}

func NewProbeRepository(db *pgxpool.Pool) *ProbeRepository {
	return &ProbeRepository{db: db}
}

// Check runs SELECT 1 and reports whether exactly one row came back.
func (r *ProbeRepository) Check(ctx context.Context) (bool, error) {
	rows, err := r.db.Query(ctx, `SELECT 1`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	return n == 1, nil
}

// Ping checks that a connection can be acquired.
func (r *ProbeRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}


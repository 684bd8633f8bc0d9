package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"doctrone-backend/internal/models"
)

type DrugRepo struct {
	pool *pgxpool.Pool
}

func NewDrugRepo(pool *pgxpool.Pool) *DrugRepo {
	return &DrugRepo{pool: pool}
}

// GetByIDs returns the drugs that exist among ids, keyed by id. Missing ids
// are simply absent from the map.
func (r *DrugRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Drug, error) {
	drugs := make(map[int64]models.Drug, len(ids))
	if len(ids) == 0 {
		return drugs, nil
	}

	rows, err := r.pool.Query(ctx, "SELECT id, name FROM drugs WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d models.Drug
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		drugs[d.ID] = d
	}
	return drugs, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doctrone-backend/internal/models"
)

type PrescriptionRepo struct {
	pool *pgxpool.Pool
}

func NewPrescriptionRepo(pool *pgxpool.Pool) *PrescriptionRepo {
	return &PrescriptionRepo{pool: pool}
}

func (r *PrescriptionRepo) ListByUser(ctx context.Context, userID int64) ([]models.Prescription, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, drug_id, dosage, intake
		FROM prescriptions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Prescription, error) {
		var p models.Prescription
		err := row.Scan(&p.ID, &p.UserID, &p.DrugID, &p.Dosage, &p.Intake)
		return p, err
	})
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"doctrone-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, gender, age, blood_type, special_diagnosis
		FROM users WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Gender, &user.Age,
		&user.BloodType, &user.SpecialDiagnosis,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

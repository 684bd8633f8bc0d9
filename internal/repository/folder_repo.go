package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doctrone-backend/internal/models"
)

type FolderRepo struct {
	pool *pgxpool.Pool
}

func NewFolderRepo(pool *pgxpool.Pool) *FolderRepo {
	return &FolderRepo{pool: pool}
}

func (r *FolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO folders (user_id, name) VALUES ($1, $2)
		RETURNING id, created_at`,
		folder.UserID, folder.Name,
	).Scan(&folder.ID, &folder.CreatedAt)
}

func (r *FolderRepo) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, user_id, name, created_at FROM folders WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	folder, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[models.Folder])
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListByUser returns the user's folders oldest first.
func (r *FolderRepo) ListByUser(ctx context.Context, userID int64) ([]models.Folder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, name, created_at FROM folders
		WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByPos[models.Folder])
}

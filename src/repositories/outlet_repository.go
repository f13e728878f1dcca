package repositories

import (
	"context"
	"strings"

	"assetserver/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OutletRepository interface {
	GetOrCreate(ctx context.Context, name string) (int, error)
	GetAll(ctx context.Context) ([]models.Outlet, error)
	GetByID(ctx context.Context, id int) (*models.Outlet, error)
}

type outletRepo struct {
	db *pgxpool.Pool
}

func NewOutletRepository(db *pgxpool.Pool) OutletRepository {
	return &outletRepo{db: db}
}

// GetOrCreate returns the id of the outlet with the given trimmed name, creating
// it when missing.
func (r *outletRepo) GetOrCreate(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO outlets (name)
		 VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		strings.TrimSpace(name),
	).Scan(&id)
	return id, err
}

func (r *outletRepo) GetAll(ctx context.Context) ([]models.Outlet, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM outlets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outlets := []models.Outlet{}
	for rows.Next() {
		var o models.Outlet
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
			return nil, err
		}
		outlets = append(outlets, o)
	}
	return outlets, rows.Err()
}

func (r *outletRepo) GetByID(ctx context.Context, id int) (*models.Outlet, error) {
	var o models.Outlet
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM outlets WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

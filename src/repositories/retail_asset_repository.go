package repositories

import (
	"context"
	"fmt"
	"strings"

	"assetserver/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RetailAssetFilter struct {
	Search   string
	Status   string
	OutletID int
	Outlet   string
	Active   *bool
}

type RetailAssetRepository interface {
	GetAssetIDs(ctx context.Context, prefix string) ([]string, error)
	Create(ctx context.Context, asset *models.RetailAsset, tx pgx.Tx) error
	GetByID(ctx context.Context, id int) (*models.RetailAsset, error)
	List(ctx context.Context, filter RetailAssetFilter) ([]models.RetailAsset, error)
	Update(ctx context.Context, asset *models.RetailAsset) error
	Count(ctx context.Context) (int, error)
	UpsertBySerial(ctx context.Context, asset *models.RetailAsset) (bool, error)
	SetStatus(ctx context.Context, ids []int, status string, active *bool) (int64, error)
}

type retailAssetRepo struct {
	db *pgxpool.Pool
}

func NewRetailAssetRepository(db *pgxpool.Pool) RetailAssetRepository {
	return &retailAssetRepo{db: db}
}

var retailAssetColumns = []string{
	"asset_id", "assigned_user", "outlet_id", "item", "brand", "model", "power_input", "sn",
	"date_purchase", "allocation", "status", "remark", "active",
}

var (
	retailAssetInsert = fmt.Sprintf(`INSERT INTO retail_assets (%s) VALUES (%s)`,
		strings.Join(retailAssetColumns, ", "), placeholders(1, len(retailAssetColumns)))

	retailAssetUpdate = fmt.Sprintf(`UPDATE retail_assets SET %s, updated_at = NOW() WHERE id = $%d`,
		assignments(retailAssetColumns, 1), len(retailAssetColumns)+1)

	retailAssetSelect = `SELECT a.id, ` + prefixed("a", retailAssetColumns) + `, a.created_at, a.updated_at, o.name
		 FROM retail_assets a
		 JOIN outlets o ON o.id = a.outlet_id`
)

func retailAssetArgs(a *models.RetailAsset) []any {
	return []any{
		a.AssetID, a.User, a.OutletID, a.Item, a.Brand, a.Model, a.PowerInput, a.SN,
		a.DatePurchase, a.Allocation, a.Status, a.Remark, a.Active,
	}
}

func scanRetailAsset(row pgx.Row) (*models.RetailAsset, error) {
	var a models.RetailAsset
	err := row.Scan(
		&a.ID,
		&a.AssetID, &a.User, &a.OutletID, &a.Item, &a.Brand, &a.Model, &a.PowerInput, &a.SN,
		&a.DatePurchase, &a.Allocation, &a.Status, &a.Remark, &a.Active,
		&a.CreatedAt, &a.UpdatedAt, &a.OutletName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *retailAssetRepo) GetAssetIDs(ctx context.Context, prefix string) ([]string, error) {
	return collectAssetIDs(ctx, r.db,
		`SELECT asset_id FROM retail_assets WHERE asset_id IS NOT NULL AND left(asset_id, length($1)) = $1`,
		prefix)
}

func (r *retailAssetRepo) Create(ctx context.Context, a *models.RetailAsset, tx pgx.Tx) error {
	query := retailAssetInsert + ` RETURNING id, created_at, updated_at`
	return pick(r.db, tx).QueryRow(ctx, query, retailAssetArgs(a)...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *retailAssetRepo) GetByID(ctx context.Context, id int) (*models.RetailAsset, error) {
	a, err := scanRetailAsset(r.db.QueryRow(ctx, retailAssetSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *retailAssetRepo) Update(ctx context.Context, a *models.RetailAsset) error {
	args := append(retailAssetArgs(a), a.ID)
	err := r.db.QueryRow(ctx, retailAssetUpdate+` RETURNING created_at, updated_at`, args...).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return notFound(err)
}

func (r *retailAssetRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM retail_assets`).Scan(&n)
	return n, err
}

func (r *retailAssetRepo) List(ctx context.Context, filter RetailAssetFilter) ([]models.RetailAsset, error) {
	w := &where{}
	if filter.Search != "" {
		w.add(`(a.asset_id ILIKE ? OR a.item ILIKE ? OR a.brand ILIKE ? OR a.model ILIKE ? OR a.sn ILIKE ?)`,
			"%"+filter.Search+"%")
	}
	if filter.Status != "" {
		w.add(`a.status = ?`, filter.Status)
	}
	if filter.OutletID != 0 {
		w.add(`a.outlet_id = ?`, filter.OutletID)
	}
	if filter.Outlet != "" {
		w.add(`o.name ILIKE ?`, "%"+filter.Outlet+"%")
	}
	if filter.Active != nil {
		w.add(`a.active = ?`, *filter.Active)
	}

	rows, err := r.db.Query(ctx, retailAssetSelect+w.String()+` ORDER BY a.id`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.RetailAsset{}
	for rows.Next() {
		a, err := scanRetailAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// UpsertBySerial is keyed by sn and otherwise behaves like the IT asset upsert.
func (r *retailAssetRepo) UpsertBySerial(ctx context.Context, a *models.RetailAsset) (bool, error) {
	query := retailAssetInsert + `
		ON CONFLICT (sn) DO UPDATE SET ` +
		excludedSet(retailAssetColumns, "asset_id", "sn", "active") + `,
			asset_id = COALESCE(retail_assets.asset_id, EXCLUDED.asset_id),
			updated_at = NOW()
		RETURNING id, asset_id, created_at, updated_at, (xmax = 0) AS created`

	var created bool
	err := r.db.QueryRow(ctx, query, retailAssetArgs(a)...).
		Scan(&a.ID, &a.AssetID, &a.CreatedAt, &a.UpdatedAt, &created)
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *retailAssetRepo) SetStatus(ctx context.Context, ids []int, status string, active *bool) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE retail_assets
		SET status = $1, active = COALESCE($2::boolean, active), updated_at = NOW()
		WHERE id = ANY($3)`,
		status, active, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

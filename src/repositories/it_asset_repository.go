package repositories

import (
	"context"
	"fmt"
	"strings"

	"assetserver/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ITAssetFilter narrows IT asset listings. Zero values match everything.
type ITAssetFilter struct {
	Search    string
	Status    string
	OutletID  int
	Outlet    string
	AssetType string
	Active    *bool
}

type ITAssetRepository interface {
	GetAssetIDs(ctx context.Context, prefix string) ([]string, error)
	Create(ctx context.Context, asset *models.ITAsset, tx pgx.Tx) error
	GetByID(ctx context.Context, id int) (*models.ITAsset, error)
	List(ctx context.Context, filter ITAssetFilter) ([]models.ITAsset, error)
	Update(ctx context.Context, asset *models.ITAsset) error
	Count(ctx context.Context, assetType string) (int, error)
	UpsertBySerial(ctx context.Context, asset *models.ITAsset) (bool, error)
	SetStatus(ctx context.Context, ids []int, status string, active *bool, assetType string) (int64, error)
}

type itAssetRepo struct {
	db *pgxpool.Pool
}

func NewITAssetRepository(db *pgxpool.Pool) ITAssetRepository {
	return &itAssetRepo{db: db}
}

var itAssetColumns = []string{
	"asset_id", "assigned_user", "item", "brand", "model", "serial_number", "date_purchase",
	"outlet_id", "asset_type", "allocation", "status", "active", "remark",
	"cpu", "gpu", "memory", "disk", "disk_id", "motherboard_model", "operating_system", "hostname",
	"network", "ip_address", "mac_address", "local_ip", "nic_speed", "gpon_sn", "wifi_type", "power_rating",
	"power_adapter", "port", "version", "device_type", "device_model", "build", "video_input",
	"total_channel", "hdd_total_space", "firmware_version", "location", "hybrid", "wip",
}

var (
	itAssetInsert = fmt.Sprintf(`INSERT INTO it_assets (%s) VALUES (%s)`,
		strings.Join(itAssetColumns, ", "), placeholders(1, len(itAssetColumns)))

	itAssetUpdate = fmt.Sprintf(`UPDATE it_assets SET %s, updated_at = NOW() WHERE id = $%d`,
		assignments(itAssetColumns, 1), len(itAssetColumns)+1)

	itAssetSelect = `SELECT a.id, ` + strings.Replace(prefixed("a", itAssetColumns),
		"a.serial_number", "COALESCE(a.serial_number, '')", 1) +
		`, a.created_at, a.updated_at, o.name
		 FROM it_assets a
		 JOIN outlets o ON o.id = a.outlet_id`
)

func itAssetArgs(a *models.ITAsset) []any {
	return []any{
		a.AssetID, a.User, a.Item, a.Brand, a.Model, nullIfEmpty(a.SerialNumber), a.DatePurchase,
		a.OutletID, a.AssetType, a.Allocation, a.Status, a.Active, a.Remark,
		a.CPU, a.GPU, a.Memory, a.Disk, a.DiskID, a.MotherboardModel, a.OperatingSystem, a.Hostname,
		a.Network, a.IPAddress, a.MACAddress, a.LocalIP, a.NICSpeed, a.GPONSN, a.WifiType, a.PowerRating,
		a.PowerAdapter, a.Port, a.Version, a.DeviceType, a.DeviceModel, a.Build, a.VideoInput,
		a.TotalChannel, a.HDDTotalSpace, a.FirmwareVersion, a.Location, a.Hybrid, a.WIP,
	}
}

func scanITAsset(row pgx.Row) (*models.ITAsset, error) {
	var a models.ITAsset
	err := row.Scan(
		&a.ID,
		&a.AssetID, &a.User, &a.Item, &a.Brand, &a.Model, &a.SerialNumber, &a.DatePurchase,
		&a.OutletID, &a.AssetType, &a.Allocation, &a.Status, &a.Active, &a.Remark,
		&a.CPU, &a.GPU, &a.Memory, &a.Disk, &a.DiskID, &a.MotherboardModel, &a.OperatingSystem, &a.Hostname,
		&a.Network, &a.IPAddress, &a.MACAddress, &a.LocalIP, &a.NICSpeed, &a.GPONSN, &a.WifiType, &a.PowerRating,
		&a.PowerAdapter, &a.Port, &a.Version, &a.DeviceType, &a.DeviceModel, &a.Build, &a.VideoInput,
		&a.TotalChannel, &a.HDDTotalSpace, &a.FirmwareVersion, &a.Location, &a.Hybrid, &a.WIP,
		&a.CreatedAt, &a.UpdatedAt, &a.OutletName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAssetIDs returns every assigned asset id starting with prefix.
func (r *itAssetRepo) GetAssetIDs(ctx context.Context, prefix string) ([]string, error) {
	return collectAssetIDs(ctx, r.db,
		`SELECT asset_id FROM it_assets WHERE asset_id IS NOT NULL AND left(asset_id, length($1)) = $1`,
		prefix)
}

func (r *itAssetRepo) Create(ctx context.Context, a *models.ITAsset, tx pgx.Tx) error {
	query := itAssetInsert + ` RETURNING id, created_at, updated_at`
	return pick(r.db, tx).QueryRow(ctx, query, itAssetArgs(a)...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *itAssetRepo) GetByID(ctx context.Context, id int) (*models.ITAsset, error) {
	a, err := scanITAsset(r.db.QueryRow(ctx, itAssetSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// Update overwrites every column of the asset with id a.ID.
func (r *itAssetRepo) Update(ctx context.Context, a *models.ITAsset) error {
	args := append(itAssetArgs(a), a.ID)
	err := r.db.QueryRow(ctx, itAssetUpdate+` RETURNING created_at, updated_at`, args...).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	return notFound(err)
}

// Count returns how many IT assets exist, only of assetType when non-empty.
func (r *itAssetRepo) Count(ctx context.Context, assetType string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM it_assets WHERE $1 = '' OR asset_type = $1`, assetType).Scan(&n)
	return n, err
}

func (r *itAssetRepo) List(ctx context.Context, filter ITAssetFilter) ([]models.ITAsset, error) {
	w := &where{}
	if filter.Search != "" {
		w.add(`(a.asset_id ILIKE ? OR a.item ILIKE ? OR a.brand ILIKE ? OR a.model ILIKE ?
			OR a.serial_number ILIKE ? OR a.hostname ILIKE ? OR a.ip_address ILIKE ?)`, "%"+filter.Search+"%")
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
	if filter.AssetType != "" {
		w.add(`a.asset_type = ?`, filter.AssetType)
	}
	if filter.Active != nil {
		w.add(`a.active = ?`, *filter.Active)
	}

	rows, err := r.db.Query(ctx, itAssetSelect+w.String()+` ORDER BY a.id`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.ITAsset{}
	for rows.Next() {
		a, err := scanITAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// UpsertBySerial inserts the asset or updates the row holding its serial
// number. An existing asset id, the active flag and created_at are kept. It
// reports whether a row was created and leaves the stored asset id on a.
func (r *itAssetRepo) UpsertBySerial(ctx context.Context, a *models.ITAsset) (bool, error) {
	query := itAssetInsert + `
		ON CONFLICT (serial_number) DO UPDATE SET ` +
		excludedSet(itAssetColumns, "asset_id", "serial_number", "active") + `,
			asset_id = COALESCE(it_assets.asset_id, EXCLUDED.asset_id),
			updated_at = NOW()
		RETURNING id, asset_id, created_at, updated_at, (xmax = 0) AS created`

	var created bool
	err := r.db.QueryRow(ctx, query, itAssetArgs(a)...).
		Scan(&a.ID, &a.AssetID, &a.CreatedAt, &a.UpdatedAt, &created)
	if err != nil {
		return false, err
	}
	return created, nil
}

// SetStatus updates status, and active when not nil, of the given assets. A
// non-empty assetType restricts the update to that type.
func (r *itAssetRepo) SetStatus(ctx context.Context, ids []int, status string, active *bool, assetType string) (int64, error) {
	query := `
		UPDATE it_assets
		SET status = $1, active = COALESCE($2::boolean, active), updated_at = NOW()
		WHERE id = ANY($3)`
	args := []any{status, active, ids}
	if assetType != "" {
		query += ` AND asset_type = $4`
		args = append(args, assetType)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectAssetIDs(ctx context.Context, q querier, query string, prefix string) ([]string, error) {
	rows, err := q.Query(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

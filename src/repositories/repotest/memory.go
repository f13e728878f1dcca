// Package repotest provides in-memory repositories and database helpers for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"assetserver/src/models"
	"assetserver/src/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation builds the error postgres returns for a violated constraint.
func UniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		ConstraintName: constraint,
	}
}

type Outlets struct {
	mu      sync.Mutex
	outlets []models.Outlet
}

func NewOutlets(names ...string) *Outlets {
	o := &Outlets{}
	for _, name := range names {
		_, _ = o.GetOrCreate(context.Background(), name)
	}
	return o
}

func (o *Outlets) GetOrCreate(_ context.Context, name string) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	name = strings.TrimSpace(name)
	for _, outlet := range o.outlets {
		if outlet.Name == name {
			return outlet.ID, nil
		}
	}
	outlet := models.Outlet{ID: len(o.outlets) + 1, Name: name, CreatedAt: time.Now()}
	o.outlets = append(o.outlets, outlet)
	return outlet.ID, nil
}

func (o *Outlets) GetAll(_ context.Context) ([]models.Outlet, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := append([]models.Outlet{}, o.outlets...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (o *Outlets) GetByID(_ context.Context, id int) (*models.Outlet, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, outlet := range o.outlets {
		if outlet.ID == id {
			found := outlet
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (o *Outlets) name(id int) string {
	outlet, err := o.GetByID(context.Background(), id)
	if err != nil {
		return ""
	}
	return outlet.Name
}

// ITAssets is an in-memory ITAssetRepository enforcing the asset_id and
// serial_number unique constraints.
type ITAssets struct {
	mu      sync.Mutex
	outlets *Outlets
	assets  []*models.ITAsset
	// Steal, when set, is called before each Create and may insert a
	// competing asset id to simulate a concurrent writer.
	Steal func(asset *models.ITAsset) *string
}

func NewITAssets(outlets *Outlets) *ITAssets {
	return &ITAssets{outlets: outlets}
}

func (r *ITAssets) GetAssetIDs(_ context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, a := range r.assets {
		if a.AssetID != nil && strings.HasPrefix(*a.AssetID, prefix) {
			ids = append(ids, *a.AssetID)
		}
	}
	return ids, nil
}

func (r *ITAssets) Create(_ context.Context, asset *models.ITAsset, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Steal != nil {
		if id := r.Steal(asset); id != nil {
			r.insert(&models.ITAsset{AssetID: id, OutletID: asset.OutletID})
		}
	}
	if err := r.check(asset, 0); err != nil {
		return err
	}
	r.insert(asset)
	return nil
}

func (r *ITAssets) insert(asset *models.ITAsset) {
	asset.ID = len(r.assets) + 1
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	stored := *asset
	r.assets = append(r.assets, &stored)
}

func (r *ITAssets) check(asset *models.ITAsset, skipID int) error {
	for _, a := range r.assets {
		if a.ID == skipID {
			continue
		}
		if asset.AssetID != nil && a.AssetID != nil && *asset.AssetID == *a.AssetID {
			return UniqueViolation("it_assets_asset_id_key")
		}
		if asset.SerialNumber != "" && asset.SerialNumber == a.SerialNumber {
			return UniqueViolation("it_assets_serial_number_key")
		}
	}
	return nil
}

func (r *ITAssets) GetByID(_ context.Context, id int) (*models.ITAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID == id {
			found := *a
			found.OutletName = r.outlets.name(a.OutletID)
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *ITAssets) List(_ context.Context, filter repositories.ITAssetFilter) ([]models.ITAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ITAsset{}
	for _, a := range r.assets {
		if filter.AssetType != "" && a.AssetType != filter.AssetType {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.OutletID != 0 && a.OutletID != filter.OutletID {
			continue
		}
		if filter.Active != nil && a.Active != *filter.Active {
			continue
		}
		if filter.Search != "" && !containsFold(filter.Search, deref(a.AssetID), a.Item, a.Brand, a.Model, a.SerialNumber) {
			continue
		}
		found := *a
		found.OutletName = r.outlets.name(a.OutletID)
		if filter.Outlet != "" && !containsFold(filter.Outlet, found.OutletName) {
			continue
		}
		out = append(out, found)
	}
	return out, nil
}

func (r *ITAssets) Update(_ context.Context, asset *models.ITAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID != asset.ID {
			continue
		}
		if err := r.check(asset, a.ID); err != nil {
			return err
		}
		asset.CreatedAt = a.CreatedAt
		asset.UpdatedAt = time.Now()
		*a = *asset
		return nil
	}
	return repositories.ErrNotFound
}

func (r *ITAssets) Count(_ context.Context, assetType string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.assets {
		if assetType == "" || a.AssetType == assetType {
			n++
		}
	}
	return n, nil
}

func (r *ITAssets) UpsertBySerial(_ context.Context, asset *models.ITAsset) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if asset.SerialNumber != "" {
		for _, a := range r.assets {
			if a.SerialNumber != asset.SerialNumber {
				continue
			}
			if a.AssetID != nil {
				asset.AssetID = a.AssetID
			}
			if err := r.check(asset, a.ID); err != nil {
				return false, err
			}
			asset.ID, asset.Active, asset.CreatedAt = a.ID, a.Active, a.CreatedAt
			asset.UpdatedAt = time.Now()
			*a = *asset
			return false, nil
		}
	}
	if err := r.check(asset, 0); err != nil {
		return false, err
	}
	r.insert(asset)
	return true, nil
}

func (r *ITAssets) SetStatus(_ context.Context, ids []int, status string, active *bool, assetType string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.assets {
		if !containsID(ids, a.ID) || (assetType != "" && a.AssetType != assetType) {
			continue
		}
		a.Status = status
		if active != nil {
			a.Active = *active
		}
		n++
	}
	return n, nil
}

// RetailAssets is an in-memory RetailAssetRepository.
type RetailAssets struct {
	mu      sync.Mutex
	outlets *Outlets
	assets  []*models.RetailAsset
	Steal   func(asset *models.RetailAsset) *string
}

func NewRetailAssets(outlets *Outlets) *RetailAssets {
	return &RetailAssets{outlets: outlets}
}

func (r *RetailAssets) GetAssetIDs(_ context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for _, a := range r.assets {
		if a.AssetID != nil && strings.HasPrefix(*a.AssetID, prefix) {
			ids = append(ids, *a.AssetID)
		}
	}
	return ids, nil
}

func (r *RetailAssets) Create(_ context.Context, asset *models.RetailAsset, _ pgx.Tx) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Steal != nil {
		if id := r.Steal(asset); id != nil {
			r.insert(&models.RetailAsset{AssetID: id, OutletID: asset.OutletID, SN: "stolen-" + *id})
		}
	}
	if err := r.check(asset, 0); err != nil {
		return err
	}
	r.insert(asset)
	return nil
}

func (r *RetailAssets) insert(asset *models.RetailAsset) {
	asset.ID = len(r.assets) + 1
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	stored := *asset
	r.assets = append(r.assets, &stored)
}

func (r *RetailAssets) check(asset *models.RetailAsset, skipID int) error {
	for _, a := range r.assets {
		if a.ID == skipID {
			continue
		}
		if asset.AssetID != nil && a.AssetID != nil && *asset.AssetID == *a.AssetID {
			return UniqueViolation("retail_assets_asset_id_key")
		}
		if asset.SN == a.SN {
			return UniqueViolation("retail_assets_sn_key")
		}
	}
	return nil
}

func (r *RetailAssets) GetByID(_ context.Context, id int) (*models.RetailAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID == id {
			found := *a
			found.OutletName = r.outlets.name(a.OutletID)
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *RetailAssets) List(_ context.Context, filter repositories.RetailAssetFilter) ([]models.RetailAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RetailAsset{}
	for _, a := range r.assets {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.OutletID != 0 && a.OutletID != filter.OutletID {
			continue
		}
		if filter.Active != nil && a.Active != *filter.Active {
			continue
		}
		if filter.Search != "" && !containsFold(filter.Search, deref(a.AssetID), a.Item, a.Brand, a.Model, a.SN) {
			continue
		}
		found := *a
		found.OutletName = r.outlets.name(a.OutletID)
		if filter.Outlet != "" && !containsFold(filter.Outlet, found.OutletName) {
			continue
		}
		out = append(out, found)
	}
	return out, nil
}

func (r *RetailAssets) Update(_ context.Context, asset *models.RetailAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID != asset.ID {
			continue
		}
		if err := r.check(asset, a.ID); err != nil {
			return err
		}
		asset.CreatedAt = a.CreatedAt
		asset.UpdatedAt = time.Now()
		*a = *asset
		return nil
	}
	return repositories.ErrNotFound
}

func (r *RetailAssets) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assets), nil
}

func (r *RetailAssets) UpsertBySerial(_ context.Context, asset *models.RetailAsset) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.SN != asset.SN {
			continue
		}
		if a.AssetID != nil {
			asset.AssetID = a.AssetID
		}
		if err := r.check(asset, a.ID); err != nil {
			return false, err
		}
		asset.ID, asset.Active, asset.CreatedAt = a.ID, a.Active, a.CreatedAt
		asset.UpdatedAt = time.Now()
		*a = *asset
		return false, nil
	}
	if err := r.check(asset, 0); err != nil {
		return false, err
	}
	r.insert(asset)
	return true, nil
}

func (r *RetailAssets) SetStatus(_ context.Context, ids []int, status string, active *bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.assets {
		if !containsID(ids, a.ID) {
			continue
		}
		a.Status = status
		if active != nil {
			a.Active = *active
		}
		n++
	}
	return n, nil
}

type ServiceRecords struct {
	mu      sync.Mutex
	records []models.ServiceRecord
}

func NewServiceRecords() *ServiceRecords {
	return &ServiceRecords{}
}

func (r *ServiceRecords) Create(_ context.Context, record *models.ServiceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = len(r.records) + 1
	record.CreatedAt = time.Now()
	r.records = append(r.records, *record)
	return nil
}

func (r *ServiceRecords) ListByAsset(_ context.Context, assetID int) ([]models.ServiceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ServiceRecord{}
	for _, rec := range r.records {
		if rec.AssetID == assetID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ServiceDate.Equal(out[j].ServiceDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].ServiceDate.After(out[j].ServiceDate)
	})
	return out, nil
}

func containsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func containsID(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var (
	_ repositories.OutletRepository        = (*Outlets)(nil)
	_ repositories.ITAssetRepository       = (*ITAssets)(nil)
	_ repositories.RetailAssetRepository   = (*RetailAssets)(nil)
	_ repositories.ServiceRecordRepository = (*ServiceRecords)(nil)
)

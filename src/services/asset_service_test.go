package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"assetserver/src/models"
	"assetserver/src/repositories"
	"assetserver/src/repositories/repotest"
	"assetserver/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	outlets *repotest.Outlets
	it      *repotest.ITAssets
	retail  *repotest.RetailAssets
	service *services.AssetService
}

func newFixture(retries int) *fixture {
	outlets := repotest.NewOutlets("Store A")
	f := &fixture{
		outlets: outlets,
		it:      repotest.NewITAssets(outlets),
		retail:  repotest.NewRetailAssets(outlets),
	}
	f.service = services.NewAssetService(f.outlets, f.it, f.retail, retries)
	return f
}

func strPtr(s string) *string { return &s }

func TestNextAssetIDs(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	_, err := f.service.NextRetailAssetID(ctx, "  ")
	assert.ErrorIs(t, err, services.ErrMissingCategory)
	_, err = f.service.NextITAssetID(ctx, "")
	assert.ErrorIs(t, err, services.ErrMissingCategory)

	id, err := f.service.NextRetailAssetID(ctx, "Chiller #2")
	require.NoError(t, err)
	assert.Equal(t, "CHILLER01", id)

	require.NoError(t, f.it.Create(ctx, &models.ITAsset{AssetID: strPtr("CPU07"), OutletID: 1}, nil))
	id, err = f.service.NextITAssetID(ctx, "CPU")
	require.NoError(t, err)
	assert.Equal(t, "CPU08", id)

	id, err = f.service.NextITAssetID(ctx, "scanner")
	require.NoError(t, err)
	assert.Equal(t, "IT01", id)
}

func TestCreateRetailAsset(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	first := &models.RetailAsset{Item: "Chiller", SN: "C-1", OutletName: "Store B"}
	require.NoError(t, f.service.CreateRetailAsset(ctx, first))
	assert.Equal(t, "CHILLER01", *first.AssetID)
	assert.Equal(t, models.StatusDraft, first.Status)
	assert.Equal(t, 2, first.OutletID)

	second := &models.RetailAsset{Item: "chiller", SN: "C-2", OutletID: 1, Active: true}
	require.NoError(t, f.service.CreateRetailAsset(ctx, second))
	assert.Equal(t, "CHILLER02", *second.AssetID)
	assert.Equal(t, models.StatusActive, second.Status)

	err := f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "Chiller", SN: "C-1", OutletID: 1})
	assert.ErrorIs(t, err, services.ErrDuplicateSerial)

	err = f.service.CreateRetailAsset(ctx, &models.RetailAsset{AssetID: strPtr("CHILLER01"), Item: "Chiller", SN: "C-3", OutletID: 1})
	assert.ErrorIs(t, err, services.ErrDuplicateAssetID)

	err = f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "Chiller", SN: "C-4"})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)

	err = f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "Chiller", OutletID: 1})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)

	err = f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "Chiller", SN: "C-5", OutletID: 42})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)
}

func TestCreateRetriesAllocationOnConflict(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	stolen := 0
	f.it.Steal = func(asset *models.ITAsset) *string {
		if stolen >= 2 {
			return nil
		}
		stolen++
		return asset.AssetID
	}

	asset := &models.ITAsset{AssetType: "cctv", SerialNumber: "DS-1", OutletID: 1}
	require.NoError(t, f.service.CreateITAsset(ctx, asset))
	assert.Equal(t, "CCTV03", *asset.AssetID)
	assert.Equal(t, 2, stolen)
}

func TestCreateGivesUpAfterRetries(t *testing.T) {
	f := newFixture(2)
	ctx := context.Background()

	attempts := 0
	f.retail.Steal = func(asset *models.RetailAsset) *string {
		attempts++
		return asset.AssetID
	}

	err := f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "TV", SN: "TV-1", OutletID: 1})
	assert.ErrorIs(t, err, services.ErrAllocationConflict)
	assert.Equal(t, 3, attempts)
}

func TestCreateTrimsExplicitAssetID(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	asset := &models.ITAsset{AssetID: strPtr(" CPU07 "), AssetType: "cpu", SerialNumber: "PC-7", OutletID: 1}
	require.NoError(t, f.service.CreateITAsset(ctx, asset))
	assert.Equal(t, "CPU07", *asset.AssetID)

	id, err := f.service.NextITAssetID(ctx, "cpu")
	require.NoError(t, err)
	assert.Equal(t, "CPU08", id)

	err = f.service.CreateITAsset(ctx, &models.ITAsset{AssetID: strPtr("CPU07  "), AssetType: "cpu", SerialNumber: "PC-8", OutletID: 1})
	assert.ErrorIs(t, err, services.ErrDuplicateAssetID)

	blank := &models.RetailAsset{AssetID: strPtr("   "), Item: "Oven", SN: "O-1", OutletID: 1}
	require.NoError(t, f.service.CreateRetailAsset(ctx, blank))
	assert.Equal(t, "OVEN01", *blank.AssetID)
}

func TestCreateStopsRetryingWhenCancelled(t *testing.T) {
	f := newFixture(5)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := 0
	f.retail.Steal = func(asset *models.RetailAsset) *string {
		attempts++
		cancel()
		return asset.AssetID
	}

	err := f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "TV", SN: "TV-1", OutletID: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestUpdateRetailAsset(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	purchased := time.Date(2021, time.March, 5, 0, 0, 0, 0, time.UTC)
	first := &models.RetailAsset{Item: "Chiller", SN: "C-1", OutletID: 1, DatePurchase: &purchased}
	require.NoError(t, f.service.CreateRetailAsset(ctx, first))
	second := &models.RetailAsset{Item: "Chiller", SN: "C-2", OutletID: 1}
	require.NoError(t, f.service.CreateRetailAsset(ctx, second))

	edit := &models.RetailAsset{
		ID:         first.ID,
		AssetID:    strPtr(" CHILLER09 "),
		Item:       "Chiller",
		Brand:      "Daikin",
		SN:         " C-1A ",
		OutletName: "Store B",
		Active:     true,
	}
	require.NoError(t, f.service.UpdateRetailAsset(ctx, edit))
	assert.Equal(t, "CHILLER09", *edit.AssetID)
	assert.Equal(t, "C-1A", edit.SN)
	assert.Equal(t, "Daikin", edit.Brand)
	assert.Equal(t, "Store B", edit.OutletName)
	assert.Equal(t, models.StatusActive, edit.Status)
	require.NotNil(t, edit.DatePurchase)
	assert.True(t, purchased.Equal(*edit.DatePurchase))

	keep := &models.RetailAsset{ID: first.ID, Item: "Chiller", SN: "C-1A", Status: models.StatusInactive}
	require.NoError(t, f.service.UpdateRetailAsset(ctx, keep))
	assert.Equal(t, "CHILLER09", *keep.AssetID)
	assert.Equal(t, "Store B", keep.OutletName)
	assert.Equal(t, models.StatusInactive, keep.Status)
	assert.False(t, keep.Active)

	ids, err := f.retail.GetAssetIDs(ctx, "CHILLER")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CHILLER09", "CHILLER02"}, ids)

	err = f.service.UpdateRetailAsset(ctx, &models.RetailAsset{ID: second.ID, SN: "C-1A"})
	assert.ErrorIs(t, err, services.ErrDuplicateSerial)
	err = f.service.UpdateRetailAsset(ctx, &models.RetailAsset{ID: second.ID, SN: "C-2", AssetID: strPtr("CHILLER09")})
	assert.ErrorIs(t, err, services.ErrDuplicateAssetID)
	err = f.service.UpdateRetailAsset(ctx, &models.RetailAsset{ID: 99, SN: "C-9"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	err = f.service.UpdateRetailAsset(ctx, &models.RetailAsset{ID: first.ID, SN: " "})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)
	err = f.service.UpdateRetailAsset(ctx, &models.RetailAsset{ID: first.ID, SN: "C-1A", OutletID: 42})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)
}

func TestUpdateITAsset(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	cpu := &models.ITAsset{AssetType: "cpu", SerialNumber: "PC-1", OutletID: 1}
	require.NoError(t, f.service.CreateITAsset(ctx, cpu))

	edit := &models.ITAsset{ID: cpu.ID, SerialNumber: "PC-1", Hostname: "till-01"}
	require.NoError(t, f.service.UpdateITAsset(ctx, edit))
	assert.Equal(t, models.AssetTypeCPU, edit.AssetType)
	assert.Equal(t, "CPU01", *edit.AssetID)
	assert.Equal(t, "till-01", edit.Hostname)
	assert.Equal(t, models.StatusDraft, edit.Status)
	assert.Equal(t, "Store A", edit.OutletName)

	err := f.service.UpdateITAsset(ctx, &models.ITAsset{ID: cpu.ID, AssetType: "toaster"})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)
	err = f.service.UpdateITAsset(ctx, &models.ITAsset{ID: 5, AssetType: "cpu"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestStats(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	stats, err := f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total())

	require.NoError(t, f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "Oven", SN: "O-1", OutletID: 1}))
	require.NoError(t, f.service.CreateRetailAsset(ctx, &models.RetailAsset{Item: "Oven", SN: "O-2", OutletID: 1}))
	for _, assetType := range []string{"cpu", "network", "network"} {
		require.NoError(t, f.service.CreateITAsset(ctx, &models.ITAsset{AssetType: assetType, OutletID: 1}))
	}

	stats, err = f.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.AssetStats{Retail: 2, IT: 1, Network: 2}, *stats)
	assert.Equal(t, 5, stats.Total())
}

func TestCreateITAssetValidatesType(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	err := f.service.CreateITAsset(ctx, &models.ITAsset{AssetType: "scanner", OutletID: 1})
	assert.ErrorIs(t, err, services.ErrInvalidAsset)

	asset := &models.ITAsset{OutletID: 1}
	require.NoError(t, f.service.CreateITAsset(ctx, asset))
	assert.Equal(t, models.AssetTypeOther, asset.AssetType)
	assert.Equal(t, "OTHER01", *asset.AssetID)
}

func TestMoveToActive(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	asset := &models.RetailAsset{Item: "Chiller", SN: "C-1", OutletID: 1}
	require.NoError(t, f.service.CreateRetailAsset(ctx, asset))

	require.NoError(t, f.service.MoveToActive(ctx, models.KindRetail, asset.ID))
	got, err := f.service.GetRetailAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, models.StatusActive, got.Status)

	require.NoError(t, f.service.MoveToActive(ctx, models.KindRetail, asset.ID))

	err = f.service.MoveToActive(ctx, models.KindIT, 99)
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = f.service.MoveToActive(ctx, models.AssetKind("vehicle"), 1)
	assert.ErrorIs(t, err, services.ErrUnknownKind)
}

func TestBulkAction(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	var ids []int
	for i, assetType := range []string{"network", "network", "cpu"} {
		asset := &models.ITAsset{AssetType: assetType, SerialNumber: fmt.Sprintf("SN-%d", i), OutletID: 1}
		require.NoError(t, f.service.CreateITAsset(ctx, asset))
		ids = append(ids, asset.ID)
	}

	tests := []struct {
		name     string
		kind     models.AssetKind
		action   models.BulkAction
		updated  int64
		status   string
		active   bool
		checkIdx int
	}{
		{"activate network only", models.KindNetwork, models.ActionActivate, 2, models.StatusActive, true, 0},
		{"maintenance keeps active flag", models.KindIT, models.ActionMaintenance, 3, models.StatusUnderMaintenance, true, 1},
		{"deactivate", models.KindIT, models.ActionDeactivate, 3, models.StatusInactive, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := f.service.BulkAction(ctx, tt.kind, tt.action, ids)
			require.NoError(t, err)
			assert.Equal(t, tt.updated, n)

			got, err := f.service.GetITAsset(ctx, ids[tt.checkIdx])
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.active, got.Active)
		})
	}

	_, err := f.service.BulkAction(ctx, models.KindIT, models.BulkAction("delete"), ids)
	assert.ErrorIs(t, err, services.ErrUnknownAction)
	_, err = f.service.BulkAction(ctx, models.AssetKind("vehicle"), models.ActionActivate, ids)
	assert.ErrorIs(t, err, services.ErrUnknownKind)
}

func TestListAssets(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	require.NoError(t, f.service.CreateITAsset(ctx, &models.ITAsset{AssetType: "cctv", Item: "CCTV DVR", SerialNumber: "DS-1", OutletID: 1}))
	require.NoError(t, f.service.CreateITAsset(ctx, &models.ITAsset{AssetType: "cpu", Item: "Desktop", SerialNumber: "PC-1", OutletID: 1}))

	cctv, err := f.service.ListITAssets(ctx, repositories.ITAssetFilter{AssetType: "cctv"})
	require.NoError(t, err)
	require.Len(t, cctv, 1)
	assert.Equal(t, "Store A", cctv[0].OutletName)

	found, err := f.service.ListITAssets(ctx, repositories.ITAssetFilter{Search: "desk"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CPU01", *found[0].AssetID)

	outlets, err := f.service.ListOutlets(ctx)
	require.NoError(t, err)
	assert.Len(t, outlets, 1)
}

package repositories_test

import (
	"context"
	"testing"
	"time"

	"assetserver/src/database"
	"assetserver/src/models"
	"assetserver/src/repositories"
	"assetserver/src/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOutletRepository(t *testing.T) {
	db := repotest.SetupTestDB(t)
	defer repotest.TruncateTables(t, db)

	repo := repositories.NewOutletRepository(db)
	ctx := context.Background()

	id, err := repo.GetOrCreate(ctx, " Store A ")
	require.NoError(t, err)
	again, err := repo.GetOrCreate(ctx, "Store A")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	_, err = repo.GetOrCreate(ctx, "Store B")
	require.NoError(t, err)

	outlets, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, outlets, 2)
	assert.Equal(t, "Store A", outlets[0].Name)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestITAssetRepository(t *testing.T) {
	db := repotest.SetupTestDB(t)
	defer repotest.TruncateTables(t, db)

	ctx := context.Background()
	outletID, err := repositories.NewOutletRepository(db).GetOrCreate(ctx, "Store A")
	require.NoError(t, err)
	repo := repositories.NewITAssetRepository(db)

	t.Run("Create and GetByID", func(t *testing.T) {
		purchased := time.Date(2021, time.March, 5, 0, 0, 0, 0, time.UTC)
		asset := &models.ITAsset{
			AssetID:      strPtr("CPU01"),
			Item:         "Desktop",
			SerialNumber: "PC-1",
			OutletID:     outletID,
			AssetType:    models.AssetTypeCPU,
			Status:       models.StatusDraft,
			DatePurchase: &purchased,
		}
		require.NoError(t, repo.Create(ctx, asset, nil))
		assert.NotZero(t, asset.ID)

		tx, err := db.Begin(ctx)
		require.NoError(t, err)
		second := &models.ITAsset{AssetID: strPtr("CPU02"), OutletID: outletID, AssetType: models.AssetTypeCPU}
		require.NoError(t, repo.Create(ctx, second, tx))
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, "CPU01", *got.AssetID)
		assert.Equal(t, "Store A", got.OutletName)
		require.NotNil(t, got.DatePurchase)
		assert.True(t, purchased.Equal(*got.DatePurchase))

		got, err = repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Empty(t, got.SerialNumber)
	})

	t.Run("duplicate asset id is a unique violation", func(t *testing.T) {
		err := repo.Create(ctx, &models.ITAsset{AssetID: strPtr("CPU01"), OutletID: outletID}, nil)
		assert.True(t, database.IsUniqueViolation(err, "it_assets_asset_id_key"))
	})

	t.Run("GetAssetIDs", func(t *testing.T) {
		ids, err := repo.GetAssetIDs(ctx, "CPU")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CPU01", "CPU02"}, ids)

		ids, err = repo.GetAssetIDs(ctx, "CCTV")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("UpsertBySerial", func(t *testing.T) {
		asset := &models.ITAsset{AssetID: strPtr("CCTV01"), SerialNumber: "DS-1", OutletID: outletID, AssetType: models.AssetTypeCCTV, Status: "Unknown"}
		created, err := repo.UpsertBySerial(ctx, asset)
		require.NoError(t, err)
		assert.True(t, created)

		update := &models.ITAsset{AssetID: strPtr("CCTV02"), SerialNumber: "DS-1", OutletID: outletID, AssetType: models.AssetTypeCCTV, Status: "Active", Remark: "QR"}
		created, err = repo.UpsertBySerial(ctx, update)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, asset.ID, update.ID)
		assert.Equal(t, "CCTV01", *update.AssetID)

		got, err := repo.GetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, "Active", got.Status)
		assert.Equal(t, "QR", got.Remark)
	})

	t.Run("List and SetStatus", func(t *testing.T) {
		cctv, err := repo.List(ctx, repositories.ITAssetFilter{AssetType: models.AssetTypeCCTV})
		require.NoError(t, err)
		require.Len(t, cctv, 1)

		found, err := repo.List(ctx, repositories.ITAssetFilter{Search: "pc-1"})
		require.NoError(t, err)
		require.Len(t, found, 1)

		active := true
		n, err := repo.SetStatus(ctx, []int{cctv[0].ID, found[0].ID}, models.StatusActive, &active, models.AssetTypeCCTV)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		actives, err := repo.List(ctx, repositories.ITAssetFilter{Active: &active})
		require.NoError(t, err)
		require.Len(t, actives, 1)
		assert.Equal(t, cctv[0].ID, actives[0].ID)
	})

	t.Run("Update and Count", func(t *testing.T) {
		found, err := repo.List(ctx, repositories.ITAssetFilter{Search: "pc-1"})
		require.NoError(t, err)
		require.Len(t, found, 1)

		asset := found[0]
		asset.AssetID = strPtr("CPU10")
		asset.Hostname = "till-1"
		asset.Active = true
		require.NoError(t, repo.Update(ctx, &asset))

		got, err := repo.GetByID(ctx, asset.ID)
		require.NoError(t, err)
		assert.Equal(t, "CPU10", *got.AssetID)
		assert.Equal(t, "till-1", got.Hostname)
		assert.True(t, got.Active)

		asset.AssetID = strPtr("CCTV01")
		err = repo.Update(ctx, &asset)
		assert.True(t, database.IsUniqueViolation(err, "it_assets_asset_id_key"))

		err = repo.Update(ctx, &models.ITAsset{ID: 999999, OutletID: outletID})
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		total, err := repo.Count(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		cctv, err := repo.Count(ctx, models.AssetTypeCCTV)
		require.NoError(t, err)
		assert.Equal(t, 1, cctv)
	})
}

func TestRetailAssetRepository(t *testing.T) {
	db := repotest.SetupTestDB(t)
	defer repotest.TruncateTables(t, db)

	ctx := context.Background()
	outletID, err := repositories.NewOutletRepository(db).GetOrCreate(ctx, "Store A")
	require.NoError(t, err)
	repo := repositories.NewRetailAssetRepository(db)

	asset := &models.RetailAsset{AssetID: strPtr("CHILLER01"), Item: "Chiller", SN: "C-1", OutletID: outletID, Status: models.StatusDraft}
	require.NoError(t, repo.Create(ctx, asset, nil))

	created, err := repo.UpsertBySerial(ctx, &models.RetailAsset{AssetID: strPtr("CHILLER02"), Item: "Chiller", SN: "C-1", OutletID: outletID, Model: "X"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.UpsertBySerial(ctx, &models.RetailAsset{AssetID: strPtr("CHILLER02"), Item: "Chiller", SN: "C-2", OutletID: outletID})
	require.NoError(t, err)
	assert.True(t, created)

	ids, err := repo.GetAssetIDs(ctx, "CHILLER")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CHILLER01", "CHILLER02"}, ids)

	got, err := repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Model)
	assert.Equal(t, "CHILLER01", *got.AssetID)

	inactive := false
	n, err := repo.SetStatus(ctx, []int{asset.ID}, models.StatusInactive, &inactive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.List(ctx, repositories.RetailAssetFilter{Status: models.StatusInactive, Outlet: "store"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "C-1", list[0].SN)

	got.SN = "C-1B"
	got.Remark = "relabelled"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "C-1B", got.SN)
	assert.Equal(t, "relabelled", got.Remark)

	got.SN = "C-2"
	err = repo.Update(ctx, got)
	assert.True(t, database.IsUniqueViolation(err, "retail_assets_sn_key"))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

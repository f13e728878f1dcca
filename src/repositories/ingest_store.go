package repositories

import (
	"context"
	"fmt"

	"assetserver/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IngestStore lets the ingestion pipeline write through the asset repositories.
type IngestStore struct {
	Outlets OutletRepository
	IT      ITAssetRepository
	Retail  RetailAssetRepository
}

func NewIngestStore(outlets OutletRepository, it ITAssetRepository, retail RetailAssetRepository) *IngestStore {
	return &IngestStore{Outlets: outlets, IT: it, Retail: retail}
}

// NewPostgresIngestStore builds the store over the pgx repositories sharing one
// pool.
func NewPostgresIngestStore(db *pgxpool.Pool) *IngestStore {
	return NewIngestStore(NewOutletRepository(db), NewITAssetRepository(db), NewRetailAssetRepository(db))
}

func (s *IngestStore) ResolveOutlet(ctx context.Context, name string) (int, error) {
	return s.Outlets.GetOrCreate(ctx, name)
}

func (s *IngestStore) AssetIDs(ctx context.Context, kind models.AssetKind, prefix string) ([]string, error) {
	switch kind {
	case models.KindRetail:
		return s.Retail.GetAssetIDs(ctx, prefix)
	case models.KindIT, models.KindNetwork:
		return s.IT.GetAssetIDs(ctx, prefix)
	}
	return nil, fmt.Errorf("unknown asset kind %q", kind)
}

func (s *IngestStore) UpsertITAsset(ctx context.Context, asset *models.ITAsset) (bool, error) {
	return s.IT.UpsertBySerial(ctx, asset)
}

func (s *IngestStore) UpsertRetailAsset(ctx context.Context, asset *models.RetailAsset) (bool, error) {
	return s.Retail.UpsertBySerial(ctx, asset)
}

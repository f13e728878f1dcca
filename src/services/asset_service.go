package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assetserver/src/assetid"
	"assetserver/src/database"
	"assetserver/src/models"
	"assetserver/src/repositories"
	"assetserver/src/utils"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

const (
	allocationBackoff = 10 * time.Millisecond
	allocationJitter  = 5 * time.Millisecond
)

const (
	retailAssetIDConstraint = "retail_assets_asset_id_key"
	retailSerialConstraint  = "retail_assets_sn_key"
	itAssetIDConstraint     = "it_assets_asset_id_key"
	itSerialConstraint      = "it_assets_serial_number_key"
)

type AssetServiceI interface {
	NextRetailAssetID(ctx context.Context, item string) (string, error)
	NextITAssetID(ctx context.Context, assetType string) (string, error)
	CreateRetailAsset(ctx context.Context, asset *models.RetailAsset) error
	CreateITAsset(ctx context.Context, asset *models.ITAsset) error
	UpdateRetailAsset(ctx context.Context, asset *models.RetailAsset) error
	UpdateITAsset(ctx context.Context, asset *models.ITAsset) error
	Stats(ctx context.Context) (*AssetStats, error)
	GetRetailAsset(ctx context.Context, id int) (*models.RetailAsset, error)
	GetITAsset(ctx context.Context, id int) (*models.ITAsset, error)
	ListRetailAssets(ctx context.Context, filter repositories.RetailAssetFilter) ([]models.RetailAsset, error)
	ListITAssets(ctx context.Context, filter repositories.ITAssetFilter) ([]models.ITAsset, error)
	ListOutlets(ctx context.Context) ([]models.Outlet, error)
	MoveToActive(ctx context.Context, kind models.AssetKind, id int) error
	BulkAction(ctx context.Context, kind models.AssetKind, action models.BulkAction, ids []int) (int64, error)
}

// AssetStats counts stored assets. IT excludes network assets, which are
// counted on their own.
type AssetStats struct {
	Retail  int
	IT      int
	Network int
}

func (s AssetStats) Total() int {
	return s.Retail + s.IT + s.Network
}

type AssetService struct {
	outletRepo repositories.OutletRepository
	itRepo     repositories.ITAssetRepository
	retailRepo repositories.RetailAssetRepository
	maxRetries int
}

func NewAssetService(
	outletRepo repositories.OutletRepository,
	itRepo repositories.ITAssetRepository,
	retailRepo repositories.RetailAssetRepository,
	maxRetries int,
) *AssetService {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &AssetService{
		outletRepo: outletRepo,
		itRepo:     itRepo,
		retailRepo: retailRepo,
		maxRetries: maxRetries,
	}
}

// NextRetailAssetID previews the id the next retail asset with this item name
// would get.
func (s *AssetService) NextRetailAssetID(ctx context.Context, item string) (string, error) {
	if strings.TrimSpace(item) == "" {
		return "", ErrMissingCategory
	}
	return s.allocateRetail(ctx, assetid.RetailPrefix(item))
}

func (s *AssetService) NextITAssetID(ctx context.Context, assetType string) (string, error) {
	if strings.TrimSpace(assetType) == "" {
		return "", ErrMissingCategory
	}
	return s.allocateIT(ctx, assetid.ITPrefix(assetType))
}

func (s *AssetService) allocateRetail(ctx context.Context, prefix string) (string, error) {
	existing, err := s.retailRepo.GetAssetIDs(ctx, prefix)
	if err != nil {
		return "", err
	}
	return assetid.Allocate(prefix, existing)
}

func (s *AssetService) allocateIT(ctx context.Context, prefix string) (string, error) {
	existing, err := s.itRepo.GetAssetIDs(ctx, prefix)
	if err != nil {
		return "", err
	}
	return assetid.Allocate(prefix, existing)
}

// CreateRetailAsset stores a new retail asset. Without an explicit asset id one
// is allocated, and allocated again when a concurrent create took it first.
func (s *AssetService) CreateRetailAsset(ctx context.Context, a *models.RetailAsset) error {
	a.SN = strings.TrimSpace(a.SN)
	if a.SN == "" {
		return fmt.Errorf("%w: serial number is required", ErrInvalidAsset)
	}
	outletID, err := s.resolveOutlet(ctx, a.OutletID, a.OutletName)
	if err != nil {
		return err
	}
	a.OutletID = outletID
	a.Status = initialStatus(a.Active, a.Status)

	a.AssetID = trimAssetID(a.AssetID)
	explicit := a.AssetID != nil
	prefix := assetid.RetailPrefix(a.Item)
	return s.createWithRetry(ctx, explicit, func() error {
		if !explicit {
			id, err := s.allocateRetail(ctx, prefix)
			if err != nil {
				return err
			}
			a.AssetID = &id
		}
		return s.retailRepo.Create(ctx, a, nil)
	}, retailAssetIDConstraint, retailSerialConstraint)
}

func (s *AssetService) CreateITAsset(ctx context.Context, a *models.ITAsset) error {
	a.AssetType = strings.ToLower(strings.TrimSpace(a.AssetType))
	if a.AssetType == "" {
		a.AssetType = models.AssetTypeOther
	}
	if !validAssetType(a.AssetType) {
		return fmt.Errorf("%w: unknown asset type %q", ErrInvalidAsset, a.AssetType)
	}
	a.SerialNumber = strings.TrimSpace(a.SerialNumber)
	outletID, err := s.resolveOutlet(ctx, a.OutletID, a.OutletName)
	if err != nil {
		return err
	}
	a.OutletID = outletID
	a.Status = initialStatus(a.Active, a.Status)

	a.AssetID = trimAssetID(a.AssetID)
	explicit := a.AssetID != nil
	prefix := assetid.ITPrefix(a.AssetType)
	return s.createWithRetry(ctx, explicit, func() error {
		if !explicit {
			id, err := s.allocateIT(ctx, prefix)
			if err != nil {
				return err
			}
			a.AssetID = &id
		}
		return s.itRepo.Create(ctx, a, nil)
	}, itAssetIDConstraint, itSerialConstraint)
}

// createWithRetry runs create until it stores the asset. Losing the asset_id
// race to a concurrent writer allocates again, up to maxRetries times.
func (s *AssetService) createWithRetry(ctx context.Context, explicit bool, create func() error, idConstraint, serialConstraint string) error {
	logger := utils.LoggerFromContext(ctx)
	backoff := retry.WithMaxRetries(uint64(s.maxRetries),
		retry.WithJitter(allocationJitter, retry.NewConstant(allocationBackoff)))

	attempt := 0
	err := retry.Do(ctx, backoff, func(_ context.Context) error {
		attempt++
		err := create()
		switch {
		case err == nil:
			return nil
		case database.IsUniqueViolation(err, serialConstraint):
			return ErrDuplicateSerial
		case database.IsUniqueViolation(err, idConstraint) && explicit:
			return ErrDuplicateAssetID
		case database.IsUniqueViolation(err, idConstraint):
			logger.WithField("attempt", attempt).Info("Asset id taken concurrently, allocating again")
			return retry.RetryableError(ErrAllocationConflict)
		}
		return err
	})
	if errors.Is(err, ErrAllocationConflict) {
		logger.WithField("attempts", attempt).Warn("Giving up on asset id allocation")
	}
	return err
}

// UpdateRetailAsset overwrites the retail asset with id a.ID. A blank asset id,
// outlet, status or purchase date keeps the stored value.
func (s *AssetService) UpdateRetailAsset(ctx context.Context, a *models.RetailAsset) error {
	current, err := s.retailRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.SN = strings.TrimSpace(a.SN)
	if a.SN == "" {
		return fmt.Errorf("%w: serial number is required", ErrInvalidAsset)
	}
	if a.OutletID, err = s.updatedOutlet(ctx, a.OutletID, a.OutletName, current.OutletID); err != nil {
		return err
	}
	a.AssetID = trimAssetID(a.AssetID)
	if a.AssetID == nil {
		a.AssetID = current.AssetID
	}
	a.Status = updatedStatus(a.Active, a.Status, current.Status)
	if a.DatePurchase == nil {
		a.DatePurchase = current.DatePurchase
	}

	err = s.retailRepo.Update(ctx, a)
	if err = updateError(err, retailAssetIDConstraint, retailSerialConstraint); err != nil {
		return err
	}
	stored, err := s.retailRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *stored
	return nil
}

func (s *AssetService) UpdateITAsset(ctx context.Context, a *models.ITAsset) error {
	current, err := s.itRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.AssetType = strings.ToLower(strings.TrimSpace(a.AssetType))
	if a.AssetType == "" {
		a.AssetType = current.AssetType
	}
	if !validAssetType(a.AssetType) {
		return fmt.Errorf("%w: unknown asset type %q", ErrInvalidAsset, a.AssetType)
	}
	a.SerialNumber = strings.TrimSpace(a.SerialNumber)
	if a.OutletID, err = s.updatedOutlet(ctx, a.OutletID, a.OutletName, current.OutletID); err != nil {
		return err
	}
	a.AssetID = trimAssetID(a.AssetID)
	if a.AssetID == nil {
		a.AssetID = current.AssetID
	}
	a.Status = updatedStatus(a.Active, a.Status, current.Status)
	if a.DatePurchase == nil {
		a.DatePurchase = current.DatePurchase
	}

	err = s.itRepo.Update(ctx, a)
	if err = updateError(err, itAssetIDConstraint, itSerialConstraint); err != nil {
		return err
	}
	stored, err := s.itRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *stored
	return nil
}

func updateError(err error, idConstraint, serialConstraint string) error {
	switch {
	case database.IsUniqueViolation(err, serialConstraint):
		return ErrDuplicateSerial
	case database.IsUniqueViolation(err, idConstraint):
		return ErrDuplicateAssetID
	}
	return err
}

func (s *AssetService) updatedOutlet(ctx context.Context, id int, name string, current int) (int, error) {
	if id == 0 && strings.TrimSpace(name) == "" {
		return current, nil
	}
	return s.resolveOutlet(ctx, id, name)
}

func updatedStatus(active bool, status, current string) string {
	switch {
	case strings.TrimSpace(status) != "":
		return status
	case active:
		return models.StatusActive
	}
	return current
}

// Stats counts retail, IT and network assets.
func (s *AssetService) Stats(ctx context.Context) (*AssetStats, error) {
	retail, err := s.retailRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	it, err := s.itRepo.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	network, err := s.itRepo.Count(ctx, models.AssetTypeNetwork)
	if err != nil {
		return nil, err
	}
	return &AssetStats{Retail: retail, IT: it - network, Network: network}, nil
}

func (s *AssetService) resolveOutlet(ctx context.Context, id int, name string) (int, error) {
	if id != 0 {
		if _, err := s.outletRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return 0, fmt.Errorf("%w: outlet %d does not exist", ErrInvalidAsset, id)
			}
			return 0, err
		}
		return id, nil
	}
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: outlet is required", ErrInvalidAsset)
	}
	return s.outletRepo.GetOrCreate(ctx, name)
}

// trimAssetID returns the id without surrounding spaces, or nil when blank.
func trimAssetID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func initialStatus(active bool, status string) string {
	if active {
		return models.StatusActive
	}
	if strings.TrimSpace(status) == "" {
		return models.StatusDraft
	}
	return status
}

func validAssetType(assetType string) bool {
	for _, t := range models.AssetTypes {
		if t == assetType {
			return true
		}
	}
	return false
}

func (s *AssetService) GetRetailAsset(ctx context.Context, id int) (*models.RetailAsset, error) {
	return s.retailRepo.GetByID(ctx, id)
}

func (s *AssetService) GetITAsset(ctx context.Context, id int) (*models.ITAsset, error) {
	return s.itRepo.GetByID(ctx, id)
}

func (s *AssetService) ListRetailAssets(ctx context.Context, filter repositories.RetailAssetFilter) ([]models.RetailAsset, error) {
	return s.retailRepo.List(ctx, filter)
}

func (s *AssetService) ListITAssets(ctx context.Context, filter repositories.ITAssetFilter) ([]models.ITAsset, error) {
	return s.itRepo.List(ctx, filter)
}

func (s *AssetService) ListOutlets(ctx context.Context) ([]models.Outlet, error) {
	return s.outletRepo.GetAll(ctx)
}

// MoveToActive marks a single asset active. Assets already active are left as
// they are.
func (s *AssetService) MoveToActive(ctx context.Context, kind models.AssetKind, id int) error {
	active := true
	switch kind {
	case models.KindRetail:
		asset, err := s.retailRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if asset.Active && asset.Status == models.StatusActive {
			return nil
		}
		_, err = s.retailRepo.SetStatus(ctx, []int{id}, models.StatusActive, &active)
		return err
	case models.KindIT, models.KindNetwork:
		asset, err := s.itRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if kind == models.KindNetwork && asset.AssetType != models.AssetTypeNetwork {
			return ErrNotFound
		}
		if asset.Active && asset.Status == models.StatusActive {
			return nil
		}
		_, err = s.itRepo.SetStatus(ctx, []int{id}, models.StatusActive, &active, "")
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// BulkAction applies a status action to many assets of one kind and returns how
// many were updated.
func (s *AssetService) BulkAction(ctx context.Context, kind models.AssetKind, action models.BulkAction, ids []int) (int64, error) {
	change, ok := action.Change()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var (
		updated int64
		err     error
	)
	switch kind {
	case models.KindRetail:
		updated, err = s.retailRepo.SetStatus(ctx, ids, change.Status, change.Active)
	case models.KindNetwork:
		updated, err = s.itRepo.SetStatus(ctx, ids, change.Status, change.Active, models.AssetTypeNetwork)
	default:
		updated, err = s.itRepo.SetStatus(ctx, ids, change.Status, change.Active, "")
	}
	if err != nil {
		return 0, err
	}

	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"kind":    kind,
		"action":  action,
		"updated": updated,
	}).Info("Bulk status action applied")
	return updated, nil
}

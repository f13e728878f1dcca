package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"assetserver/src/assetid"
	"assetserver/src/models"
	"assetserver/src/utils"
)

// Store persists ingested assets. Upserts are keyed by serial number, report
// whether a new row was created and set AssetID to the stored value.
type Store interface {
	ResolveOutlet(ctx context.Context, name string) (int, error)
	AssetIDs(ctx context.Context, kind models.AssetKind, prefix string) ([]string, error)
	UpsertITAsset(ctx context.Context, asset *models.ITAsset) (bool, error)
	UpsertRetailAsset(ctx context.Context, asset *models.RetailAsset) (bool, error)
}

type Pipeline struct {
	store Store
}

func NewPipeline(store Store) *Pipeline {
	return &Pipeline{store: store}
}

// Ingest stores every row of the sheet in order. A row that cannot be
// normalized or stored is counted as skipped and the run moves on; rows stored
// before it stay stored. Cancelling ctx stops the run between rows.
func (p *Pipeline) Ingest(ctx context.Context, d *Dialect, sheet *Sheet) *Report {
	report := newReport(d.Name, len(sheet.Rows))
	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"dialect": d.Name,
	})
	logger.WithField("rows", report.Total).Info("Starting ingestion")

	r := &run{
		store:   p.store,
		dialect: d,
		outlets: make(map[string]int),
		ids:     make(map[string][]string),
	}
	normalizer := NewNormalizer(d, sheet.Columns)

	for i, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			report.Aborted = err.Error()
			logger.WithError(err).Warn("Ingestion interrupted")
			break
		}

		line := sheet.Line(i)
		record, skip := normalizer.Next(row)
		if skip != nil {
			report.skip(line, skip.Key, skip.Reason)
			logger.WithFields(logrus.Fields{"row": line, "key": skip.Key}).Warnf("Row skipped: %s", skip.Reason)
			continue
		}

		created, err := r.save(ctx, record)
		if err != nil {
			report.skip(line, record.Serial, err.Error())
			logger.WithFields(logrus.Fields{"row": line, "key": record.Serial}).WithError(err).Error("Failed to store row")
			continue
		}
		report.stored(created)
	}

	report.finish()
	logger.WithFields(logrus.Fields{
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("Ingestion finished")
	return report
}

// run holds the caches of a single ingestion.
type run struct {
	store   Store
	dialect *Dialect
	outlets map[string]int
	// ids holds the asset id snapshot per prefix, loaded on first use.
	ids map[string][]string
}

func (r *run) save(ctx context.Context, record *Record) (bool, error) {
	outletID, err := r.outlet(ctx, record.Outlet)
	if err != nil {
		return false, err
	}

	switch r.dialect.Kind {
	case models.KindRetail:
		asset := record.RetailAsset(outletID)
		if asset.AssetID == nil {
			id, err := r.allocate(ctx, assetid.RetailPrefix(asset.Item))
			if err != nil {
				return false, err
			}
			asset.AssetID = &id
		}
		created, err := r.store.UpsertRetailAsset(ctx, asset)
		if err != nil {
			return false, fmt.Errorf("failed to store retail asset: %w", err)
		}
		r.remember(asset.AssetID)
		return created, nil
	default:
		asset := record.ITAsset(outletID)
		if asset.AssetID == nil {
			id, err := r.allocate(ctx, assetid.ITPrefix(asset.AssetType))
			if err != nil {
				return false, err
			}
			asset.AssetID = &id
		}
		created, err := r.store.UpsertITAsset(ctx, asset)
		if err != nil {
			return false, fmt.Errorf("failed to store it asset: %w", err)
		}
		r.remember(asset.AssetID)
		return created, nil
	}
}

func (r *run) outlet(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if id, ok := r.outlets[name]; ok {
		return id, nil
	}
	id, err := r.store.ResolveOutlet(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve outlet %q: %w", name, err)
	}
	r.outlets[name] = id
	return id, nil
}

func (r *run) allocate(ctx context.Context, prefix string) (string, error) {
	existing, ok := r.ids[prefix]
	if !ok {
		var err error
		existing, err = r.store.AssetIDs(ctx, r.kind(), prefix)
		if err != nil {
			return "", fmt.Errorf("failed to load asset ids for %s: %w", prefix, err)
		}
		r.ids[prefix] = existing
	}
	return assetid.Allocate(prefix, existing)
}

// remember adds a stored asset id to every cached snapshot it belongs to.
func (r *run) remember(id *string) {
	if id == nil || *id == "" {
		return
	}
	for prefix, ids := range r.ids {
		if strings.HasPrefix(*id, prefix) {
			r.ids[prefix] = append(ids, *id)
		}
	}
}

func (r *run) kind() models.AssetKind {
	if r.dialect.Kind == models.KindRetail {
		return models.KindRetail
	}
	return models.KindIT
}

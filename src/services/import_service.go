package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"assetserver/src/ingest"
	"assetserver/src/utils"

	"github.com/sirupsen/logrus"
)

type ImportServiceI interface {
	ImportFile(ctx context.Context, dialect string, path string) (*ingest.Report, error)
	ImportReader(ctx context.Context, dialect string, format ingest.Format, r io.Reader) (*ingest.Report, error)
}

type ImportService struct {
	pipeline *ingest.Pipeline
	dialects ingest.Registry
	timeout  time.Duration
}

// NewImportService wires the ingestion pipeline to a store. A zero timeout
// leaves runs bounded only by the caller's context.
func NewImportService(store ingest.Store, dialects ingest.Registry, timeout time.Duration) *ImportService {
	return &ImportService{
		pipeline: ingest.NewPipeline(store),
		dialects: dialects,
		timeout:  timeout,
	}
}

// ImportFile ingests the spreadsheet at path, picking the reader from its
// extension.
func (s *ImportService) ImportFile(ctx context.Context, dialect string, path string) (*ingest.Report, error) {
	format, err := ingest.FormatFromFilename(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()

	ctx = utils.WithLogger(ctx, utils.LoggerFromContext(ctx).WithField("file", filepath.Base(path)))
	return s.ImportReader(ctx, dialect, format, f)
}

// ImportReader ingests one spreadsheet. Only an unknown dialect or an
// unreadable source is an error; row problems are part of the report.
func (s *ImportService) ImportReader(ctx context.Context, dialect string, format ingest.Format, r io.Reader) (*ingest.Report, error) {
	d, err := s.dialects.Get(dialect)
	if err != nil {
		return nil, err
	}

	sheet, err := ingest.LoadSheet(r, format, d.HeaderOffset)
	if err != nil {
		utils.LoggerFromContext(ctx).WithError(err).WithField("dialect", d.Name).Error("Failed to load sheet")
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report := s.pipeline.Ingest(ctx, d, sheet)
	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"dialect": report.Dialect,
		"total":   report.Total,
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
	}).Info("Import completed")
	return report, nil
}

package controllers

import (
	"context"
	"fmt"
	"io"

	"assetserver/src/ingest"
	"assetserver/src/utils"
)

// ImportSheet runs an uploaded spreadsheet through the ingestion pipeline. The
// reader is chosen from the uploaded file name.
func (c *Controller) ImportSheet(ctx context.Context, dialect string, filename string, r io.Reader) (*ingest.Report, error) {
	format, err := ingest.FormatFromFilename(filename)
	if err != nil {
		return nil, utils.BadRequest(fmt.Sprintf("unsupported file %q: expected .xlsx or .csv", filename))
	}
	report, err := c.ImportService.ImportReader(ctx, dialect, format, r)
	if err != nil {
		return nil, translateError(err)
	}
	return report, nil
}

package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/logging"
)

// Format selects the report renderer.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Request carries everything a report needs. Readings are expected to
// be pre-filtered to Range.
type Request struct {
	Format   Format
	Readings []models.Reading
	Stats    analytics.Stats
	Range    analytics.DateRange
	UserName string
}

// Exporter writes reports to a local directory and, when an uploader is
// configured, mirrors them to external storage.
type Exporter struct {
	log      logging.Logger
	dir      string
	uploader Uploader // nil disables uploads
}

func NewExporter(log logging.Logger, dir string, uploader Uploader) *Exporter {
	return &Exporter{log: log.With("component", "export"), dir: dir, uploader: uploader}
}

// Export renders the report and returns the local file path.
func (e *Exporter) Export(ctx context.Context, req Request) (string, error) {
	var buffer bytes.Buffer
	switch req.Format {
	case FormatCSV:
		if err := WriteCSV(&buffer, req.Readings); err != nil {
			return "", fmt.Errorf("csv error: %w", err)
		}
	case FormatPDF:
		if err := WritePDF(&buffer, req.Readings, req.Stats, req.Range, req.UserName); err != nil {
			return "", fmt.Errorf("pdf error: %w", err)
		}
	default:
		return "", fmt.Errorf("unknown format %q", req.Format)
	}

	filename := fmt.Sprintf("bp-report-%s.%s", time.Now().Format("2006-01-02"), req.Format)
	path := filepath.Join(e.dir, filename)
	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write error: %w", err)
	}

	if e.uploader != nil {
		if err := e.uploader.Upload(ctx, filename, &buffer); err != nil {
			e.log.Error(ctx, "report upload failed", "error", err)
		} else {
			e.log.Info(ctx, "report uploaded", "filename", filename)
		}
	}
	return path, nil
}

package cli

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/export"
)

// Export renders a CSV or PDF report over the chosen range.
func (a *App) Export(ctx context.Context) error {
	formatText, err := GetSimpleText(a.reader, "Format: csv or pdf (empty = csv)", os.Stdout)
	if err != nil {
		return err
	}
	format := export.FormatCSV
	if formatText == "pdf" {
		format = export.FormatPDF
	}

	opt, err := a.askRange()
	if err != nil {
		return err
	}

	rng := analytics.Range(opt, time.Now())
	readings := a.store.ReadingsInRange(opt)

	userName := ""
	if a.user != nil {
		userName = a.user.DisplayName
	}

	path, err := a.exporter.Export(ctx, export.Request{
		Format:   format,
		Readings: readings,
		Stats:    analytics.Calculate(readings),
		Range:    rng,
		UserName: userName,
	})
	if err != nil {
		printlnFn("Export failed:", err)
		return err
	}
	printlnFn("Report written to", path)
	return nil
}

// Package export renders the filtered reading collection into
// downloadable reports (CSV and PDF) and optionally uploads them to S3.
// Classification and aggregation reuse the analytics package so report
// figures always match the on-screen ones.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
)

var csvHeader = []string{
	"Date", "Time", "Time of Day",
	"Systolic (mmHg)", "Diastolic (mmHg)", "Pulse (bpm)",
	"BP Status", "Notes",
}

// WriteCSV writes one row per reading in display order.
func WriteCSV(w io.Writer, readings []models.Reading) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range readings {
		status := analytics.Classify(r.Systolic, r.Diastolic)
		record := []string{
			models.FormatDate(r.Timestamp),
			models.FormatTime(r.Timestamp),
			r.TimeOfDay.Label(),
			strconv.Itoa(r.Systolic),
			strconv.Itoa(r.Diastolic),
			strconv.Itoa(r.Pulse),
			status.Label(),
			r.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package cli

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
)

const dateInputLayout = "2006-01-02 15:04"

// Add prompts for a new reading, validates it, and applies it through
// the store (optimistic, rolled back if the remote create fails).
func (a *App) Add(ctx context.Context) error {
	systolic, err := GetInt(a.reader, "Systolic (mmHg)", os.Stdout)
	if err != nil {
		return err
	}
	diastolic, err := GetInt(a.reader, "Diastolic (mmHg)", os.Stdout)
	if err != nil {
		return err
	}
	pulse, err := GetInt(a.reader, "Pulse (bpm)", os.Stdout)
	if err != nil {
		return err
	}
	dateText, err := GetSimpleText(a.reader, "Date and time, e.g. 2025-01-31 08:30 (empty = now)", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := GetSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		return err
	}

	form := models.ReadingForm{
		Systolic:  systolic,
		Diastolic: diastolic,
		Pulse:     pulse,
		Notes:     notes,
	}
	if dateText != "" {
		date, err := time.ParseInLocation(dateInputLayout, dateText, time.Local)
		if err != nil {
			printlnFn("Unrecognized date, expected format:", dateInputLayout)
			return err
		}
		form.Date = date
	}

	if err := form.Validate(); err != nil {
		printlnFn("Invalid reading:", err)
		return err
	}

	if err := a.store.Add(ctx, form); err != nil {
		printlnFn("Could not save reading:", err)
		return err
	}

	printlnFn("Saved", models.FormatBP(form.Systolic, form.Diastolic), "-", form.TimeOfDay.Label())
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
)

// askRange prompts for a date-range option, defaulting to all.
func (a *App) askRange() (analytics.DateRangeOption, error) {
	text, err := GetSimpleText(a.reader, "Range: 7d, 30d, 90d or all (empty = all)", os.Stdout)
	if err != nil {
		return "", err
	}
	switch text {
	case "7d":
		return analytics.Range7d, nil
	case "30d":
		return analytics.Range30d, nil
	case "90d":
		return analytics.Range90d, nil
	default:
		return analytics.RangeAll, nil
	}
}

// List prints the readings in the chosen range, newest first.
func (a *App) List(ctx context.Context) error {
	opt, err := a.askRange()
	if err != nil {
		return err
	}

	readings := a.store.ReadingsInRange(opt)
	if len(readings) == 0 {
		printlnFn("No readings in this range.")
		return nil
	}

	for _, r := range readings {
		status := analytics.Classify(r.Systolic, r.Diastolic)
		line := fmt.Sprintf("%-38s %s  %7s  pulse %3d  %-12s %s",
			r.Id,
			r.Timestamp.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d/%d", r.Systolic, r.Diastolic),
			r.Pulse,
			status.Label(),
			r.Notes,
		)
		printlnFn(line)
	}
	printlnFn(len(readings), "reading(s)")
	return nil
}

// Delete removes a reading by id (optimistic, rolled back on failure).
func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Reading id", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.store.Delete(ctx, id); err != nil {
		printlnFn("Could not delete reading:", err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

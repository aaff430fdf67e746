package analytics

import (
	"math"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/timex"
)

// DateRangeOption selects a predefined reporting window.
type DateRangeOption string

const (
	Range7d  DateRangeOption = "7d"
	Range30d DateRangeOption = "30d"
	Range90d DateRangeOption = "90d"
	RangeAll DateRangeOption = "all"
)

// DateRange is an inclusive [Start, End] time window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Stats holds aggregate figures over a reading collection.
// Averages are arithmetic means rounded to the nearest integer.
type Stats struct {
	AvgSystolic   int
	AvgDiastolic  int
	AvgPulse      int
	ReadingsCount int
}

// Range resolves a DateRangeOption relative to now. End is the end of
// now's calendar day; Start is the start of the day N days back, or a
// fixed far-past epoch for RangeAll.
func Range(opt DateRangeOption, now time.Time) DateRange {
	end := timex.EndOfDay(now)
	var start time.Time
	switch opt {
	case Range7d:
		start = timex.StartOfDay(now.AddDate(0, 0, -7))
	case Range30d:
		start = timex.StartOfDay(now.AddDate(0, 0, -30))
	case Range90d:
		start = timex.StartOfDay(now.AddDate(0, 0, -90))
	default:
		start = time.Date(2000, time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return DateRange{Start: start, End: end}
}

// FilterByRange keeps readings whose timestamp falls within the
// inclusive [Start, End] window.
func FilterByRange(readings []models.Reading, r DateRange) []models.Reading {
	out := make([]models.Reading, 0, len(readings))
	for _, reading := range readings {
		ts := reading.Timestamp
		if ts.Before(r.Start) || ts.After(r.End) {
			continue
		}
		out = append(out, reading)
	}
	return out
}

// Calculate computes aggregate statistics. An empty input yields the
// zero Stats so callers never divide by zero.
func Calculate(readings []models.Reading) Stats {
	if len(readings) == 0 {
		return Stats{}
	}

	var systolic, diastolic, pulse int
	for _, r := range readings {
		systolic += r.Systolic
		diastolic += r.Diastolic
		pulse += r.Pulse
	}

	n := float64(len(readings))
	return Stats{
		AvgSystolic:   int(math.Round(float64(systolic) / n)),
		AvgDiastolic:  int(math.Round(float64(diastolic) / n)),
		AvgPulse:      int(math.Round(float64(pulse) / n)),
		ReadingsCount: len(readings),
	}
}

// Latest returns the reading with the maximum timestamp, or nil for an
// empty collection.
func Latest(readings []models.Reading) *models.Reading {
	var latest *models.Reading
	for i := range readings {
		if latest == nil || readings[i].Timestamp.After(latest.Timestamp) {
			latest = &readings[i]
		}
	}
	return latest
}

package models

import (
	"fmt"
	"time"
)

// Valid measurement ranges enforced by the entry layer.
const (
	MinSystolic  = 60
	MaxSystolic  = 250
	MinDiastolic = 40
	MaxDiastolic = 150
	MinPulse     = 40
	MaxPulse     = 200
)

// ReadingForm carries user input for a new reading before it is
// synthesized into a Reading by the store.
type ReadingForm struct {
	Systolic  int
	Diastolic int
	Pulse     int
	TimeOfDay TimeOfDay
	Date      time.Time
	Notes     string
}

// IsValidSystolic reports whether a systolic value is within [60,250] mmHg.
func IsValidSystolic(v int) bool { return v >= MinSystolic && v <= MaxSystolic }

// IsValidDiastolic reports whether a diastolic value is within [40,150] mmHg.
func IsValidDiastolic(v int) bool { return v >= MinDiastolic && v <= MaxDiastolic }

// IsValidPulse reports whether a pulse value is within [40,200] bpm.
func IsValidPulse(v int) bool { return v >= MinPulse && v <= MaxPulse }

// Validate checks all measurement ranges and fills defaults: a zero Date
// becomes now, an empty TimeOfDay is derived from the Date's hour.
func (f *ReadingForm) Validate() error {
	if !IsValidSystolic(f.Systolic) {
		return fmt.Errorf("systolic must be between %d and %d mmHg", MinSystolic, MaxSystolic)
	}
	if !IsValidDiastolic(f.Diastolic) {
		return fmt.Errorf("diastolic must be between %d and %d mmHg", MinDiastolic, MaxDiastolic)
	}
	if !IsValidPulse(f.Pulse) {
		return fmt.Errorf("pulse must be between %d and %d bpm", MinPulse, MaxPulse)
	}
	if f.Date.IsZero() {
		f.Date = time.Now()
	}
	if f.TimeOfDay == "" {
		f.TimeOfDay = TimeOfDayFromHour(f.Date.Hour())
	}
	return nil
}

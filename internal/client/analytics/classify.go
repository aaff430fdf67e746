// Package analytics contains pure functions derived from the reading
// collection: blood-pressure classification, aggregate statistics, and
// streak/gamification computation. Nothing in this package holds state.
package analytics

// BPStatus is the derived clinical category of a reading.
type BPStatus string

const (
	StatusNormal   BPStatus = "normal"
	StatusElevated BPStatus = "elevated"
	StatusHigh1    BPStatus = "high1"
	StatusHigh2    BPStatus = "high2"
)

// Classify maps a systolic/diastolic pair to a BPStatus following the
// AHA guideline thresholds. Rules are evaluated in priority order, first
// match wins:
//
//	Normal:       < 120 / < 80
//	Elevated:     120–129 / < 80
//	High Stage 1: 130–139 or 80–89
//	High Stage 2: >= 140 or >= 90
func Classify(systolic, diastolic int) BPStatus {
	if systolic >= 140 || diastolic >= 90 {
		return StatusHigh2
	}
	if (systolic >= 130 && systolic <= 139) || (diastolic >= 80 && diastolic <= 89) {
		return StatusHigh1
	}
	if systolic >= 120 && systolic <= 129 && diastolic < 80 {
		return StatusElevated
	}
	return StatusNormal
}

// Label returns the display name for a status.
func (s BPStatus) Label() string {
	switch s {
	case StatusNormal:
		return "Normal"
	case StatusElevated:
		return "Elevated"
	case StatusHigh1:
		return "High Stage 1"
	case StatusHigh2:
		return "High Stage 2"
	default:
		return string(s)
	}
}

// Color returns the UI color token associated with a status.
func (s BPStatus) Color() string {
	switch s {
	case StatusNormal:
		return "green"
	case StatusElevated:
		return "yellow"
	case StatusHigh1:
		return "orange"
	case StatusHigh2:
		return "red"
	default:
		return "gray"
	}
}

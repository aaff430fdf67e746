package models

import (
	"fmt"
	"time"
)

// FormatBP renders a reading pair as "120/80".
func FormatBP(systolic, diastolic int) string {
	return fmt.Sprintf("%d/%d", systolic, diastolic)
}

// FormatDate renders a date for display, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatTime renders a clock time for display, e.g. "3:04 PM".
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatDateTime renders date and time together.
func FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%s at %s", FormatDate(t), FormatTime(t))
}

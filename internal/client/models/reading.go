// Package models defines client-side data models used by the bpkeeper CLI.
package models

import "time"

// TimeOfDay classifies when during the day a reading was taken.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
)

// Label returns the display name for a time of day.
func (t TimeOfDay) Label() string {
	switch t {
	case TimeOfDayMorning:
		return "Morning"
	case TimeOfDayAfternoon:
		return "Afternoon"
	case TimeOfDayEvening:
		return "Evening"
	default:
		return string(t)
	}
}

// TimeOfDayFromHour derives the time-of-day bucket from an hour [0,23].
// Morning is 05:00–11:59, afternoon 12:00–17:59, evening 18:00–04:59.
func TimeOfDayFromHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 18:
		return TimeOfDayAfternoon
	default:
		return TimeOfDayEvening
	}
}

// Reading is a single blood-pressure measurement synced with the remote
// document store. BSON tags match the remote collection schema.
type Reading struct {
	// Id is the document id. Optimistic local inserts carry a temporary
	// "temp-" prefixed id until the listener delivers the real document.
	Id string `bson:"_id"`

	// UserId is the owner's identity. Immutable.
	UserId string `bson:"userId"`

	// Systolic is the top number (mmHg).
	Systolic int `bson:"systolic"`
	// Diastolic is the bottom number (mmHg).
	Diastolic int `bson:"diastolic"`
	// Pulse is the heart rate (bpm).
	Pulse int `bson:"pulse"`

	// Timestamp is the point in time the reading represents (user-chosen).
	Timestamp time.Time `bson:"timestamp"`

	TimeOfDay TimeOfDay `bson:"timeOfDay"`

	// Notes is optional free text. Omitted from the document when empty.
	Notes string `bson:"notes,omitempty"`

	// CreatedAt is assigned on create. Audit only, no business logic.
	CreatedAt time.Time `bson:"createdAt"`
}

// IsTemporary reports whether the reading is an optimistic placeholder
// that has not been confirmed by the remote store yet.
func (r Reading) IsTemporary() bool {
	return len(r.Id) > 5 && r.Id[:5] == "temp-"
}

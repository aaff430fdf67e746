package store

import (
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/timex"
)

// Read-side projections of the collection. They hold no state of their
// own and recompute from the current collection on every call.

// Readings returns a copy of the full collection, newest first (subject
// to optimistic prepends between listener snapshots).
func (s *ReadingStore) Readings() []models.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// ReadingsInRange filters the collection by a date-range option.
func (s *ReadingStore) ReadingsInRange(opt analytics.DateRangeOption) []models.Reading {
	if opt == analytics.RangeAll {
		return s.Readings()
	}
	return analytics.FilterByRange(s.Readings(), analytics.Range(opt, time.Now()))
}

// TodayReadings filters the collection to the current calendar day.
func (s *ReadingStore) TodayReadings() []models.Reading {
	now := time.Now()
	all := s.Readings()
	out := make([]models.Reading, 0, len(all))
	for _, r := range all {
		if timex.SameDay(now, r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

// LatestReading returns the most recent reading, or nil when empty.
func (s *ReadingStore) LatestReading() *models.Reading {
	return analytics.Latest(s.Readings())
}

// WeeklyCount returns how many readings fall in the trailing 7-day
// window.
func (s *ReadingStore) WeeklyCount() int {
	return len(s.ReadingsInRange(analytics.Range7d))
}

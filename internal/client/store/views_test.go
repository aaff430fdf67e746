package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/client/remote"
)

func seedStore(t *testing.T, readings []models.Reading) *ReadingStore {
	t.Helper()
	s, r, _ := newTestStore(t, time.Hour)
	require.NoError(t, s.SetUser(context.Background(), "u1"))
	r.lastSub().updates <- remote.Snapshot{Readings: readings}
	waitStatus(t, s, StatusSynced)
	return s
}

func TestViews(t *testing.T) {
	now := time.Now()
	s := seedStore(t, []models.Reading{
		sampleReading("today", now.Add(-time.Minute)),
		sampleReading("this-week", now.AddDate(0, 0, -3)),
		sampleReading("old", now.AddDate(0, 0, -40)),
	})

	require.Len(t, s.Readings(), 3)
	require.Len(t, s.ReadingsInRange(analytics.RangeAll), 3)
	require.Len(t, s.ReadingsInRange(analytics.Range30d), 2)
	require.Equal(t, 2, s.WeeklyCount())

	today := s.TodayReadings()
	require.Len(t, today, 1)
	require.Equal(t, "today", today[0].Id)

	latest := s.LatestReading()
	require.NotNil(t, latest)
	require.Equal(t, "today", latest.Id)
}

func TestReadings_ReturnsCopy(t *testing.T) {
	now := time.Now()
	s := seedStore(t, []models.Reading{sampleReading("a", now)})

	first := s.Readings()
	first[0].Id = "mutated"
	require.Equal(t, "a", s.Readings()[0].Id)
}

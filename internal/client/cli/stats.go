package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/analytics"
	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
)

// Stats prints aggregate figures for the chosen range plus the most
// recent reading.
func (a *App) Stats(ctx context.Context) error {
	opt, err := a.askRange()
	if err != nil {
		return err
	}

	readings := a.store.ReadingsInRange(opt)
	stats := analytics.Calculate(readings)

	if stats.ReadingsCount == 0 {
		printlnFn("No readings in this range.")
		return nil
	}

	avgStatus := analytics.Classify(stats.AvgSystolic, stats.AvgDiastolic)
	printlnFn(fmt.Sprintf("Readings: %d", stats.ReadingsCount))
	printlnFn(fmt.Sprintf("Average BP: %s (%s)",
		models.FormatBP(stats.AvgSystolic, stats.AvgDiastolic), avgStatus.Label()))
	printlnFn(fmt.Sprintf("Average pulse: %d bpm", stats.AvgPulse))

	if latest := analytics.Latest(readings); latest != nil {
		printlnFn(fmt.Sprintf("Latest: %s at %s",
			models.FormatBP(latest.Systolic, latest.Diastolic),
			models.FormatDateTime(latest.Timestamp)))
	}
	return nil
}

// Streak prints daily-goal progress and streak statistics.
func (a *App) Streak(ctx context.Context) error {
	g := analytics.Gamification(a.store.Readings(), time.Now())

	printlnFn(fmt.Sprintf("Today: %d/%d readings (%d%%)", g.TodayCount, g.TodayGoal, g.TodayProgress))
	printlnFn(analytics.DailyProgressMessage(g.TodayCount, g.TodayGoal))
	printlnFn(analytics.StreakMessage(g.CurrentStreak))
	printlnFn(fmt.Sprintf("Best streak: %d day(s), perfect days: %d, days tracked: %d",
		g.BestStreak, g.PerfectDays, g.DaysTracked))
	return nil
}

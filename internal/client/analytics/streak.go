package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/client/models"
	"github.com/dmitrijs2005/bpkeeper/internal/timex"
)

// DailyGoal is the number of readings per day that counts as a full day.
const DailyGoal = 3

// streakWalkLimit caps how far back the current-streak walk looks.
const streakWalkLimit = 365

// GamificationStats describes daily-goal progress and streaks derived
// from the full reading collection and a reference "now".
type GamificationStats struct {
	TodayCount    int
	TodayGoal     int
	TodayProgress int // 0–100
	CurrentStreak int
	BestStreak    int
	TotalReadings int
	DaysTracked   int
	PerfectDays   int // days with DailyGoal or more readings
}

// Gamification computes streak statistics. Calendar days are keyed in
// now's location. An empty collection yields all-zero stats (with the
// goal still filled in).
func Gamification(readings []models.Reading, now time.Time) GamificationStats {
	stats := GamificationStats{TodayGoal: DailyGoal}
	if len(readings) == 0 {
		return stats
	}

	byDay := make(map[string]int)
	for _, r := range readings {
		byDay[timex.DayKey(r.Timestamp.In(now.Location()))]++
	}

	stats.TotalReadings = len(readings)
	stats.DaysTracked = len(byDay)
	stats.TodayCount = byDay[timex.DayKey(now)]
	stats.TodayProgress = min(100, stats.TodayCount*100/DailyGoal)

	stats.CurrentStreak = currentStreak(byDay, now)
	stats.BestStreak, stats.PerfectDays = bestStreak(byDay)
	return stats
}

// currentStreak walks backward day-by-day counting consecutive days that
// met the goal. If today has no readings yet and it is still before noon,
// the walk starts from yesterday so an unlogged morning does not break
// the streak.
func currentStreak(byDay map[string]int, now time.Time) int {
	day := now
	if byDay[timex.DayKey(now)] == 0 && now.Hour() < 12 {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < streakWalkLimit; i++ {
		if byDay[timex.DayKey(day)] < DailyGoal {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// bestStreak finds the longest run of calendar-consecutive days meeting
// the goal, and counts perfect days along the way. A gap of exactly one
// day between qualifying days extends the run; any other gap breaks it.
func bestStreak(byDay map[string]int) (best, perfect int) {
	days := make([]string, 0, len(byDay))
	for key := range byDay {
		days = append(days, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	run := 0
	for i, key := range days {
		if byDay[key] < DailyGoal {
			best = max(best, run)
			run = 0
			continue
		}
		perfect++
		run++
		if i < len(days)-1 && dayGap(key, days[i+1]) != 1 {
			best = max(best, run)
			run = 0
		}
	}
	return max(best, run), perfect
}

// dayGap returns the number of calendar days between two day keys
// (newer first).
func dayGap(newer, older string) int {
	a, _ := time.Parse("2006-01-02", newer)
	b, _ := time.Parse("2006-01-02", older)
	return int(math.Round(a.Sub(b).Hours() / 24))
}

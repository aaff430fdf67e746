package analytics

import "fmt"

// StreakMessage returns a motivational message for the current streak.
func StreakMessage(streak int) string {
	switch {
	case streak == 0:
		return "Start your streak today!"
	case streak == 1:
		return "1 day streak! Keep it up!"
	case streak < 7:
		return fmt.Sprintf("%d day streak! Great start!", streak)
	case streak < 14:
		return fmt.Sprintf("%d day streak! You're on fire!", streak)
	case streak < 30:
		return fmt.Sprintf("%d day streak! Incredible!", streak)
	default:
		return fmt.Sprintf("%d day streak! You're a champion!", streak)
	}
}

// DailyProgressMessage summarizes progress toward the daily goal.
func DailyProgressMessage(count, goal int) string {
	switch {
	case count == 0:
		return "No readings yet today"
	case count < goal:
		return fmt.Sprintf("%d more to reach your goal", goal-count)
	case count == goal:
		return "Daily goal reached!"
	default:
		return fmt.Sprintf("%d readings today - excellent!", count)
	}
}

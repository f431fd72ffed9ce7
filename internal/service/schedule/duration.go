package schedule

import "math"

const (
	// MaxHoursPerDay: сколько часов один ресурс может отдать одной задаче за день.
	MaxHoursPerDay = 8
	// WorkingDaysPerWeek используется в приближённой поправке на выходные.
	WorkingDaysPerWeek = 5
)

type WeekendPolicy struct {
	WorkSaturday bool `json:"work_on_saturday"`
	WorkSunday   bool `json:"work_on_sunday"`
}

func (p WeekendPolicy) daysOff() int {
	switch {
	case !p.WorkSaturday && !p.WorkSunday:
		return 2
	case p.WorkSaturday != p.WorkSunday:
		return 1
	default:
		return 0
	}
}

// ComputeDuration converts required hours into calendar days.
//
// The weekend correction assumes a flat five-working-day cadence instead of
// walking the calendar; downstream totals depend on this exact figure, so keep it.
func ComputeDuration(hours float64, workSaturday, workSunday bool) int {
	base := 0
	if hours > 0 {
		base = int(math.Ceil(hours / MaxHoursPerDay))
	}

	policy := WeekendPolicy{WorkSaturday: workSaturday, WorkSunday: workSunday}
	adjusted := base + (base/WorkingDaysPerWeek)*policy.daysOff()

	if adjusted < 1 {
		return 1
	}
	return adjusted
}

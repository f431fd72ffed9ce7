// Package calendar is a synthetic calendar used by the training schedule:
// every month has 30 days and the weekend sits at fixed offsets inside it.
// Swapping in a real calendar only touches this package.
package calendar

const DaysPerMonth = 30

var (
	saturdays = map[int]bool{6: true, 13: true, 20: true, 27: true}
	sundays   = map[int]bool{7: true, 14: true, 21: true, 28: true}
)

// DayInMonth maps a 1-based day index onto 1..30.
func DayInMonth(day int) int {
	m := (day - 1) % DaysPerMonth
	if m < 0 {
		m += DaysPerMonth
	}
	return m + 1
}

func IsSaturday(day int) bool {
	return saturdays[DayInMonth(day)]
}

func IsSunday(day int) bool {
	return sundays[DayInMonth(day)]
}

func IsWeekendDay(day int) bool {
	return IsSaturday(day) || IsSunday(day)
}

// IsWorkingDay reports whether a resource may be scheduled on day given the weekend toggles.
func IsWorkingDay(day int, workSaturday, workSunday bool) bool {
	if IsSaturday(day) && !workSaturday {
		return false
	}
	if IsSunday(day) && !workSunday {
		return false
	}
	return true
}

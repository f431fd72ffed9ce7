package schedule

import "github.com/PareasySys/sysquote-sub002/internal/calendar"

// Task is a requirement placed on the timeline.
type Task struct {
	ResourceID   int64     `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	ItemID       int64     `json:"item_id"`
	ItemKind     string    `json:"item_kind"`
	ItemName     string    `json:"item_name"`
	PlanID       int64     `json:"plan_id"`
	Hours        float64   `json:"hours"`
	StartDay     int       `json:"start_day"`
	DurationDays int       `json:"duration_days"`
	HoursPerDay  []float64 `json:"hours_per_day"`
}

// EndDay is the last day (inclusive) occupied by the task.
func (t Task) EndDay() int {
	return t.StartDay + t.DurationDays - 1
}

// Schedule packs requirements greedily in the given order: each resource has a
// cursor starting at day 1 and every task starts where the previous task of the
// same resource ended. Nothing is reordered and nothing is backtracked.
func Schedule(reqs []Requirement, policy WeekendPolicy) []Task {
	tasks := make([]Task, 0, len(reqs))
	nextFreeDay := make(map[int64]int)

	for _, req := range reqs {
		start, ok := nextFreeDay[req.ResourceID]
		if !ok {
			start = 1
		}

		duration := ComputeDuration(req.Hours, policy.WorkSaturday, policy.WorkSunday)
		nextFreeDay[req.ResourceID] = start + duration

		tasks = append(tasks, Task{
			ResourceID:   req.ResourceID,
			ResourceName: req.ResourceName,
			ItemID:       req.ItemID,
			ItemKind:     req.ItemKind,
			ItemName:     req.ItemName,
			PlanID:       req.PlanID,
			Hours:        req.Hours,
			StartDay:     start,
			DurationDays: duration,
			HoursPerDay:  distributeHours(req.Hours, start, duration, policy),
		})
	}

	return tasks
}

// distributeHours fills working days up to the daily cap in order. Skipped
// weekend days get nothing unless the window ran out of working days, then
// the rest spills onto them so no hour is lost.
func distributeHours(hours float64, startDay, duration int, policy WeekendPolicy) []float64 {
	perDay := make([]float64, duration)
	remaining := hours

	var skipped []int
	for i := range perDay {
		if !calendar.IsWorkingDay(startDay+i, policy.WorkSaturday, policy.WorkSunday) {
			skipped = append(skipped, i)
			continue
		}
		take := min(MaxHoursPerDay, remaining)
		perDay[i] = take
		remaining = roundHours(remaining - take)
	}

	for _, i := range skipped {
		if remaining <= 0 {
			break
		}
		take := min(MaxHoursPerDay, remaining)
		perDay[i] = take
		remaining = roundHours(remaining - take)
	}

	return perDay
}

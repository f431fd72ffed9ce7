package schedule

import (
	"slices"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

// DefaultTimelineDays: ширина пустого плана (три синтетических месяца).
const DefaultTimelineDays = 90

type GanttResource struct {
	ResourceID   int64   `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	TotalHours   float64 `json:"total_hours"`
	Tasks        []Task  `json:"tasks"`
}

type PlanGanttData struct {
	PlanID    int64           `json:"plan_id"`
	PlanName  string          `json:"plan_name"`
	Resources []GanttResource `json:"resources"`
	TotalDays int             `json:"total_days"`
}

// TotalHours sums the hours of every resource in the plan.
func (p PlanGanttData) TotalHours() float64 {
	var total float64
	for _, r := range p.Resources {
		total += r.TotalHours
	}
	return roundHours(total)
}

// Project groups scheduled tasks by resource. Resources keep the order in which
// they first appear, tasks are ordered by start day.
func Project(planID int64, planName string, tasks []Task) PlanGanttData {
	data := PlanGanttData{
		PlanID:    planID,
		PlanName:  planName,
		Resources: []GanttResource{},
		TotalDays: DefaultTimelineDays,
	}
	if len(tasks) == 0 {
		return data
	}

	index := make(map[int64]int)
	lastDay := 0

	for _, task := range tasks {
		i, ok := index[task.ResourceID]
		if !ok {
			i = len(data.Resources)
			index[task.ResourceID] = i
			data.Resources = append(data.Resources, GanttResource{
				ResourceID:   task.ResourceID,
				ResourceName: task.ResourceName,
			})
		}

		res := &data.Resources[i]
		res.Tasks = append(res.Tasks, task)
		res.TotalHours = roundHours(res.TotalHours + task.Hours)

		lastDay = max(lastDay, task.EndDay())
	}

	for i := range data.Resources {
		slices.SortStableFunc(data.Resources[i].Tasks, func(a, b Task) int {
			return a.StartDay - b.StartDay
		})
	}

	data.TotalDays = lastDay

	return data
}

// PlanTotalHours is the per-plan header figure.
func PlanTotalHours(plans map[int64]PlanGanttData) map[int64]float64 {
	totals := make(map[int64]float64, len(plans))
	for id, p := range plans {
		totals[id] = p.TotalHours()
	}
	return totals
}

// Build runs the whole pipeline for every plan: aggregate, schedule, project.
// Plans without requirements still get an entry with the default width.
func Build(plans []storage.Plan, rows []storage.TrainingRequirement, policy WeekendPolicy) map[int64]PlanGanttData {
	byPlan := GroupByPlan(rows)
	result := make(map[int64]PlanGanttData, len(plans))

	for _, plan := range plans {
		tasks := Schedule(byPlan[plan.ID], policy)
		result[plan.ID] = Project(plan.ID, plan.Name, tasks)
	}

	return result
}

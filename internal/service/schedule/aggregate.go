package schedule

import (
	"math"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

// Requirement is a training requirement ready for scheduling: a resource is
// assigned and some hours are left to deliver.
type Requirement struct {
	ResourceID   int64   `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	ItemID       int64   `json:"item_id"`
	ItemKind     string  `json:"item_kind"`
	ItemName     string  `json:"item_name"`
	PlanID       int64   `json:"plan_id"`
	Hours        float64 `json:"hours"`
}

// Aggregate returns the requirements of one plan in the order the rows were read.
// Rows without a resource or without hours are skipped: both are normal while a
// quote is still being edited.
func Aggregate(rows []storage.TrainingRequirement, planID int64) []Requirement {
	result := make([]Requirement, 0, len(rows))

	for _, row := range rows {
		if row.PlanID != planID {
			continue
		}
		if req, ok := normalize(row); ok {
			result = append(result, req)
		}
	}

	return result
}

// GroupByPlan splits rows by plan keeping the relative order inside each plan.
func GroupByPlan(rows []storage.TrainingRequirement) map[int64][]Requirement {
	byPlan := make(map[int64][]Requirement)

	for _, row := range rows {
		if req, ok := normalize(row); ok {
			byPlan[row.PlanID] = append(byPlan[row.PlanID], req)
		}
	}

	return byPlan
}

func normalize(row storage.TrainingRequirement) (Requirement, bool) {
	if row.ResourceID == nil {
		return Requirement{}, false
	}

	raw := row.HoursRequired
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Requirement{}, false
	}

	// положительная норма не должна обнулиться при округлении
	hours := max(roundHours(raw), minHours)

	return Requirement{
		ResourceID:   *row.ResourceID,
		ResourceName: row.ResourceName,
		ItemID:       row.ItemID,
		ItemKind:     row.ItemKind,
		ItemName:     row.ItemName,
		PlanID:       row.PlanID,
		Hours:        hours,
	}, true
}

// minHours is the smallest amount a positive requirement is rounded to.
const minHours = 0.01

// roundHours keeps two decimals, enough for quarter-hour and minute-ish inputs.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

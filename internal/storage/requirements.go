package storage

// TrainingRequirement: строка read-model: ресурс × позиция КП × план.
// ResourceID == nil, пока на позицию никого не назначили.
type TrainingRequirement struct {
	ResourceID    *int64  `json:"resource_id"`
	ResourceName  string  `json:"resource_name"`
	ItemID        int64   `json:"item_id"`
	ItemKind      string  `json:"item_kind"`
	ItemName      string  `json:"item_name"`
	PlanID        int64   `json:"plan_id"`
	HoursRequired float64 `json:"hours_required"`
}

// RequirementAssignment задаёт норму часов и ресурс для пары (item, plan) каталога.
type RequirementAssignment struct {
	ItemID     int64   `json:"item_id"`
	ItemKind   string  `json:"item_kind"`
	PlanID     int64   `json:"plan_id"`
	ResourceID *int64  `json:"resource_id"`
	Hours      float64 `json:"hours"`
}

package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func TestProject_Empty(t *testing.T) {
	data := Project(1, "Standard", nil)

	assert.Equal(t, DefaultTimelineDays, data.TotalDays)
	assert.Empty(t, data.Resources)
	assert.NotNil(t, data.Resources)
	assert.Equal(t, 0.0, data.TotalHours())
}

func TestProject_GroupsByResource(t *testing.T) {
	tasks := Schedule([]Requirement{
		{ResourceID: 2, ResourceName: "Anna", ItemID: 1, PlanID: 1, Hours: 16},
		{ResourceID: 1, ResourceName: "Boris", ItemID: 1, PlanID: 1, Hours: 4},
		{ResourceID: 2, ResourceName: "Anna", ItemID: 2, PlanID: 1, Hours: 20},
	}, allWeekends)

	data := Project(1, "Standard", tasks)

	require.Len(t, data.Resources, 2)

	anna := data.Resources[0]
	assert.Equal(t, int64(2), anna.ResourceID)
	assert.Equal(t, 36.0, anna.TotalHours)
	require.Len(t, anna.Tasks, 2)
	assert.Equal(t, 1, anna.Tasks[0].StartDay)
	assert.Equal(t, 3, anna.Tasks[1].StartDay)

	boris := data.Resources[1]
	assert.Equal(t, 4.0, boris.TotalHours)

	// 16h (дни 1-2) + 20h (дни 3-5)
	assert.Equal(t, 5, data.TotalDays)
	assert.Equal(t, 40.0, data.TotalHours())
}

func TestProject_TotalHoursMatchesHoursPerDay(t *testing.T) {
	tasks := Schedule([]Requirement{
		{ResourceID: 1, ItemID: 1, PlanID: 1, Hours: 13.25},
		{ResourceID: 1, ItemID: 2, PlanID: 1, Hours: 41},
	}, WeekendPolicy{})

	data := Project(1, "Extended", tasks)
	require.Len(t, data.Resources, 1)

	var perDay float64
	for _, task := range data.Resources[0].Tasks {
		perDay += sum(task.HoursPerDay)
	}
	assert.InDelta(t, data.Resources[0].TotalHours, perDay, 0.001)
}

func testPlans() []storage.Plan {
	return []storage.Plan{
		{ID: 1, Name: "Standard", Position: 1},
		{ID: 2, Name: "Extended", Position: 2},
		{ID: 3, Name: "Shadowing", Position: 3},
	}
}

func testRows() []storage.TrainingRequirement {
	return []storage.TrainingRequirement{
		{ResourceID: ptr[int64](1), ResourceName: "Anna", ItemID: 10, ItemKind: storage.ItemKindMachine, PlanID: 1, HoursRequired: 24},
		{ResourceID: ptr[int64](2), ResourceName: "Boris", ItemID: 11, ItemKind: storage.ItemKindSoftware, PlanID: 1, HoursRequired: 12},
		{ResourceID: ptr[int64](1), ResourceName: "Anna", ItemID: 11, ItemKind: storage.ItemKindSoftware, PlanID: 1, HoursRequired: 8},
		{ResourceID: ptr[int64](1), ResourceName: "Anna", ItemID: 10, ItemKind: storage.ItemKindMachine, PlanID: 2, HoursRequired: 48},
		{ResourceID: nil, ItemID: 12, ItemKind: storage.ItemKindMachine, PlanID: 2, HoursRequired: 16},
	}
}

func TestBuild_AllPlansPresent(t *testing.T) {
	plans := Build(testPlans(), testRows(), WeekendPolicy{})

	require.Len(t, plans, 3)
	assert.Len(t, plans[1].Resources, 2)
	assert.Len(t, plans[2].Resources, 1)
	assert.Empty(t, plans[3].Resources)
	assert.Equal(t, DefaultTimelineDays, plans[3].TotalDays)

	totals := PlanTotalHours(plans)
	assert.Equal(t, 44.0, totals[1])
	assert.Equal(t, 48.0, totals[2])
	assert.Equal(t, 0.0, totals[3])
}

func TestBuild_Deterministic(t *testing.T) {
	policy := WeekendPolicy{WorkSaturday: true}

	first, err := json.Marshal(Build(testPlans(), testRows(), policy))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := json.Marshal(Build(testPlans(), testRows(), policy))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestBuild_ZeroingRequirementKeepsOtherResources(t *testing.T) {
	before := Build(testPlans(), testRows(), allWeekends)

	rows := testRows()
	rows[2].HoursRequired = 0
	after := Build(testPlans(), rows, allWeekends)

	// у Анны пропала вторая задача
	require.Len(t, after[1].Resources, 2)
	assert.Len(t, after[1].Resources[0].Tasks, 1)
	assert.Equal(t, before[1].Resources[0].Tasks[0], after[1].Resources[0].Tasks[0])

	// Борис не изменился
	assert.Equal(t, before[1].Resources[1], after[1].Resources[1])
	assert.Equal(t, before[2], after[2])
}

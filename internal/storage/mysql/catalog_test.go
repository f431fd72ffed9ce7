package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func TestGetPlans(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id, name, position FROM training_plans`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position"}).
			AddRow(1, "Standard", 1).
			AddRow(2, "Extended", 2))

	plans, err := s.GetPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []storage.Plan{
		{ID: 1, Name: "Standard", Position: 1},
		{ID: 2, Name: "Extended", Position: 2},
	}, plans)
}

func TestGetMachines(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`FROM machine_types WHERE is_active = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "is_active"}).
			AddRow(3, "Lathe", "CNC lathe", true).
			AddRow(5, "Mill", nil, true))

	items, err := s.GetMachines(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, storage.ItemKindMachine, items[0].Kind)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "CNC lathe", *items[0].Description)
	assert.Nil(t, items[1].Description)
}

func TestGetSoftware_QueryError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`FROM software_types`).WillReturnError(errors.New("table missing"))

	_, err := s.GetSoftware(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.mysql.getCatalog")
}

package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func TestGetAllResources(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`FROM resources`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "color", "is_active"}).
			AddRow(int64(1), "Anna", "trainer", "#ff0000", true).
			AddRow(int64(2), "Boris", "engineer", nil, false))

	resources, err := s.GetAllResources(context.Background())
	require.NoError(t, err)
	require.Len(t, resources, 2)

	require.NotNil(t, resources[0].Color)
	assert.Equal(t, "#ff0000", *resources[0].Color)
	assert.Nil(t, resources[1].Color)
	assert.False(t, resources[1].IsActive)
}

func TestCreateResource(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`INSERT INTO resources`).
		WithArgs("Anna", "trainer", sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := s.CreateResource(context.Background(), storage.Resource{Name: "Anna", Role: "trainer", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestCreateResource_Duplicate(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`INSERT INTO resources`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Anna' for key 'name'"})

	_, err := s.CreateResource(context.Background(), storage.Resource{Name: "Anna"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestUpdateResources_Missing(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`UPDATE resources SET`)
	prep.ExpectExec().
		WithArgs("Anna", "trainer", sqlmock.AnyArg(), true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("Ghost", "", sqlmock.AnyArg(), false, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM resources`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectRollback()

	err := s.UpdateResources(context.Background(), []storage.Resource{
		{ID: 1, Name: "Anna", Role: "trainer", IsActive: true},
		{ID: 99, Name: "Ghost"},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateResources_ExistenceCheckFails(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`UPDATE resources SET`)
	prep.ExpectExec().
		WithArgs("Anna", "trainer", sqlmock.AnyArg(), true, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM resources`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("bad connection"))
	mock.ExpectRollback()

	err := s.UpdateResources(context.Background(), []storage.Resource{
		{ID: 1, Name: "Anna", Role: "trainer", IsActive: true},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

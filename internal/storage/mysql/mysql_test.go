package mysql

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewFromDB(db), mock
}

func TestClassify(t *testing.T) {
	dup := classify(&mysql.MySQLError{Number: errDuplicateEntry, Message: "Duplicate entry 'Anna'"})
	assert.ErrorIs(t, dup, storage.ErrDuplicate)

	fk := classify(&mysql.MySQLError{Number: errNoReferenced, Message: "fk"})
	assert.ErrorIs(t, fk, storage.ErrForeignKey)

	other := errors.New("boom")
	assert.Equal(t, other, classify(other))
}

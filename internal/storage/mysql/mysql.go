package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/PareasySys/sysquote-sub002/internal/config"
	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

const (
	errDuplicateEntry = 1062
	errNoReferenced   = 1452
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewFromDB оборачивает уже открытое соединение (тесты, внешние пулы).
func NewFromDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// classify maps driver error numbers onto storage sentinels.
func classify(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDuplicateEntry:
			return fmt.Errorf("%w: %s", storage.ErrDuplicate, mysqlErr.Message)
		case errNoReferenced:
			return fmt.Errorf("%w: %s", storage.ErrForeignKey, mysqlErr.Message)
		}
	}
	return err
}

type txQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowExists is used after UPDATE: MySQL reports 0 affected rows when nothing changed.
// Only sql.ErrNoRows means "missing"; any other failure is returned as is.
func rowExists(ctx context.Context, q txQuerier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

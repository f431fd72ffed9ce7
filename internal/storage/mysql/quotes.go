package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func (s *Storage) CreateQuote(ctx context.Context, q storage.NewQuote) (uuid.UUID, error) {
	const op = "storage.mysql.CreateQuote"

	id := uuid.New()

	stmt := `INSERT INTO quotes (id, name, customer, work_on_saturday, work_on_sunday, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, stmt, id.String(), q.Name, q.Customer, q.WorkOnSaturday, q.WorkOnSunday, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: ошибка сохранения КП: %w", op, classify(err))
	}

	return id, nil
}

func (s *Storage) GetQuote(ctx context.Context, id uuid.UUID) (*storage.Quote, error) {
	const op = "storage.mysql.GetQuote"

	stmt := `SELECT id, name, customer, work_on_saturday, work_on_sunday, created_at FROM quotes WHERE id = ?`

	quote := &storage.Quote{}
	err := s.db.QueryRowContext(ctx, stmt, id.String()).Scan(
		&quote.ID,
		&quote.Name,
		&quote.Customer,
		&quote.WorkOnSaturday,
		&quote.WorkOnSunday,
		&quote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: КП id=%s: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	items, err := s.getQuoteItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	quote.Items = items

	return quote, nil
}

func (s *Storage) getQuoteItems(ctx context.Context, id uuid.UUID) ([]storage.QuoteItem, error) {
	const op = "storage.mysql.getQuoteItems"

	stmt := `
		SELECT qi.item_id, qi.item_kind, COALESCE(m.name, sw.name, '') AS item_name, qi.position
		FROM quote_items qi
		LEFT JOIN machine_types m ON qi.item_kind = 'machine' AND m.id = qi.item_id
		LEFT JOIN software_types sw ON qi.item_kind = 'software' AND sw.id = qi.item_id
		WHERE qi.quote_id = ?
		ORDER BY qi.position, qi.item_id`

	rows, err := s.db.QueryContext(ctx, stmt, id.String())
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения позиций КП: %w", op, err)
	}
	defer rows.Close()

	items := []storage.QuoteItem{}
	for rows.Next() {
		var item storage.QuoteItem
		if err := rows.Scan(&item.ItemID, &item.ItemKind, &item.ItemName, &item.Position); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Storage) UpdateQuoteWeekends(ctx context.Context, id uuid.UUID, upd storage.UpdateWeekends) error {
	const op = "storage.mysql.UpdateQuoteWeekends"

	stmt := `UPDATE quotes SET work_on_saturday = ?, work_on_sunday = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, upd.WorkOnSaturday, upd.WorkOnSunday, id.String())
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления выходных для КП id=%s: %w", op, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: ошибка получения числа обновлённых строк КП id=%s: %w", op, id, err)
	}
	if n == 0 {
		exists, err := rowExists(ctx, s.db, `SELECT 1 FROM quotes WHERE id = ?`, id.String())
		if err != nil {
			return fmt.Errorf("%s: ошибка проверки КП id=%s: %w", op, id, err)
		}
		if !exists {
			return fmt.Errorf("%s: КП id=%s: %w", op, id, storage.ErrNotFound)
		}
	}

	return nil
}

// SaveQuoteItems заменяет список позиций КП целиком.
func (s *Storage) SaveQuoteItems(ctx context.Context, id uuid.UUID, items []storage.QuoteItem) error {
	const op = "storage.mysql.SaveQuoteItems"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	exists, err := rowExists(ctx, tx, `SELECT 1 FROM quotes WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("%s: ошибка проверки КП id=%s: %w", op, id, err)
	}
	if !exists {
		return fmt.Errorf("%s: КП id=%s: %w", op, id, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quote_items WHERE quote_id = ?`, id.String()); err != nil {
		return fmt.Errorf("%s: ошибка удаления старых позиций КП id=%s: %w", op, id, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quote_items (quote_id, item_kind, item_id, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: ошибка подготовки запроса: %w", op, err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, id.String(), item.ItemKind, item.ItemID, i+1); err != nil {
			return fmt.Errorf("%s: ошибка вставки позиции %s id=%d: %w", op, item.ItemKind, item.ItemID, classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

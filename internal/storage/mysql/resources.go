package mysql

import (
	"context"
	"fmt"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func (s *Storage) GetAllResources(ctx context.Context) ([]storage.Resource, error) {
	const op = "storage.mysql.GetAllResources"

	stmt := `SELECT id, name, role, color, is_active FROM resources ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения всех ресурсов: %w", op, err)
	}
	defer rows.Close()

	var resources []storage.Resource
	for rows.Next() {
		var r storage.Resource
		if err := rows.Scan(&r.ID, &r.Name, &r.Role, &r.Color, &r.IsActive); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк для ресурсов: %w", op, err)
		}
		resources = append(resources, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return resources, nil
}

func (s *Storage) CreateResource(ctx context.Context, r storage.Resource) (int64, error) {
	const op = "storage.mysql.CreateResource"

	stmt := `INSERT INTO resources (name, role, color, is_active) VALUES (?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, r.Name, r.Role, r.Color, r.IsActive)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения ресурса %q: %w", op, r.Name, classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: не удалось получить id: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateResources(ctx context.Context, resources []storage.Resource) error {
	const op = "storage.mysql.UpdateResources"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: не удалось начать транзакцию: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE resources SET name = ?, role = ?, color = ?, is_active = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("%s: не удалось подготовить запрос: %w", op, err)
	}
	defer stmt.Close()

	for _, r := range resources {
		res, err := stmt.ExecContext(ctx, r.Name, r.Role, r.Color, r.IsActive, r.ID)
		if err != nil {
			return fmt.Errorf("%s: ошибка обновления ресурса id=%d: %w", op, r.ID, classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: ошибка получения числа обновлённых строк ресурса id=%d: %w", op, r.ID, err)
		}
		if n == 0 {
			exists, err := rowExists(ctx, tx, `SELECT 1 FROM resources WHERE id = ?`, r.ID)
			if err != nil {
				return fmt.Errorf("%s: ошибка проверки ресурса id=%d: %w", op, r.ID, err)
			}
			if !exists {
				return fmt.Errorf("%s: ресурс id=%d: %w", op, r.ID, storage.ErrNotFound)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: ошибка коммита транзакции: %w", op, err)
	}

	return nil
}

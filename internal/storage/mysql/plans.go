package mysql

import (
	"context"
	"fmt"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

func (s *Storage) GetPlans(ctx context.Context) ([]storage.Plan, error) {
	const op = "storage.mysql.GetPlans"

	stmt := `SELECT id, name, position FROM training_plans ORDER BY position, id`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения планов обучения: %w", op, err)
	}
	defer rows.Close()

	var plans []storage.Plan
	for rows.Next() {
		var p storage.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Position); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		plans = append(plans, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return plans, nil
}

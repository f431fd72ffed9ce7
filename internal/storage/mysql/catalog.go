package mysql

import (
	"context"
	"fmt"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

var catalogTables = map[string]string{
	storage.ItemKindMachine:  "machine_types",
	storage.ItemKindSoftware: "software_types",
}

func (s *Storage) GetMachines(ctx context.Context) ([]storage.CatalogItem, error) {
	return s.getCatalog(ctx, storage.ItemKindMachine)
}

func (s *Storage) GetSoftware(ctx context.Context) ([]storage.CatalogItem, error) {
	return s.getCatalog(ctx, storage.ItemKindSoftware)
}

func (s *Storage) getCatalog(ctx context.Context, kind string) ([]storage.CatalogItem, error) {
	const op = "storage.mysql.getCatalog"

	table, ok := catalogTables[kind]
	if !ok {
		return nil, fmt.Errorf("%s: неизвестный тип позиции: %s", op, kind)
	}

	stmt := `SELECT id, name, description, is_active FROM ` + table + ` WHERE is_active = TRUE ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения каталога %s: %w", op, kind, err)
	}
	defer rows.Close()

	var items []storage.CatalogItem
	for rows.Next() {
		item := storage.CatalogItem{Kind: kind}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return items, nil
}

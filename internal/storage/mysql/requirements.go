package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

// GetTrainingRequirements is the single read-model behind the schedule: every
// requirement of every item selected in the quote, with resource and item
// names resolved. Order is quote item position, then requirement position.
// Inactive resources come back as unassigned.
func (s *Storage) GetTrainingRequirements(ctx context.Context, quoteID uuid.UUID) ([]storage.TrainingRequirement, error) {
	const op = "storage.mysql.GetTrainingRequirements"

	stmt := `
		SELECT r.id, COALESCE(r.name, ''), qi.item_id, qi.item_kind,
		       COALESCE(m.name, sw.name, ''), tr.plan_id, tr.hours
		FROM quote_items qi
		JOIN training_requirements tr ON tr.item_kind = qi.item_kind AND tr.item_id = qi.item_id
		LEFT JOIN resources r ON r.id = tr.resource_id AND r.is_active = TRUE
		LEFT JOIN machine_types m ON qi.item_kind = 'machine' AND m.id = qi.item_id
		LEFT JOIN software_types sw ON qi.item_kind = 'software' AND sw.id = qi.item_id
		WHERE qi.quote_id = ?
		ORDER BY qi.position, tr.position, tr.id`

	rows, err := s.db.QueryContext(ctx, stmt, quoteID.String())
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения требований к обучению: %w", op, err)
	}
	defer rows.Close()

	result := []storage.TrainingRequirement{}
	for rows.Next() {
		var (
			req        storage.TrainingRequirement
			resourceID sql.NullInt64
		)

		err := rows.Scan(&resourceID, &req.ResourceName, &req.ItemID, &req.ItemKind, &req.ItemName, &req.PlanID, &req.HoursRequired)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}

		if resourceID.Valid {
			id := resourceID.Int64
			req.ResourceID = &id
		}

		result = append(result, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return result, nil
}

// SaveTrainingRequirements replaces the requirements of every (item, plan) pair
// present in the request. Rows keep the request order as their position.
func (s *Storage) SaveTrainingRequirements(ctx context.Context, reqs []storage.RequirementAssignment) error {
	const op = "storage.mysql.SaveTrainingRequirements"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	type pair struct {
		kind   string
		itemID int64
		planID int64
	}
	seen := make(map[pair]bool)

	for _, r := range reqs {
		p := pair{r.ItemKind, r.ItemID, r.PlanID}
		if seen[p] {
			continue
		}
		seen[p] = true

		_, err := tx.ExecContext(ctx,
			`DELETE FROM training_requirements WHERE item_kind = ? AND item_id = ? AND plan_id = ?`,
			r.ItemKind, r.ItemID, r.PlanID)
		if err != nil {
			return fmt.Errorf("%s: ошибка удаления старых требований %s id=%d plan=%d: %w", op, r.ItemKind, r.ItemID, r.PlanID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO training_requirements (item_kind, item_id, plan_id, resource_id, hours, position)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: ошибка подготовки запроса: %w", op, err)
	}
	defer stmt.Close()

	for i, r := range reqs {
		_, err := stmt.ExecContext(ctx, r.ItemKind, r.ItemID, r.PlanID, r.ResourceID, r.Hours, i+1)
		if err != nil {
			return fmt.Errorf("%s: ошибка вставки требования %s id=%d plan=%d: %w", op, r.ItemKind, r.ItemID, r.PlanID, classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

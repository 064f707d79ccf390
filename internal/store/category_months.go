package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryMonthStore struct {
	db *sqlx.DB
}

const upsertAllocationQuery = `
	INSERT INTO category_months (id, category_id, year, month, allocated)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (category_id, year, month)
	DO UPDATE SET allocated = EXCLUDED.allocated
	RETURNING id, category_id, year, month, allocated`

// Upsert writes the allocation for one (category, year, month). The write
// never needs to know whether a row already existed.
func (ms *CategoryMonthStore) Upsert(ctx context.Context, categoryID string, year, month int, allocated int64) (*CategoryMonth, error) {
	var cm CategoryMonth
	err := ms.db.GetContext(ctx, &cm, upsertAllocationQuery,
		uuid.NewString(), categoryID, year, month, allocated)
	if err != nil {
		return nil, fmt.Errorf("upsert allocation: %w", err)
	}
	return &cm, nil
}

// BulkUpsert applies all assignments inside a single transaction, so a batch
// either lands whole or not at all.
func (ms *CategoryMonthStore) BulkUpsert(ctx context.Context, year, month int, assignments []Assignment) (int, error) {
	if len(assignments) == 0 {
		return 0, nil
	}

	tx, err := ms.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk allocation: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, a := range assignments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO category_months (id, category_id, year, month, allocated)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (category_id, year, month)
			DO UPDATE SET allocated = EXCLUDED.allocated`,
			uuid.NewString(), a.CategoryID, year, month, a.Allocated)
		if err != nil {
			return 0, fmt.Errorf("bulk upsert allocation for %s: %w", a.CategoryID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk allocation: %w", err)
	}
	return count, nil
}

// ResetMonth deletes every allocation row for the month, which reads back as
// zero allocated for all categories. Other months are untouched.
func (ms *CategoryMonthStore) ResetMonth(ctx context.Context, year, month int) (int64, error) {
	res, err := ms.db.ExecContext(ctx,
		`DELETE FROM category_months WHERE year = $1 AND month = $2`, year, month)
	if err != nil {
		return 0, fmt.Errorf("reset month: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (ms *CategoryMonthStore) MonthAllocations(ctx context.Context, year, month int) (map[string]int64, error) {
	rows := []CategoryMonth{}
	err := ms.db.SelectContext(ctx, &rows,
		`SELECT id, category_id, year, month, allocated FROM category_months WHERE year = $1 AND month = $2`,
		year, month)
	if err != nil {
		return nil, fmt.Errorf("month allocations: %w", err)
	}

	allocations := make(map[string]int64, len(rows))
	for _, r := range rows {
		allocations[r.CategoryID] = r.Allocated
	}
	return allocations, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// BudgetStore holds the read-model queries behind the budget and insights
// engines. It never writes.
type BudgetStore struct {
	db *sqlx.DB
}

// MonthRows outer-joins groups to categories to the month's allocation row to
// the month's transactions. Categories without an allocation row come back
// with allocated = 0, never an error.
func (bs *BudgetStore) MonthRows(ctx context.Context, year, month int) ([]BudgetRow, error) {
	rows := []BudgetRow{}
	query := `
	SELECT
		cg.id AS group_id,
		cg.name AS group_name,
		cg.sort_order AS group_sort,
		c.id AS category_id,
		c.name AS category_name,
		c.is_savings,
		c.sort_order AS category_sort,
		c.due_day,
		c.recurrence,
		c.target_amount,
		c.notes,
		COALESCE(cm.allocated, 0) AS allocated,
		COALESCE(SUM(t.amount), 0) AS activity
	FROM category_groups cg
	LEFT JOIN categories c ON c.group_id = cg.id
	LEFT JOIN category_months cm
		ON cm.category_id = c.id AND cm.year = $1 AND cm.month = $2
	LEFT JOIN transactions t
		ON t.category_id = c.id
		AND EXTRACT(YEAR FROM t.date) = $1
		AND EXTRACT(MONTH FROM t.date) = $2
	GROUP BY cg.id, cg.name, cg.sort_order, c.id, c.name, c.is_savings, c.sort_order,
		c.due_day, c.recurrence, c.target_amount, c.notes, cm.allocated
	ORDER BY cg.sort_order, c.sort_order`

	if err := bs.db.SelectContext(ctx, &rows, query, year, month); err != nil {
		return nil, fmt.Errorf("budget month rows: %w", err)
	}
	return rows, nil
}

// Funding scans the full history: starting balances, every inflow ever
// recorded, and every allocation ever written. Ready-to-assign is derived
// from these three totals and is deliberately not month-scoped.
func (bs *BudgetStore) Funding(ctx context.Context) (*Funding, error) {
	var f Funding
	query := `
	SELECT
		COALESCE((SELECT SUM(starting_balance) FROM accounts), 0) AS total_starting_balance,
		COALESCE((SELECT SUM(amount) FROM transactions WHERE amount > 0), 0) AS total_inflow,
		COALESCE((SELECT SUM(allocated) FROM category_months), 0) AS total_allocated`

	if err := bs.db.GetContext(ctx, &f, query); err != nil {
		return nil, fmt.Errorf("funding totals: %w", err)
	}
	return &f, nil
}

// MonthlyCategoryOutflows returns per-category spending totals by calendar
// month over the trailing window.
func (bs *BudgetStore) MonthlyCategoryOutflows(ctx context.Context, months int) ([]CategoryOutflow, error) {
	rows := []CategoryOutflow{}
	query := `
	SELECT
		c.id AS category_id,
		c.name AS category_name,
		EXTRACT(YEAR FROM t.date)::int AS year,
		EXTRACT(MONTH FROM t.date)::int AS month,
		-SUM(t.amount) AS outflow
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	WHERE t.amount < 0
	  AND t.date >= date_trunc('month', CURRENT_DATE) - make_interval(months => $1)
	GROUP BY 1, 2, 3, 4
	ORDER BY 2, 3, 4`

	if err := bs.db.SelectContext(ctx, &rows, query, months); err != nil {
		return nil, fmt.Errorf("monthly category outflows: %w", err)
	}
	return rows, nil
}

// Package store is the durable ledger: accounts, category groups, categories,
// per-month allocations, payees, and transactions over Postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when an id does not resolve to a row.
var ErrNotFound = errors.New("record not found")

type Storage struct {
	Accounts interface {
		List(ctx context.Context) ([]Account, error)
		Get(ctx context.Context, id string) (*Account, error)
		Create(ctx context.Context, a *Account) error
		Update(ctx context.Context, id string, p AccountPatch) (*Account, error)
		Delete(ctx context.Context, id string) error
	}

	CategoryGroups interface {
		List(ctx context.Context) ([]CategoryGroup, error)
		Create(ctx context.Context, g *CategoryGroup) error
		Update(ctx context.Context, id string, p CategoryGroupPatch) (*CategoryGroup, error)
		Delete(ctx context.Context, id string) error
	}

	Categories interface {
		List(ctx context.Context) ([]Category, error)
		Get(ctx context.Context, id string) (*Category, error)
		Create(ctx context.Context, c *Category) error
		Update(ctx context.Context, id string, p CategoryPatch) (*Category, error)
		Delete(ctx context.Context, id string) error
	}

	CategoryMonths interface {
		Upsert(ctx context.Context, categoryID string, year, month int, allocated int64) (*CategoryMonth, error)
		// BulkUpsert applies every assignment inside one database
		// transaction and reports how many rows were written.
		BulkUpsert(ctx context.Context, year, month int, assignments []Assignment) (int, error)
		ResetMonth(ctx context.Context, year, month int) (int64, error)
		MonthAllocations(ctx context.Context, year, month int) (map[string]int64, error)
	}

	Transactions interface {
		List(ctx context.Context, f TransactionFilter) ([]Transaction, error)
		Get(ctx context.Context, id string) (*Transaction, error)
		Create(ctx context.Context, t *Transaction) error
		Update(ctx context.Context, id string, p TransactionPatch) (*Transaction, error)
		Delete(ctx context.Context, id string) error
	}

	Payees interface {
		List(ctx context.Context) ([]Payee, error)
	}

	Budget interface {
		MonthRows(ctx context.Context, year, month int) ([]BudgetRow, error)
		Funding(ctx context.Context) (*Funding, error)
		MonthlyCategoryOutflows(ctx context.Context, months int) ([]CategoryOutflow, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Accounts:       &AccountStore{db: db},
		CategoryGroups: &CategoryGroupStore{db: db},
		Categories:     &CategoryStore{db: db},
		CategoryMonths: &CategoryMonthStore{db: db},
		Transactions:   &TransactionStore{db: db},
		Payees:         &PayeeStore{db: db},
		Budget:         &BudgetStore{db: db},
	}
}

// ParseDate validates the calendar-date format used throughout the API.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// mapNoRows translates sql.ErrNoRows to ErrNotFound and wraps anything else.
func mapNoRows(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

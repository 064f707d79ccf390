package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AccountStore struct {
	db *sqlx.DB
}

// Every read recomputes balances from the transaction log; an account with no
// transactions falls back to its starting balance.
const accountBalanceQuery = `
	SELECT
		a.id, a.name, a.type, a.starting_balance, a.is_savings_bucket, a.sort_order, a.created_at,
		COALESCE(a.starting_balance + SUM(t.amount), a.starting_balance) AS computed_balance,
		COALESCE(a.starting_balance + SUM(CASE WHEN t.cleared THEN t.amount ELSE 0 END), a.starting_balance) AS cleared_balance
	FROM accounts a
	LEFT JOIN transactions t ON t.account_id = a.id`

func (as *AccountStore) List(ctx context.Context) ([]Account, error) {
	accounts := []Account{}
	query := accountBalanceQuery + `
	GROUP BY a.id
	ORDER BY a.sort_order, a.created_at`

	if err := as.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (as *AccountStore) Get(ctx context.Context, id string) (*Account, error) {
	var account Account
	query := accountBalanceQuery + `
	WHERE a.id = $1
	GROUP BY a.id`

	if err := as.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

func (as *AccountStore) Create(ctx context.Context, a *Account) error {
	a.ID = uuid.NewString()
	query := `
	INSERT INTO accounts (id, name, type, starting_balance, is_savings_bucket, sort_order)
	VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM accounts))
	RETURNING sort_order, created_at`

	err := as.db.QueryRowxContext(ctx, query, a.ID, a.Name, a.Type, a.StartingBalance, a.IsSavingsBucket).
		Scan(&a.SortOrder, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	a.ComputedBalance = a.StartingBalance
	a.ClearedBalance = a.StartingBalance
	return nil
}

func (as *AccountStore) Update(ctx context.Context, id string, p AccountPatch) (*Account, error) {
	b := newSetBuilder()
	if p.Name.Set {
		b.add("name", p.Name.Value)
	}
	if p.Type.Set {
		b.add("type", p.Type.Value)
	}
	if p.StartingBalance.Set {
		b.add("starting_balance", p.StartingBalance.Value)
	}
	if p.IsSavingsBucket.Set {
		b.add("is_savings_bucket", p.IsSavingsBucket.Value)
	}
	if p.SortOrder.Set {
		b.add("sort_order", p.SortOrder.Value)
	}
	if b.empty() {
		return as.Get(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE id = $%d`, b.clause(), b.next())
	res, err := as.db.ExecContext(ctx, query, append(b.args, id)...)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return as.Get(ctx, id)
}

// Delete removes the account and, through the schema cascade, every
// transaction it owns.
func (as *AccountStore) Delete(ctx context.Context, id string) error {
	res, err := as.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

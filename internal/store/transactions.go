package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TransactionStore struct {
	db *sqlx.DB
}

const transactionColumns = `
	t.id, t.account_id, a.name AS account_name,
	t.category_id, c.name AS category_name, cg.name AS category_group_name,
	t.payee_id, COALESCE(t.payee_name, p.name) AS payee_name,
	t.amount, to_char(t.date, 'YYYY-MM-DD') AS date, t.memo, t.cleared, t.created_at`

const transactionJoins = `
	FROM transactions t
	LEFT JOIN accounts a ON a.id = t.account_id
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN category_groups cg ON cg.id = c.group_id
	LEFT JOIN payees p ON p.id = t.payee_id`

func (ts *TransactionStore) List(ctx context.Context, f TransactionFilter) ([]Transaction, error) {
	transactions := []Transaction{}
	query := `
	SELECT ` + transactionColumns + transactionJoins + `
	WHERE ($1::uuid IS NULL OR t.account_id = $1)
	  AND ($2::uuid IS NULL OR t.category_id = $2)
	  AND ($3::int IS NULL OR EXTRACT(YEAR FROM t.date) = $3)
	  AND ($4::int IS NULL OR EXTRACT(MONTH FROM t.date) = $4)
	ORDER BY t.date DESC, t.created_at DESC
	LIMIT 500`

	err := ts.db.SelectContext(ctx, &transactions, query, f.AccountID, f.CategoryID, f.Year, f.Month)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (ts *TransactionStore) Get(ctx context.Context, id string) (*Transaction, error) {
	var transaction Transaction
	query := `SELECT ` + transactionColumns + transactionJoins + ` WHERE t.id = $1`

	if err := ts.db.GetContext(ctx, &transaction, query, id); err != nil {
		return nil, mapNoRows(err, "get transaction")
	}
	return &transaction, nil
}

// Create inserts the transaction, first deduplicating the payee by name. Both
// statements run in one transaction.
func (ts *TransactionStore) Create(ctx context.Context, t *Transaction) error {
	tx, err := ts.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create transaction: %w", err)
	}
	defer tx.Rollback()

	if t.PayeeName != nil {
		trimmed := strings.TrimSpace(*t.PayeeName)
		if trimmed == "" {
			t.PayeeName = nil
		} else {
			t.PayeeName = &trimmed
			payeeID, err := upsertPayee(ctx, tx, trimmed)
			if err != nil {
				return err
			}
			t.PayeeID = &payeeID
		}
	}

	t.ID = uuid.NewString()
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO transactions (id, account_id, category_id, payee_id, payee_name, amount, date, memo, cleared)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9)
		RETURNING created_at`,
		t.ID, t.AccountID, t.CategoryID, t.PayeeID, t.PayeeName, t.Amount, t.Date, t.Memo, t.Cleared).
		Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create transaction: %w", err)
	}
	return nil
}

func (ts *TransactionStore) Update(ctx context.Context, id string, p TransactionPatch) (*Transaction, error) {
	tx, err := ts.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update transaction: %w", err)
	}
	defer tx.Rollback()

	b := newSetBuilder()
	if p.AccountID.Set {
		b.add("account_id", p.AccountID.Value)
	}
	if p.CategoryID.Set {
		b.add("category_id", p.CategoryID.Ptr())
	}
	if p.PayeeName.Set {
		// A new name re-points the payee reference; null or blank clears both.
		trimmed := ""
		if p.PayeeName.Valid {
			trimmed = strings.TrimSpace(p.PayeeName.Value)
		}
		if trimmed == "" {
			b.add("payee_id", nil)
			b.add("payee_name", nil)
		} else {
			payeeID, err := upsertPayee(ctx, tx, trimmed)
			if err != nil {
				return nil, err
			}
			b.add("payee_id", payeeID)
			b.add("payee_name", trimmed)
		}
	}
	if p.Amount.Set {
		b.add("amount", p.Amount.Value)
	}
	if p.Date.Set {
		b.add("date", p.Date.Value)
	}
	if p.Memo.Set {
		b.add("memo", p.Memo.Ptr())
	}
	if p.Cleared.Set {
		b.add("cleared", p.Cleared.Value)
	}
	if b.empty() {
		return ts.Get(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE transactions SET %s WHERE id = $%d`, b.clause(), b.next())
	res, err := tx.ExecContext(ctx, query, append(b.args, id)...)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update transaction: %w", err)
	}
	return ts.Get(ctx, id)
}

func (ts *TransactionStore) Delete(ctx context.Context, id string) error {
	res, err := ts.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func upsertPayee(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO payees (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		uuid.NewString(), name).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert payee: %w", err)
	}
	return id, nil
}

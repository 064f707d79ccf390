package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PayeeStore struct {
	db *sqlx.DB
}

// List returns every payee ordered by name, for autocomplete.
func (ps *PayeeStore) List(ctx context.Context) ([]Payee, error) {
	payees := []Payee{}
	query := `SELECT id, name, created_at FROM payees ORDER BY name`

	if err := ps.db.SelectContext(ctx, &payees, query); err != nil {
		return nil, fmt.Errorf("list payees: %w", err)
	}
	return payees, nil
}

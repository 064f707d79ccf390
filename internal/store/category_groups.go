package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryGroupStore struct {
	db *sqlx.DB
}

func (gs *CategoryGroupStore) List(ctx context.Context) ([]CategoryGroup, error) {
	groups := []CategoryGroup{}
	query := `SELECT id, name, sort_order, created_at FROM category_groups ORDER BY sort_order, created_at`

	if err := gs.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list category groups: %w", err)
	}
	return groups, nil
}

func (gs *CategoryGroupStore) Create(ctx context.Context, g *CategoryGroup) error {
	g.ID = uuid.NewString()
	query := `
	INSERT INTO category_groups (id, name, sort_order)
	VALUES ($1, $2, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM category_groups))
	RETURNING sort_order, created_at`

	err := gs.db.QueryRowxContext(ctx, query, g.ID, g.Name).Scan(&g.SortOrder, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category group: %w", err)
	}
	return nil
}

func (gs *CategoryGroupStore) Update(ctx context.Context, id string, p CategoryGroupPatch) (*CategoryGroup, error) {
	b := newSetBuilder()
	if p.Name.Set {
		b.add("name", p.Name.Value)
	}
	if p.SortOrder.Set {
		b.add("sort_order", p.SortOrder.Value)
	}

	var group CategoryGroup
	if b.empty() {
		err := gs.db.GetContext(ctx, &group,
			`SELECT id, name, sort_order, created_at FROM category_groups WHERE id = $1`, id)
		if err != nil {
			return nil, mapNoRows(err, "get category group")
		}
		return &group, nil
	}

	query := fmt.Sprintf(
		`UPDATE category_groups SET %s WHERE id = $%d RETURNING id, name, sort_order, created_at`,
		b.clause(), b.next())
	err := gs.db.GetContext(ctx, &group, query, append(b.args, id)...)
	if err != nil {
		return nil, mapNoRows(err, "update category group")
	}
	return &group, nil
}

// Delete removes the group and cascades to its categories; transactions that
// referenced those categories are left in place with a null category.
func (gs *CategoryGroupStore) Delete(ctx context.Context, id string) error {
	res, err := gs.db.ExecContext(ctx, `DELETE FROM category_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

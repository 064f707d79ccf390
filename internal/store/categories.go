package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryStore struct {
	db *sqlx.DB
}

const categoryColumns = `
	c.id, c.group_id, cg.name AS group_name, c.name, c.is_savings, c.sort_order,
	c.due_day, c.recurrence, c.target_amount, c.notes, c.created_at`

func (cs *CategoryStore) List(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	query := `
	SELECT ` + categoryColumns + `
	FROM categories c
	JOIN category_groups cg ON cg.id = c.group_id
	ORDER BY cg.sort_order, c.sort_order`

	if err := cs.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (cs *CategoryStore) Get(ctx context.Context, id string) (*Category, error) {
	var category Category
	query := `
	SELECT ` + categoryColumns + `
	FROM categories c
	JOIN category_groups cg ON cg.id = c.group_id
	WHERE c.id = $1`

	if err := cs.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, mapNoRows(err, "get category")
	}
	return &category, nil
}

func (cs *CategoryStore) Create(ctx context.Context, c *Category) error {
	c.ID = uuid.NewString()
	query := `
	INSERT INTO categories (id, group_id, name, is_savings, sort_order, due_day, recurrence, target_amount, notes)
	VALUES ($1, $2, $3, $4,
		(SELECT COALESCE(MAX(sort_order), 0) + 1 FROM categories WHERE group_id = $2),
		$5, $6, $7, $8)
	RETURNING sort_order, created_at`

	err := cs.db.QueryRowxContext(ctx, query,
		c.ID, c.GroupID, c.Name, c.IsSavings, c.DueDay, c.Recurrence, c.TargetAmount, c.Notes).
		Scan(&c.SortOrder, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (cs *CategoryStore) Update(ctx context.Context, id string, p CategoryPatch) (*Category, error) {
	b := newSetBuilder()
	if p.Name.Set {
		b.add("name", p.Name.Value)
	}
	if p.GroupID.Set {
		b.add("group_id", p.GroupID.Value)
	}
	if p.IsSavings.Set {
		b.add("is_savings", p.IsSavings.Value)
	}
	if p.SortOrder.Set {
		b.add("sort_order", p.SortOrder.Value)
	}
	// Nullable columns: explicit null clears the value.
	if p.DueDay.Set {
		b.add("due_day", p.DueDay.Ptr())
	}
	if p.Recurrence.Set {
		b.add("recurrence", p.Recurrence.Ptr())
	}
	if p.TargetAmount.Set {
		b.add("target_amount", p.TargetAmount.Ptr())
	}
	if p.Notes.Set {
		b.add("notes", p.Notes.Ptr())
	}
	if b.empty() {
		return cs.Get(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d`, b.clause(), b.next())
	res, err := cs.db.ExecContext(ctx, query, append(b.args, id)...)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return cs.Get(ctx, id)
}

// Delete removes the category. Referencing transactions keep their rows with
// category_id nulled by the schema; allocation rows cascade away.
func (cs *CategoryStore) Delete(ctx context.Context, id string) error {
	res, err := cs.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

package budget

import (
	"context"
	"errors"
	"fmt"

	"budgetd/internal/store"

	"github.com/google/uuid"
)

// ErrValidation marks a request rejected before any store access.
var ErrValidation = errors.New("validation")

// Mutator is the single write path for allocations. The UI handlers and the
// assistant tools both go through it, so neither can bend an invariant the
// other respects.
type Mutator struct {
	store *store.Storage
}

func NewMutator(s *store.Storage) *Mutator {
	return &Mutator{store: s}
}

// ValidateMonth bounds the (year, month) key.
func ValidateMonth(year, month int) error {
	if year < 1900 || year > 9999 {
		return fmt.Errorf("%w: invalid year %d", ErrValidation, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: invalid month %d", ErrValidation, month)
	}
	return nil
}

// Assign sets (not adjusts) the allocation for one category/month.
func (m *Mutator) Assign(ctx context.Context, year, month int, categoryID string, allocated int64) (*store.CategoryMonth, error) {
	if err := ValidateMonth(year, month); err != nil {
		return nil, err
	}
	if err := validateCategoryID(categoryID); err != nil {
		return nil, err
	}
	return m.store.CategoryMonths.Upsert(ctx, categoryID, year, month, allocated)
}

// BulkAssign validates the whole batch before any write, then applies it
// atomically. The returned count is how many assignments were written.
func (m *Mutator) BulkAssign(ctx context.Context, year, month int, assignments []store.Assignment) (int, error) {
	if err := ValidateMonth(year, month); err != nil {
		return 0, err
	}
	if len(assignments) == 0 {
		return 0, fmt.Errorf("%w: assignments must not be empty", ErrValidation)
	}
	for i, a := range assignments {
		if err := validateCategoryID(a.CategoryID); err != nil {
			return 0, fmt.Errorf("assignment %d: %w", i, err)
		}
	}
	return m.store.CategoryMonths.BulkUpsert(ctx, year, month, assignments)
}

// ResetMonth zeroes the month by deleting its allocation rows.
func (m *Mutator) ResetMonth(ctx context.Context, year, month int) (int64, error) {
	if err := ValidateMonth(year, month); err != nil {
		return 0, err
	}
	return m.store.CategoryMonths.ResetMonth(ctx, year, month)
}

// CoverOverspending tops up every overspent category so its available
// becomes zero: allocated' = allocated + |available|.
func (m *Mutator) CoverOverspending(ctx context.Context, year, month int) (int, error) {
	view, err := m.ReadMonth(ctx, year, month)
	if err != nil {
		return 0, err
	}

	var assignments []store.Assignment
	for _, g := range view.Groups {
		for _, c := range g.Categories {
			if c.Available < 0 {
				assignments = append(assignments, store.Assignment{
					CategoryID: c.ID,
					Allocated:  c.Allocated - c.Available,
				})
			}
		}
	}
	if len(assignments) == 0 {
		return 0, nil
	}
	return m.store.CategoryMonths.BulkUpsert(ctx, year, month, assignments)
}

// FundTargets raises each category with a target to its target amount. It
// never lowers an allocation already above target.
func (m *Mutator) FundTargets(ctx context.Context, year, month int) (int, error) {
	view, err := m.ReadMonth(ctx, year, month)
	if err != nil {
		return 0, err
	}

	var assignments []store.Assignment
	for _, g := range view.Groups {
		for _, c := range g.Categories {
			if c.TargetAmount != nil && *c.TargetAmount > c.Allocated {
				assignments = append(assignments, store.Assignment{
					CategoryID: c.ID,
					Allocated:  *c.TargetAmount,
				})
			}
		}
	}
	if len(assignments) == 0 {
		return 0, nil
	}
	return m.store.CategoryMonths.BulkUpsert(ctx, year, month, assignments)
}

// CopyPreviousMonth copies the prior month's plan into this one, writing only
// the categories whose allocation actually differs.
func (m *Mutator) CopyPreviousMonth(ctx context.Context, year, month int) (int, error) {
	if err := ValidateMonth(year, month); err != nil {
		return 0, err
	}
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}

	prev, err := m.store.CategoryMonths.MonthAllocations(ctx, prevYear, prevMonth)
	if err != nil {
		return 0, err
	}
	current, err := m.store.CategoryMonths.MonthAllocations(ctx, year, month)
	if err != nil {
		return 0, err
	}

	var assignments []store.Assignment
	for categoryID, allocated := range prev {
		if current[categoryID] != allocated {
			assignments = append(assignments, store.Assignment{CategoryID: categoryID, Allocated: allocated})
		}
	}
	// Categories allocated only in this month read as 0 in the prior plan and
	// must be zeroed too, or the copy is not a copy.
	for categoryID, allocated := range current {
		if _, ok := prev[categoryID]; !ok && allocated != 0 {
			assignments = append(assignments, store.Assignment{CategoryID: categoryID, Allocated: 0})
		}
	}
	if len(assignments) == 0 {
		return 0, nil
	}
	return m.store.CategoryMonths.BulkUpsert(ctx, year, month, assignments)
}

// ReadMonth validates the month key and assembles the full budget view.
func (m *Mutator) ReadMonth(ctx context.Context, year, month int) (*Month, error) {
	if err := ValidateMonth(year, month); err != nil {
		return nil, err
	}
	rows, err := m.store.Budget.MonthRows(ctx, year, month)
	if err != nil {
		return nil, err
	}
	funding, err := m.store.Budget.Funding(ctx)
	if err != nil {
		return nil, err
	}
	return Assemble(year, month, rows, *funding), nil
}

func validateCategoryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: category_id must be a uuid", ErrValidation)
	}
	return nil
}

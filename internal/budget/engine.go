// Package budget derives the monthly budget picture from the ledger and owns
// every allocation write path. All arithmetic is exact integer cents.
package budget

import (
	"budgetd/internal/store"
)

type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	// ReadyToAssign is global across all time: starting balances plus every
	// inflow ever recorded, minus every allocation ever written. Viewing a
	// different month never changes it.
	ReadyToAssign int64 `json:"ready_to_assign"`

	// TotalBudgeted is scoped to this month.
	TotalBudgeted int64   `json:"total_budgeted"`
	Groups        []Group `json:"groups"`
}

type Group struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	SortOrder      int            `json:"sort_order"`
	Categories     []CategoryLine `json:"categories"`
	TotalAllocated int64          `json:"total_allocated"`
	TotalActivity  int64          `json:"total_activity"`
	TotalAvailable int64          `json:"total_available"`
}

type CategoryLine struct {
	ID           string  `json:"id"`
	GroupID      string  `json:"group_id"`
	Name         string  `json:"name"`
	IsSavings    bool    `json:"is_savings"`
	SortOrder    int     `json:"sort_order"`
	DueDay       *int    `json:"due_day"`
	Recurrence   *string `json:"recurrence"`
	TargetAmount *int64  `json:"target_amount"`
	Notes        *string `json:"notes"`
	Allocated    int64   `json:"allocated"`
	Activity     int64   `json:"activity"`
	// Available = Allocated + Activity. Negative means overspent and is a
	// valid state, never clamped.
	Available int64 `json:"available"`
}

// Assemble builds the budget tree for one month from the store's flat outer
// join rows and the all-time funding totals.
func Assemble(year, month int, rows []store.BudgetRow, funding store.Funding) *Month {
	m := &Month{
		Year:          year,
		Month:         month,
		ReadyToAssign: funding.TotalStartingBalance + funding.TotalInflow - funding.TotalAllocated,
		Groups:        []Group{},
	}

	index := map[string]int{}
	for _, row := range rows {
		i, ok := index[row.GroupID]
		if !ok {
			i = len(m.Groups)
			index[row.GroupID] = i
			m.Groups = append(m.Groups, Group{
				ID:         row.GroupID,
				Name:       row.GroupName,
				SortOrder:  row.GroupSortOrder,
				Categories: []CategoryLine{},
			})
		}
		if row.CategoryID == nil {
			continue // group without categories yet
		}

		line := CategoryLine{
			ID:           *row.CategoryID,
			GroupID:      row.GroupID,
			Name:         deref(row.CategoryName),
			IsSavings:    row.IsSavings != nil && *row.IsSavings,
			SortOrder:    derefInt(row.CategorySort),
			DueDay:       row.DueDay,
			Recurrence:   row.Recurrence,
			TargetAmount: row.TargetAmount,
			Notes:        row.Notes,
			Allocated:    row.Allocated,
			Activity:     row.Activity,
			Available:    row.Allocated + row.Activity,
		}

		g := &m.Groups[i]
		g.Categories = append(g.Categories, line)
		g.TotalAllocated += line.Allocated
		g.TotalActivity += line.Activity
		g.TotalAvailable += line.Available
	}

	for _, g := range m.Groups {
		m.TotalBudgeted += g.TotalAllocated
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

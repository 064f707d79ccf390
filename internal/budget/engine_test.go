package budget

import (
	"testing"

	"budgetd/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }
func i64ptr(i int64) *int64   { return &i }
func boolptr(b bool) *bool    { return &b }

func row(groupID, groupName string, catID, catName string, allocated, activity int64) store.BudgetRow {
	return store.BudgetRow{
		GroupID:      groupID,
		GroupName:    groupName,
		CategoryID:   strptr(catID),
		CategoryName: strptr(catName),
		IsSavings:    boolptr(false),
		CategorySort: intptr(1),
		Allocated:    allocated,
		Activity:     activity,
	}
}

func TestAssembleAvailabilityInvariant(t *testing.T) {
	rows := []store.BudgetRow{
		row("g1", "Bills", "c1", "Rent", 50000, -48000),
		row("g1", "Bills", "c2", "Internet", 6000, 0),
		row("g2", "Everyday", "c3", "Groceries", 30000, -41250),
	}

	m := Assemble(2026, 9, rows, store.Funding{})

	require.Len(t, m.Groups, 2)
	for _, g := range m.Groups {
		for _, c := range g.Categories {
			assert.Equal(t, c.Allocated+c.Activity, c.Available, "available invariant for %s", c.Name)
		}
	}

	groceries := m.Groups[1].Categories[0]
	assert.Equal(t, int64(-11250), groceries.Available, "overspent must stay negative, not clamped")
}

func TestAssembleGroupRollups(t *testing.T) {
	rows := []store.BudgetRow{
		row("g1", "Bills", "c1", "Rent", 50000, -48000),
		row("g1", "Bills", "c2", "Internet", 6000, -6500),
	}

	m := Assemble(2026, 9, rows, store.Funding{})

	g := m.Groups[0]
	assert.Equal(t, int64(56000), g.TotalAllocated)
	assert.Equal(t, int64(-54500), g.TotalActivity)
	assert.Equal(t, int64(1500), g.TotalAvailable)
	assert.Equal(t, int64(56000), m.TotalBudgeted)
}

func TestAssembleDefaultsMissingAllocationToZero(t *testing.T) {
	rows := []store.BudgetRow{
		// No allocation row ever written for this category.
		row("g1", "Bills", "c1", "Phone", 0, -2500),
	}

	m := Assemble(2026, 9, rows, store.Funding{})

	c := m.Groups[0].Categories[0]
	assert.Equal(t, int64(0), c.Allocated)
	assert.Equal(t, int64(-2500), c.Available)
}

func TestAssembleEmptyGroup(t *testing.T) {
	rows := []store.BudgetRow{
		{GroupID: "g1", GroupName: "New Group", GroupSortOrder: 4},
	}

	m := Assemble(2026, 9, rows, store.Funding{})

	require.Len(t, m.Groups, 1)
	assert.Empty(t, m.Groups[0].Categories)
	assert.Equal(t, int64(0), m.Groups[0].TotalAllocated)
}

func TestReadyToAssignConservation(t *testing.T) {
	// Total inflow $1,000, zero allocations.
	funding := store.Funding{TotalInflow: 100000}
	m := Assemble(2026, 9, nil, funding)
	assert.Equal(t, int64(100000), m.ReadyToAssign)

	// Allocate 50000 to Rent.
	funding.TotalAllocated = 50000
	m = Assemble(2026, 9, nil, funding)
	assert.Equal(t, int64(50000), m.ReadyToAssign)

	// Allocate a further 60000 to Groceries: over-assigned is valid.
	funding.TotalAllocated = 110000
	m = Assemble(2026, 9, nil, funding)
	assert.Equal(t, int64(-10000), m.ReadyToAssign)

	// Switching the viewed month does not move the figure.
	other := Assemble(2025, 1, nil, funding)
	assert.Equal(t, m.ReadyToAssign, other.ReadyToAssign)
}

func TestReadyToAssignIncludesStartingBalances(t *testing.T) {
	funding := store.Funding{
		TotalStartingBalance: 25000,
		TotalInflow:          100000,
		TotalAllocated:       30000,
	}
	m := Assemble(2026, 9, nil, funding)
	assert.Equal(t, int64(95000), m.ReadyToAssign)
}

package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"budgetd/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{4550, "$45.50"},
		{123456, "$1,234.56"},
		{-123456, "-$1,234.56"},
		{100000000, "$1,000,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCents(tt.cents), "cents=%d", tt.cents)
	}
}

func TestDaysUntilDue(t *testing.T) {
	assert.Equal(t, 0, daysUntilDue(15, 15))
	assert.Equal(t, 10, daysUntilDue(25, 15))
	// Wraps past the end of the month.
	assert.Equal(t, 21, daysUntilDue(5, 15))
}

func promptFixture() *fixture {
	f := newFixture()
	rentID, groceriesID := "cat-rent", "cat-groceries"
	due := 1
	recurrence := "monthly"

	f.budget.rows = []store.BudgetRow{
		{
			GroupID: "g1", GroupName: "Bills",
			CategoryID: &rentID, CategoryName: strPtr("Rent"),
			DueDay: &due, Recurrence: &recurrence,
			Allocated: 120000, Activity: -120000,
		},
		{
			GroupID: "g2", GroupName: "Everyday",
			CategoryID: &groceriesID, CategoryName: strPtr("Groceries"),
			Allocated: 30000, Activity: -41000,
		},
	}
	f.budget.funding = store.Funding{TotalStartingBalance: 100000, TotalInflow: 200000, TotalAllocated: 150000}
	f.accounts.accounts = []store.Account{
		{ID: "acc-1", Name: "Checking", Type: "checking", ComputedBalance: 80000},
	}
	f.transactions.txs = []store.Transaction{
		{ID: "tx-1", Amount: -4550, Date: "2026-09-01", PayeeName: strPtr("Trader Joe's"), CategoryName: strPtr("Groceries")},
	}
	return f
}

func strPtr(s string) *string { return &s }

func TestBuildSystemPrompt(t *testing.T) {
	f := promptFixture()
	snap, err := fetchSnapshot(context.Background(), f.storage, 2026, 9)
	require.NoError(t, err)

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	prompt := buildSystemPrompt(snap, now)

	assert.Contains(t, prompt, "Current budget month: September 2026.")
	assert.Contains(t, prompt, "Ready to Assign: $1,500.00")

	// Category lines carry their ids so tool calls can reference them.
	assert.Contains(t, prompt, "[id: cat-rent]")
	assert.Contains(t, prompt, "[id: acc-1]")

	// Overspent categories are flagged; healthy ones are not.
	assert.Contains(t, prompt, "available -$110.00 OVERSPENT")
	rentLine := prompt[strings.Index(prompt, "Rent"):]
	assert.NotContains(t, rentLine[:strings.Index(rentLine, "\n")], "OVERSPENT")

	// A bill due on day 1 viewed on day 1 is due today.
	assert.Contains(t, prompt, "due day 1 (TODAY)")
	assert.Contains(t, prompt, "Trader Joe's")
}

func TestBuildSystemPromptFlagsOverBudgeting(t *testing.T) {
	f := promptFixture()
	f.budget.funding = store.Funding{TotalInflow: 100000, TotalAllocated: 150000}

	snap, err := fetchSnapshot(context.Background(), f.storage, 2026, 9)
	require.NoError(t, err)
	prompt := buildSystemPrompt(snap, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, prompt, "Ready to Assign: -$500.00 OVER-BUDGETED")
}

func TestBuildSystemPromptEmptyLedger(t *testing.T) {
	f := newFixture()
	snap, err := fetchSnapshot(context.Background(), f.storage, 2026, 9)
	require.NoError(t, err)
	prompt := buildSystemPrompt(snap, time.Now())

	assert.Contains(t, prompt, "(none yet)")
	assert.Contains(t, prompt, "(no categories yet)")
	assert.NotContains(t, prompt, "UPCOMING BILLS")
}

func TestBuildSystemPromptIncludesTrendDigest(t *testing.T) {
	f := promptFixture()
	f.budget.outflows = []store.CategoryOutflow{
		{CategoryID: "cat-groceries", CategoryName: "Groceries", Year: 2026, Month: 7, Outflow: 40000},
		{CategoryID: "cat-groceries", CategoryName: "Groceries", Year: 2026, Month: 8, Outflow: 41000},
	}

	snap, err := fetchSnapshot(context.Background(), f.storage, 2026, 9)
	require.NoError(t, err)
	prompt := buildSystemPrompt(snap, time.Now())

	assert.Contains(t, prompt, "SPENDING TRENDS")
	assert.Contains(t, prompt, "Groceries")
}

package budget

import (
	"testing"

	"budgetd/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	accounts := []store.Account{
		{ComputedBalance: 80000},
		{ComputedBalance: 150000, IsSavingsBucket: true},
		{ComputedBalance: -4200},
	}

	s := Summarize(accounts)
	assert.Equal(t, int64(75800), s.SpendingBalance)
	assert.Equal(t, int64(150000), s.SavingsBalance)
	assert.Equal(t, int64(225800), s.TotalBalance)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, AccountSummary{}, Summarize(nil))
}

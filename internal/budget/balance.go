package budget

import "budgetd/internal/store"

// AccountSummary splits computed balances into spending and savings-bucket
// totals. Savings-bucket accounts exist as normal accounts but are kept out
// of the spending figure.
type AccountSummary struct {
	SpendingBalance int64 `json:"spending_balance"`
	SavingsBalance  int64 `json:"savings_balance"`
	TotalBalance    int64 `json:"total_balance"`
}

// Summarize totals the computed balances the store derived for each account.
// It backs the summary block on the accounts list response.
func Summarize(accounts []store.Account) AccountSummary {
	var s AccountSummary
	for _, a := range accounts {
		s.TotalBalance += a.ComputedBalance
		if a.IsSavingsBucket {
			s.SavingsBalance += a.ComputedBalance
		} else {
			s.SpendingBalance += a.ComputedBalance
		}
	}
	return s
}

package store

import "time"

// All money amounts are integer cents. Positive transaction amounts are
// inflows, negative amounts are outflows.

const (
	AccountTypeChecking   = "checking"
	AccountTypeSavings    = "savings"
	AccountTypeCreditCard = "credit_card"
	AccountTypeCash       = "cash"
)

var AccountTypes = []string{AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard, AccountTypeCash}

var Recurrences = []string{"monthly", "yearly", "once", "bi-monthly", "weekly", "bi-weekly"}

type Account struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Type            string    `db:"type" json:"type"`
	StartingBalance int64     `db:"starting_balance" json:"starting_balance"`
	IsSavingsBucket bool      `db:"is_savings_bucket" json:"is_savings_bucket"`
	SortOrder       int       `db:"sort_order" json:"sort_order"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`

	// Derived from starting_balance plus transaction sums on every read.
	ComputedBalance int64 `db:"computed_balance" json:"computed_balance"`
	ClearedBalance  int64 `db:"cleared_balance" json:"cleared_balance"`
}

type CategoryGroup struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Category struct {
	ID           string    `db:"id" json:"id"`
	GroupID      string    `db:"group_id" json:"group_id"`
	GroupName    *string   `db:"group_name" json:"group_name,omitempty"`
	Name         string    `db:"name" json:"name"`
	IsSavings    bool      `db:"is_savings" json:"is_savings"`
	SortOrder    int       `db:"sort_order" json:"sort_order"`
	DueDay       *int      `db:"due_day" json:"due_day"`
	Recurrence   *string   `db:"recurrence" json:"recurrence"`
	TargetAmount *int64    `db:"target_amount" json:"target_amount"`
	Notes        *string   `db:"notes" json:"notes"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CategoryMonth is the allocation row for one (category, year, month).
// Absence of a row reads as allocated = 0.
type CategoryMonth struct {
	ID         string `db:"id" json:"id"`
	CategoryID string `db:"category_id" json:"category_id"`
	Year       int    `db:"year" json:"year"`
	Month      int    `db:"month" json:"month"`
	Allocated  int64  `db:"allocated" json:"allocated"`
}

type Payee struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Transaction struct {
	ID                string    `db:"id" json:"id"`
	AccountID         string    `db:"account_id" json:"account_id"`
	AccountName       *string   `db:"account_name" json:"account_name,omitempty"`
	CategoryID        *string   `db:"category_id" json:"category_id"`
	CategoryName      *string   `db:"category_name" json:"category_name,omitempty"`
	CategoryGroupName *string   `db:"category_group_name" json:"category_group_name,omitempty"`
	PayeeID           *string   `db:"payee_id" json:"payee_id"`
	PayeeName         *string   `db:"payee_name" json:"payee_name"`
	Amount            int64     `db:"amount" json:"amount"`
	Date              string    `db:"date" json:"date"`
	Memo              *string   `db:"memo" json:"memo"`
	Cleared           bool      `db:"cleared" json:"cleared"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
	Year       *int
	Month      *int
}

// Assignment is one item of a bulk allocation write.
type Assignment struct {
	CategoryID string `json:"category_id"`
	Allocated  int64  `json:"allocated"`
}

// BudgetRow is one flat row of the month outer join: group x category x
// allocation x month activity. CategoryID is nil for groups with no
// categories yet.
type BudgetRow struct {
	GroupID        string  `db:"group_id"`
	GroupName      string  `db:"group_name"`
	GroupSortOrder int     `db:"group_sort"`
	CategoryID     *string `db:"category_id"`
	CategoryName   *string `db:"category_name"`
	IsSavings      *bool   `db:"is_savings"`
	CategorySort   *int    `db:"category_sort"`
	DueDay         *int    `db:"due_day"`
	Recurrence     *string `db:"recurrence"`
	TargetAmount   *int64  `db:"target_amount"`
	Notes          *string `db:"notes"`
	Allocated      int64   `db:"allocated"`
	Activity       int64   `db:"activity"`
}

// Funding holds the all-time totals feeding ready-to-assign.
type Funding struct {
	TotalStartingBalance int64 `db:"total_starting_balance"`
	TotalInflow          int64 `db:"total_inflow"`
	TotalAllocated       int64 `db:"total_allocated"`
}

// CategoryOutflow is one month of spending for one category, used by the
// insights queries. Outflow is positive cents spent.
type CategoryOutflow struct {
	CategoryID   string `db:"category_id" dataframe:"category_id"`
	CategoryName string `db:"category_name" dataframe:"category_name"`
	Year         int    `db:"year" dataframe:"year"`
	Month        int    `db:"month" dataframe:"month"`
	Outflow      int64  `db:"outflow" dataframe:"outflow"`
}

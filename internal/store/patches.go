package store

import (
	"errors"
	"slices"
)

// Patch structs model partial updates. Every field is tri-state:
// absent (keep), set to a value, or set to null (clear) where the column is
// nullable.

type AccountPatch struct {
	Name            Optional[string] `json:"name"`
	Type            Optional[string] `json:"type"`
	StartingBalance Optional[int64]  `json:"starting_balance"`
	IsSavingsBucket Optional[bool]   `json:"is_savings_bucket"`
	SortOrder       Optional[int]    `json:"sort_order"`
}

func (p AccountPatch) Validate() error {
	if p.Name.Set && (!p.Name.Valid || p.Name.Value == "") {
		return errors.New("name cannot be empty")
	}
	if p.Type.Set {
		if !p.Type.Valid || !slices.Contains(AccountTypes, p.Type.Value) {
			return errors.New("type must be one of checking, savings, credit_card, cash")
		}
	}
	if p.StartingBalance.Set && !p.StartingBalance.Valid {
		return errors.New("starting_balance cannot be null")
	}
	if p.IsSavingsBucket.Set && !p.IsSavingsBucket.Valid {
		return errors.New("is_savings_bucket cannot be null")
	}
	if p.SortOrder.Set && !p.SortOrder.Valid {
		return errors.New("sort_order cannot be null")
	}
	return nil
}

type CategoryGroupPatch struct {
	Name      Optional[string] `json:"name"`
	SortOrder Optional[int]    `json:"sort_order"`
}

func (p CategoryGroupPatch) Validate() error {
	if p.Name.Set && (!p.Name.Valid || p.Name.Value == "") {
		return errors.New("name cannot be empty")
	}
	if p.SortOrder.Set && !p.SortOrder.Valid {
		return errors.New("sort_order cannot be null")
	}
	return nil
}

type CategoryPatch struct {
	Name         Optional[string] `json:"name"`
	GroupID      Optional[string] `json:"group_id"`
	IsSavings    Optional[bool]   `json:"is_savings"`
	SortOrder    Optional[int]    `json:"sort_order"`
	DueDay       Optional[int]    `json:"due_day"`
	Recurrence   Optional[string] `json:"recurrence"`
	TargetAmount Optional[int64]  `json:"target_amount"`
	Notes        Optional[string] `json:"notes"`
}

func (p CategoryPatch) Validate() error {
	if p.Name.Set && (!p.Name.Valid || p.Name.Value == "") {
		return errors.New("name cannot be empty")
	}
	if p.GroupID.Set && (!p.GroupID.Valid || p.GroupID.Value == "") {
		return errors.New("group_id cannot be null")
	}
	if p.IsSavings.Set && !p.IsSavings.Valid {
		return errors.New("is_savings cannot be null")
	}
	if p.SortOrder.Set && !p.SortOrder.Valid {
		return errors.New("sort_order cannot be null")
	}
	if p.DueDay.Set && p.DueDay.Valid && (p.DueDay.Value < 1 || p.DueDay.Value > 31) {
		return errors.New("due_day must be between 1 and 31")
	}
	if p.Recurrence.Set && p.Recurrence.Valid && !slices.Contains(Recurrences, p.Recurrence.Value) {
		return errors.New("invalid recurrence")
	}
	return nil
}

type TransactionPatch struct {
	AccountID  Optional[string] `json:"account_id"`
	CategoryID Optional[string] `json:"category_id"`
	PayeeName  Optional[string] `json:"payee_name"`
	Amount     Optional[int64]  `json:"amount"`
	Date       Optional[string] `json:"date"`
	Memo       Optional[string] `json:"memo"`
	Cleared    Optional[bool]   `json:"cleared"`
}

func (p TransactionPatch) Validate() error {
	if p.AccountID.Set && (!p.AccountID.Valid || p.AccountID.Value == "") {
		return errors.New("account_id cannot be null")
	}
	if p.Amount.Set && !p.Amount.Valid {
		return errors.New("amount cannot be null")
	}
	if p.Date.Set {
		if !p.Date.Valid {
			return errors.New("date cannot be null")
		}
		if _, err := ParseDate(p.Date.Value); err != nil {
			return errors.New("date must be YYYY-MM-DD")
		}
	}
	if p.Cleared.Set && !p.Cleared.Valid {
		return errors.New("cleared cannot be null")
	}
	return nil
}

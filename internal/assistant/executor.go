package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"budgetd/internal/budget"
	"budgetd/internal/store"
)

// Executor runs tool calls against the real ledger. It is scoped to the month
// the user is looking at, so assignment tools never need the model to repeat
// the year and month.
type Executor struct {
	store   *store.Storage
	mutator *budget.Mutator
	year    int
	month   int
}

func NewExecutor(s *store.Storage, m *budget.Mutator, year, month int) *Executor {
	return &Executor{store: s, mutator: m, year: year, month: month}
}

// Execute dispatches one tool call and returns the content to feed back to
// the model plus human-readable action lines for everything that mutated
// state. Errors are the caller's to report; they never abort sibling calls.
func (e *Executor) Execute(ctx context.Context, call ToolCall) (string, []string, error) {
	switch call.Name {
	case "assign_to_category":
		return e.assignToCategory(ctx, call.Input)
	case "bulk_assign":
		return e.bulkAssign(ctx, call.Input)
	case "reset_month":
		return e.resetMonth(ctx)
	case "get_transactions":
		return e.getTransactions(ctx, call.Input)
	case "create_transaction":
		return e.createTransaction(ctx, call.Input)
	case "update_transaction":
		return e.updateTransaction(ctx, call.Input)
	case "delete_transaction":
		return e.deleteTransaction(ctx, call.Input)
	case "create_category":
		return e.createCategory(ctx, call.Input)
	case "update_category":
		return e.updateCategory(ctx, call.Input)
	case "delete_category":
		return e.deleteCategory(ctx, call.Input)
	case "create_category_group":
		return e.createCategoryGroup(ctx, call.Input)
	case "delete_category_group":
		return e.deleteCategoryGroup(ctx, call.Input)
	case "create_account":
		return e.createAccount(ctx, call.Input)
	case "update_account":
		return e.updateAccount(ctx, call.Input)
	case "delete_account":
		return e.deleteAccount(ctx, call.Input)
	default:
		return "", nil, fmt.Errorf("unknown tool %q", call.Name)
	}
}

type assignInput struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	AmountCents  int64  `json:"amount_cents"`
}

func (e *Executor) assignToCategory(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in assignInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	cm, err := e.mutator.Assign(ctx, e.year, e.month, in.CategoryID, in.AmountCents)
	if err != nil {
		return "", nil, err
	}
	action := fmt.Sprintf("Assigned %s to %s", FormatCents(in.AmountCents), in.CategoryName)
	return marshalResult(cm), []string{action}, nil
}

func (e *Executor) bulkAssign(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		Assignments []assignInput `json:"assignments"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}

	batch := make([]store.Assignment, 0, len(in.Assignments))
	for _, a := range in.Assignments {
		batch = append(batch, store.Assignment{CategoryID: a.CategoryID, Allocated: a.AmountCents})
	}
	count, err := e.mutator.BulkAssign(ctx, e.year, e.month, batch)
	if err != nil {
		return "", nil, err
	}

	actions := make([]string, 0, len(in.Assignments))
	for _, a := range in.Assignments {
		actions = append(actions, fmt.Sprintf("Assigned %s to %s", FormatCents(a.AmountCents), a.CategoryName))
	}
	return marshalResult(map[string]int{"updated": count}), actions, nil
}

func (e *Executor) resetMonth(ctx context.Context) (string, []string, error) {
	removed, err := e.mutator.ResetMonth(ctx, e.year, e.month)
	if err != nil {
		return "", nil, err
	}
	action := fmt.Sprintf("Reset allocations for %04d-%02d", e.year, e.month)
	return marshalResult(map[string]int64{"removed": removed}), []string{action}, nil
}

func (e *Executor) getTransactions(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		AccountID  *string `json:"account_id"`
		CategoryID *string `json:"category_id"`
		Year       *int    `json:"year"`
		Month      *int    `json:"month"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	txs, err := e.store.Transactions.List(ctx, store.TransactionFilter{
		AccountID:  in.AccountID,
		CategoryID: in.CategoryID,
		Year:       in.Year,
		Month:      in.Month,
	})
	if err != nil {
		return "", nil, err
	}
	// Cap what goes back into the context window.
	if len(txs) > 50 {
		txs = txs[:50]
	}
	return marshalResult(txs), nil, nil
}

func (e *Executor) createTransaction(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		AccountID   string  `json:"account_id"`
		CategoryID  *string `json:"category_id"`
		PayeeName   *string `json:"payee_name"`
		AmountCents int64   `json:"amount_cents"`
		Date        string  `json:"date"`
		Memo        *string `json:"memo"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	if _, err := store.ParseDate(in.Date); err != nil {
		return "", nil, fmt.Errorf("date must be YYYY-MM-DD")
	}

	tx := &store.Transaction{
		AccountID:  in.AccountID,
		CategoryID: in.CategoryID,
		PayeeName:  in.PayeeName,
		Amount:     in.AmountCents,
		Date:       in.Date,
		Memo:       in.Memo,
	}
	if err := e.store.Transactions.Create(ctx, tx); err != nil {
		return "", nil, err
	}

	who := "transaction"
	if in.PayeeName != nil && strings.TrimSpace(*in.PayeeName) != "" {
		who = *in.PayeeName
	}
	action := fmt.Sprintf("Recorded transaction: %s %s on %s", who, FormatCents(in.AmountCents), in.Date)
	return marshalResult(tx), []string{action}, nil
}

func (e *Executor) updateTransaction(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		TransactionID string                 `json:"transaction_id"`
		AccountID     store.Optional[string] `json:"account_id"`
		CategoryID    store.Optional[string] `json:"category_id"`
		PayeeName     store.Optional[string] `json:"payee_name"`
		AmountCents   store.Optional[int64]  `json:"amount_cents"`
		Date          store.Optional[string] `json:"date"`
		Memo          store.Optional[string] `json:"memo"`
		Cleared       store.Optional[bool]   `json:"cleared"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	patch := store.TransactionPatch{
		AccountID:  in.AccountID,
		CategoryID: in.CategoryID,
		PayeeName:  in.PayeeName,
		Amount:     in.AmountCents,
		Date:       in.Date,
		Memo:       in.Memo,
		Cleared:    in.Cleared,
	}
	if err := patch.Validate(); err != nil {
		return "", nil, err
	}
	tx, err := e.store.Transactions.Update(ctx, in.TransactionID, patch)
	if err != nil {
		return "", nil, err
	}
	return marshalResult(tx), []string{"Updated transaction"}, nil
}

func (e *Executor) deleteTransaction(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	if err := e.store.Transactions.Delete(ctx, in.TransactionID); err != nil {
		return "", nil, err
	}
	return marshalResult(map[string]string{"deleted": in.TransactionID}), []string{"Deleted transaction"}, nil
}

func (e *Executor) createCategory(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		GroupID      string  `json:"group_id"`
		Name         string  `json:"name"`
		IsSavings    bool    `json:"is_savings"`
		DueDay       *int    `json:"due_day"`
		Recurrence   *string `json:"recurrence"`
		TargetAmount *int64  `json:"target_amount"`
		Notes        *string `json:"notes"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	cat := &store.Category{
		GroupID:      in.GroupID,
		Name:         in.Name,
		IsSavings:    in.IsSavings,
		DueDay:       in.DueDay,
		Recurrence:   in.Recurrence,
		TargetAmount: in.TargetAmount,
		Notes:        in.Notes,
	}
	if err := e.store.Categories.Create(ctx, cat); err != nil {
		return "", nil, err
	}
	return marshalResult(cat), []string{fmt.Sprintf("Created category %s", cat.Name)}, nil
}

func (e *Executor) updateCategory(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		CategoryID string `json:"category_id"`
		store.CategoryPatch
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	if err := in.CategoryPatch.Validate(); err != nil {
		return "", nil, err
	}
	cat, err := e.store.Categories.Update(ctx, in.CategoryID, in.CategoryPatch)
	if err != nil {
		return "", nil, err
	}
	return marshalResult(cat), []string{fmt.Sprintf("Updated category %s", cat.Name)}, nil
}

func (e *Executor) deleteCategory(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		CategoryID string `json:"category_id"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	cat, err := e.store.Categories.Get(ctx, in.CategoryID)
	if err != nil {
		return "", nil, err
	}
	if err := e.store.Categories.Delete(ctx, in.CategoryID); err != nil {
		return "", nil, err
	}
	return marshalResult(map[string]string{"deleted": in.CategoryID}), []string{fmt.Sprintf("Deleted category %s", cat.Name)}, nil
}

func (e *Executor) createCategoryGroup(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	group := &store.CategoryGroup{Name: in.Name}
	if err := e.store.CategoryGroups.Create(ctx, group); err != nil {
		return "", nil, err
	}
	return marshalResult(group), []string{fmt.Sprintf("Created group %s", group.Name)}, nil
}

func (e *Executor) deleteCategoryGroup(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		GroupID string `json:"group_id"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	if err := e.store.CategoryGroups.Delete(ctx, in.GroupID); err != nil {
		return "", nil, err
	}
	return marshalResult(map[string]string{"deleted": in.GroupID}), []string{"Deleted group"}, nil
}

func (e *Executor) createAccount(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		Name                 string `json:"name"`
		Type                 string `json:"type"`
		StartingBalanceCents int64  `json:"starting_balance_cents"`
		IsSavingsBucket      bool   `json:"is_savings_bucket"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	account := &store.Account{
		Name:            in.Name,
		Type:            in.Type,
		StartingBalance: in.StartingBalanceCents,
		IsSavingsBucket: in.IsSavingsBucket,
	}
	if err := e.store.Accounts.Create(ctx, account); err != nil {
		return "", nil, err
	}
	return marshalResult(account), []string{fmt.Sprintf("Created account %s", account.Name)}, nil
}

func (e *Executor) updateAccount(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		AccountID            string                 `json:"account_id"`
		Name                 store.Optional[string] `json:"name"`
		Type                 store.Optional[string] `json:"type"`
		StartingBalanceCents store.Optional[int64]  `json:"starting_balance_cents"`
		IsSavingsBucket      store.Optional[bool]   `json:"is_savings_bucket"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	patch := store.AccountPatch{
		Name:            in.Name,
		Type:            in.Type,
		StartingBalance: in.StartingBalanceCents,
		IsSavingsBucket: in.IsSavingsBucket,
	}
	if err := patch.Validate(); err != nil {
		return "", nil, err
	}
	account, err := e.store.Accounts.Update(ctx, in.AccountID, patch)
	if err != nil {
		return "", nil, err
	}
	return marshalResult(account), []string{fmt.Sprintf("Updated account %s", account.Name)}, nil
}

func (e *Executor) deleteAccount(ctx context.Context, raw json.RawMessage) (string, []string, error) {
	var in struct {
		AccountID string `json:"account_id"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return "", nil, fmt.Errorf("bad input: %w", err)
	}
	account, err := e.store.Accounts.Get(ctx, in.AccountID)
	if err != nil {
		return "", nil, err
	}
	if err := e.store.Accounts.Delete(ctx, in.AccountID); err != nil {
		return "", nil, err
	}
	return marshalResult(map[string]string{"deleted": in.AccountID}), []string{fmt.Sprintf("Deleted account %s", account.Name)}, nil
}

func marshalResult(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("{\"error\":%q}", err.Error())
	}
	return string(b)
}

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"budgetd/internal/budget"
	"budgetd/internal/logger"
	"budgetd/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel replays scripted replies and records the turns it was shown. Once
// the script runs out it keeps returning the last reply.
type fakeModel struct {
	replies []*Reply
	err     error
	calls   int
	seen    [][]Turn
}

func (f *fakeModel) Converse(_ context.Context, _ string, turns []Turn, _ []ToolDef) (*Reply, error) {
	f.seen = append(f.seen, turns)
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	i := f.calls - 1
	if i >= len(f.replies) {
		i = len(f.replies) - 1
	}
	return f.replies[i], nil
}

type fakeAccounts struct {
	accounts []store.Account
	deleted  []string
}

func (f *fakeAccounts) List(context.Context) ([]store.Account, error) { return f.accounts, nil }

func (f *fakeAccounts) Get(_ context.Context, id string) (*store.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			return &f.accounts[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAccounts) Create(_ context.Context, a *store.Account) error {
	a.ID = uuid.NewString()
	a.ComputedBalance = a.StartingBalance
	a.ClearedBalance = a.StartingBalance
	f.accounts = append(f.accounts, *a)
	return nil
}

func (f *fakeAccounts) Update(_ context.Context, id string, p store.AccountPatch) (*store.Account, error) {
	a, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if p.Name.Set {
		a.Name = p.Name.Value
	}
	return a, nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	if _, err := f.Get(context.Background(), id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCategoryGroups struct {
	groups  []store.CategoryGroup
	deleted []string
}

func (f *fakeCategoryGroups) List(context.Context) ([]store.CategoryGroup, error) {
	return f.groups, nil
}

func (f *fakeCategoryGroups) Create(_ context.Context, g *store.CategoryGroup) error {
	g.ID = uuid.NewString()
	f.groups = append(f.groups, *g)
	return nil
}

func (f *fakeCategoryGroups) Update(_ context.Context, id string, p store.CategoryGroupPatch) (*store.CategoryGroup, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			if p.Name.Set {
				f.groups[i].Name = p.Name.Value
			}
			return &f.groups[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategoryGroups) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCategories struct {
	categories []store.Category
	deleted    []string
}

func (f *fakeCategories) List(context.Context) ([]store.Category, error) { return f.categories, nil }

func (f *fakeCategories) Get(_ context.Context, id string) (*store.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategories) Create(_ context.Context, c *store.Category) error {
	c.ID = uuid.NewString()
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeCategories) Update(_ context.Context, id string, p store.CategoryPatch) (*store.Category, error) {
	c, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if p.Name.Set {
		c.Name = p.Name.Value
	}
	return c, nil
}

func (f *fakeCategories) Delete(_ context.Context, id string) error {
	if _, err := f.Get(context.Background(), id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCategoryMonths struct {
	allocations map[string]int64
	resets      int
}

func (f *fakeCategoryMonths) Upsert(_ context.Context, categoryID string, year, month int, allocated int64) (*store.CategoryMonth, error) {
	if f.allocations == nil {
		f.allocations = map[string]int64{}
	}
	f.allocations[categoryID] = allocated
	return &store.CategoryMonth{CategoryID: categoryID, Year: year, Month: month, Allocated: allocated}, nil
}

func (f *fakeCategoryMonths) BulkUpsert(ctx context.Context, year, month int, assignments []store.Assignment) (int, error) {
	for _, a := range assignments {
		if _, err := f.Upsert(ctx, a.CategoryID, year, month, a.Allocated); err != nil {
			return 0, err
		}
	}
	return len(assignments), nil
}

func (f *fakeCategoryMonths) ResetMonth(context.Context, int, int) (int64, error) {
	f.resets++
	n := int64(len(f.allocations))
	f.allocations = map[string]int64{}
	return n, nil
}

func (f *fakeCategoryMonths) MonthAllocations(context.Context, int, int) (map[string]int64, error) {
	return f.allocations, nil
}

type fakeTransactions struct {
	txs     []store.Transaction
	deleted []string
}

func (f *fakeTransactions) List(context.Context, store.TransactionFilter) ([]store.Transaction, error) {
	return f.txs, nil
}

func (f *fakeTransactions) Get(_ context.Context, id string) (*store.Transaction, error) {
	for i := range f.txs {
		if f.txs[i].ID == id {
			return &f.txs[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeTransactions) Create(_ context.Context, t *store.Transaction) error {
	t.ID = uuid.NewString()
	f.txs = append(f.txs, *t)
	return nil
}

func (f *fakeTransactions) Update(_ context.Context, id string, p store.TransactionPatch) (*store.Transaction, error) {
	t, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if p.Amount.Set {
		t.Amount = p.Amount.Value
	}
	return t, nil
}

func (f *fakeTransactions) Delete(_ context.Context, id string) error {
	if _, err := f.Get(context.Background(), id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePayees struct{}

func (fakePayees) List(context.Context) ([]store.Payee, error) { return nil, nil }

type fakeBudget struct {
	rows     []store.BudgetRow
	funding  store.Funding
	outflows []store.CategoryOutflow
}

func (f *fakeBudget) MonthRows(context.Context, int, int) ([]store.BudgetRow, error) {
	return f.rows, nil
}

func (f *fakeBudget) Funding(context.Context) (*store.Funding, error) {
	funding := f.funding
	return &funding, nil
}

func (f *fakeBudget) MonthlyCategoryOutflows(context.Context, int) ([]store.CategoryOutflow, error) {
	return f.outflows, nil
}

type fixture struct {
	storage        *store.Storage
	accounts       *fakeAccounts
	groups         *fakeCategoryGroups
	categories     *fakeCategories
	categoryMonths *fakeCategoryMonths
	transactions   *fakeTransactions
	budget         *fakeBudget
}

func newFixture() *fixture {
	f := &fixture{
		accounts:       &fakeAccounts{},
		groups:         &fakeCategoryGroups{},
		categories:     &fakeCategories{},
		categoryMonths: &fakeCategoryMonths{},
		transactions:   &fakeTransactions{},
		budget:         &fakeBudget{},
	}
	f.storage = &store.Storage{
		Accounts:       f.accounts,
		CategoryGroups: f.groups,
		Categories:     f.categories,
		CategoryMonths: f.categoryMonths,
		Transactions:   f.transactions,
		Payees:         fakePayees{},
		Budget:         f.budget,
	}
	return f
}

func (f *fixture) assistant(model ModelClient) *Assistant {
	return New(model, f.storage, budget.NewMutator(f.storage), logger.New(logger.LevelError))
}

func userSays(text string) ChatRequest {
	return ChatRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: text}},
		Year:     2026,
		Month:    9,
	}
}

func toolReply(text string, calls ...ToolCall) *Reply {
	return &Reply{Text: text, ToolCalls: calls, StopReason: StopReasonToolUse}
}

func textReply(text string) *Reply {
	return &Reply{Text: text, StopReason: StopReasonEndTurn}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestChatRejectsBadMonth(t *testing.T) {
	f := newFixture()
	a := f.assistant(&fakeModel{replies: []*Reply{textReply("hi")}})

	_, err := a.Chat(context.Background(), ChatRequest{
		Messages: []ChatMessage{{Role: RoleUser, Content: "hello"}},
		Year:     2026,
		Month:    13,
	})
	assert.ErrorIs(t, err, budget.ErrValidation)

	_, err = a.Chat(context.Background(), ChatRequest{Year: 2026, Month: 9})
	assert.ErrorIs(t, err, budget.ErrValidation, "empty messages")
}

func TestChatPlainAnswer(t *testing.T) {
	f := newFixture()
	model := &fakeModel{replies: []*Reply{textReply("You have $120.00 left for groceries.")}}

	resp, err := f.assistant(model).Chat(context.Background(), userSays("how are my groceries doing?"))
	require.NoError(t, err)

	assert.Equal(t, "You have $120.00 left for groceries.", resp.Content)
	assert.NotNil(t, resp.ActionsTaken)
	assert.Empty(t, resp.ActionsTaken)
	assert.False(t, resp.RefreshBudget)
	assert.False(t, resp.RefreshTransactions)
	assert.False(t, resp.RefreshAccounts)
	assert.Equal(t, 1, model.calls)
}

func TestChatToolLoopAssigns(t *testing.T) {
	f := newFixture()
	catID := uuid.NewString()

	model := &fakeModel{replies: []*Reply{
		toolReply("", ToolCall{
			ID:   "toolu_1",
			Name: "assign_to_category",
			Input: mustJSON(t, map[string]any{
				"category_id": catID, "category_name": "Rent", "amount_cents": 50000,
			}),
		}),
		textReply("Done! Assigned $500.00 to Rent."),
	}}

	resp, err := f.assistant(model).Chat(context.Background(), userSays("put $500 in rent"))
	require.NoError(t, err)

	assert.Equal(t, "Done! Assigned $500.00 to Rent.", resp.Content)
	assert.Equal(t, []string{"Assigned $500.00 to Rent"}, resp.ActionsTaken)
	assert.True(t, resp.RefreshBudget)
	assert.False(t, resp.RefreshTransactions)
	assert.Equal(t, int64(50000), f.categoryMonths.allocations[catID])

	// The second round must see the assistant turn plus a matching tool result.
	require.Equal(t, 2, model.calls)
	secondTurns := model.seen[1]
	require.Len(t, secondTurns, 3)
	assert.Equal(t, RoleAssistant, secondTurns[1].Role)
	require.Len(t, secondTurns[2].ToolResults, 1)
	result := secondTurns[2].ToolResults[0]
	assert.Equal(t, "toolu_1", result.ToolUseID)
	assert.False(t, result.IsError)
}

func TestChatToolErrorIsolation(t *testing.T) {
	f := newFixture()
	catID := uuid.NewString()

	model := &fakeModel{replies: []*Reply{
		toolReply("",
			ToolCall{ID: "toolu_bad", Name: "delete_category", Input: mustJSON(t, map[string]any{"category_id": uuid.NewString()})},
			ToolCall{ID: "toolu_ok", Name: "assign_to_category", Input: mustJSON(t, map[string]any{
				"category_id": catID, "category_name": "Gas", "amount_cents": 8000,
			})},
		),
		textReply("The category was already gone, but I funded Gas."),
	}}

	resp, err := f.assistant(model).Chat(context.Background(), userSays("clean up my budget"))
	require.NoError(t, err, "one failing tool must not fail the chat")

	assert.Equal(t, []string{"Assigned $80.00 to Gas"}, resp.ActionsTaken)
	assert.Equal(t, int64(8000), f.categoryMonths.allocations[catID])

	results := model.seen[1][2].ToolResults
	require.Len(t, results, 2)
	assert.True(t, results[0].IsError)
	assert.Equal(t, "toolu_bad", results[0].ToolUseID)
	assert.Contains(t, results[0].Content, "not found")
	assert.False(t, results[1].IsError)
}

func TestChatStopsAtRoundCeiling(t *testing.T) {
	f := newFixture()
	catID := uuid.NewString()

	// A model that never stops asking for tools.
	model := &fakeModel{replies: []*Reply{
		toolReply("Working on it...", ToolCall{
			ID:   "toolu_loop",
			Name: "assign_to_category",
			Input: mustJSON(t, map[string]any{
				"category_id": catID, "category_name": "Rent", "amount_cents": 100,
			}),
		}),
	}}

	resp, err := f.assistant(model).Chat(context.Background(), userSays("loop forever"))
	require.NoError(t, err)

	assert.Equal(t, maxRounds, model.calls)
	assert.Equal(t, "Working on it...", resp.Content, "accumulated text still surfaces")
	assert.Len(t, resp.ActionsTaken, maxRounds)
}

func TestChatPropagatesModelError(t *testing.T) {
	f := newFixture()
	model := &fakeModel{err: errors.New("overloaded")}

	_, err := f.assistant(model).Chat(context.Background(), userSays("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestClassifyRefresh(t *testing.T) {
	tests := []struct {
		action   string
		budget   bool
		txs      bool
		accounts bool
	}{
		{"Assigned $1.00 to Rent", true, false, false},
		{"Reset allocations for 2026-09", true, false, false},
		{"Recorded transaction: Cafe -$4.50 on 2026-09-01", true, true, true},
		{"Deleted category Old Stuff", true, true, false},
		{"Created account Checking", false, false, true},
		{"Updated account Checking", true, false, true},
		{"Deleted account Checking", true, true, true},
		{"Created group Subscriptions", true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			b, x, a := classifyRefresh([]string{tt.action})
			assert.Equal(t, tt.budget, b, "budget")
			assert.Equal(t, tt.txs, x, "transactions")
			assert.Equal(t, tt.accounts, a, "accounts")
		})
	}
}

func TestCatalogCoversEveryExecutorTool(t *testing.T) {
	f := newFixture()
	exec := NewExecutor(f.storage, budget.NewMutator(f.storage), 2026, 9)

	for _, tool := range Catalog() {
		_, _, err := exec.Execute(context.Background(), ToolCall{ID: "t", Name: tool.Name, Input: json.RawMessage(`{}`)})
		if err != nil {
			assert.NotContains(t, err.Error(), "unknown tool", fmt.Sprintf("tool %s must be dispatchable", tool.Name))
		}
	}
}

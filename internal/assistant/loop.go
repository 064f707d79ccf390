package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgetd/internal/budget"
	"budgetd/internal/logger"
	"budgetd/internal/store"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	StopReasonToolUse = "tool_use"
	StopReasonEndTurn = "end_turn"

	// maxRounds bounds the tool loop so a confused model cannot spin forever.
	maxRounds = 8
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Year     int           `json:"year"`
	Month    int           `json:"month"`
}

// ChatResponse tells the caller what was said, what changed, and which views
// are now stale.
type ChatResponse struct {
	Content             string   `json:"content"`
	ActionsTaken        []string `json:"actions_taken"`
	RefreshBudget       bool     `json:"refresh_budget"`
	RefreshTransactions bool     `json:"refresh_transactions"`
	RefreshAccounts     bool     `json:"refresh_accounts"`
}

// Assistant owns the agentic chat loop: snapshot, converse, execute tools,
// feed results back, repeat until the model stops asking for tools.
type Assistant struct {
	client  ModelClient
	store   *store.Storage
	mutator *budget.Mutator
	log     *logger.Logger
}

func New(client ModelClient, s *store.Storage, m *budget.Mutator, log *logger.Logger) *Assistant {
	return &Assistant{client: client, store: s, mutator: m, log: log}
}

// Chat runs one request through the loop. A tool call failing is reported to
// the model and the conversation continues; only snapshot and transport
// failures abort the request.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := budget.ValidateMonth(req.Year, req.Month); err != nil {
		return nil, err
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages must not be empty", budget.ErrValidation)
	}
	for i, m := range req.Messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return nil, fmt.Errorf("%w: message %d has invalid role %q", budget.ErrValidation, i, m.Role)
		}
	}

	snap, err := fetchSnapshot(ctx, a.store, req.Year, req.Month)
	if err != nil {
		return nil, err
	}
	system := buildSystemPrompt(snap, time.Now())

	turns := make([]Turn, 0, len(req.Messages))
	for _, m := range req.Messages {
		turns = append(turns, Turn{Role: m.Role, Text: m.Content})
	}

	exec := NewExecutor(a.store, a.mutator, req.Year, req.Month)
	catalog := Catalog()
	actions := []string{}
	finalText := ""

	for round := 1; round <= maxRounds; round++ {
		reply, err := a.client.Converse(ctx, system, turns, catalog)
		if err != nil {
			return nil, fmt.Errorf("model round %d: %w", round, err)
		}
		if reply.Text != "" {
			finalText = reply.Text
		}
		if reply.StopReason != StopReasonToolUse || len(reply.ToolCalls) == 0 {
			break
		}

		results := make([]ToolResult, 0, len(reply.ToolCalls))
		for _, call := range reply.ToolCalls {
			content, acts, err := exec.Execute(ctx, call)
			if err != nil {
				a.log.Warn("assistant", "tool %s failed: %v", call.Name, err)
				results = append(results, ToolResult{ToolUseID: call.ID, Content: err.Error(), IsError: true})
				continue
			}
			actions = append(actions, acts...)
			results = append(results, ToolResult{ToolUseID: call.ID, Content: content})
		}

		turns = append(turns,
			Turn{Role: RoleAssistant, Text: reply.Text, ToolCalls: reply.ToolCalls},
			Turn{Role: RoleUser, ToolResults: results},
		)
	}

	resp := &ChatResponse{Content: finalText, ActionsTaken: actions}
	resp.RefreshBudget, resp.RefreshTransactions, resp.RefreshAccounts = classifyRefresh(actions)
	return resp, nil
}

// classifyRefresh maps action lines onto the views they invalidate. Transaction
// changes also touch budget activity and account balances; account changes can
// move ready-to-assign through the starting balance.
func classifyRefresh(actions []string) (budgetStale, txStale, accountsStale bool) {
	for _, a := range actions {
		switch {
		case strings.HasPrefix(a, "Assigned"), strings.HasPrefix(a, "Reset allocations"),
			strings.HasPrefix(a, "Created category"), strings.HasPrefix(a, "Updated category"),
			strings.HasPrefix(a, "Created group"), strings.HasPrefix(a, "Deleted group"):
			budgetStale = true
		case strings.HasPrefix(a, "Deleted category"):
			budgetStale = true
			txStale = true
		case strings.HasPrefix(a, "Recorded transaction"), strings.HasPrefix(a, "Updated transaction"),
			strings.HasPrefix(a, "Deleted transaction"):
			txStale = true
			accountsStale = true
			budgetStale = true
		case strings.HasPrefix(a, "Created account"):
			accountsStale = true
		case strings.HasPrefix(a, "Updated account"):
			accountsStale = true
			budgetStale = true
		case strings.HasPrefix(a, "Deleted account"):
			accountsStale = true
			txStale = true
			budgetStale = true
		}
	}
	return budgetStale, txStale, accountsStale
}

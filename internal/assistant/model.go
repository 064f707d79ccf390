// Package assistant runs the budget chat loop: a hosted reasoning model reads
// a rendered snapshot of the ledger and mutates it through the same store and
// mutator primitives the HTTP handlers use.
package assistant

import (
	"context"
	"encoding/json"
)

// ToolDef describes one callable operation in the catalog.
type ToolDef struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult is fed back to the model after executing a call. IsError marks a
// failed call without aborting its siblings or the loop.
type ToolResult struct {
	ToolUseID string
	Content   string
	IsError   bool
}

// Turn is one message in the running conversation, in either direction.
type Turn struct {
	Role        string // "user" or "assistant"
	Text        string
	ToolCalls   []ToolCall   // assistant turns only
	ToolResults []ToolResult // user turns only
}

// Reply is the model's answer to one round trip.
type Reply struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
}

// ModelClient is the narrow contract with the reasoning backend: prompt and
// tools in, text or tool calls out. Its internals are not this package's
// business.
type ModelClient interface {
	Converse(ctx context.Context, system string, turns []Turn, tools []ToolDef) (*Reply, error)
}

package assistant

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

// Catalog lists every operation the model may invoke. Each tool maps onto one
// store or mutator call; the executor owns the dispatch.
func Catalog() []ToolDef {
	return []ToolDef{
		{
			Name:        "assign_to_category",
			Description: "Assign money to a budget category for the current month. The amount replaces the existing allocation, it is not added to it.",
			Properties: map[string]any{
				"category_id":   prop("string", "The category's id from the budget context"),
				"category_name": prop("string", "The category's display name, used to confirm the action"),
				"amount_cents":  prop("integer", "New allocated amount in cents, e.g. 50000 for $500.00"),
			},
			Required: []string{"category_id", "category_name", "amount_cents"},
		},
		{
			Name:        "bulk_assign",
			Description: "Assign money to several categories at once for the current month. Use this instead of repeated assign_to_category calls when distributing funds.",
			Properties: map[string]any{
				"assignments": map[string]any{
					"type":        "array",
					"description": "One entry per category to fund",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"category_id":   prop("string", "The category's id"),
							"category_name": prop("string", "The category's display name"),
							"amount_cents":  prop("integer", "New allocated amount in cents"),
						},
						"required": []string{"category_id", "category_name", "amount_cents"},
					},
				},
			},
			Required: []string{"assignments"},
		},
		{
			Name:        "reset_month",
			Description: "Remove every allocation for the current month, returning all assigned money to Ready to Assign. Only use when the user explicitly asks to start over.",
			Properties:  map[string]any{},
		},
		{
			Name:        "get_transactions",
			Description: "Look up transactions, optionally filtered by account, category, or a specific month. Use this to answer questions about past spending.",
			Properties: map[string]any{
				"account_id":  prop("string", "Restrict to one account"),
				"category_id": prop("string", "Restrict to one category"),
				"year":        prop("integer", "Restrict to a month: four-digit year"),
				"month":       prop("integer", "Restrict to a month: 1-12, requires year"),
			},
		},
		{
			Name:        "create_transaction",
			Description: "Record a transaction. Negative amounts are spending, positive amounts are income.",
			Properties: map[string]any{
				"account_id":   prop("string", "Account the money moved through"),
				"category_id":  prop("string", "Budget category; omit for income or uncategorized activity"),
				"payee_name":   prop("string", "Who was paid or who paid, e.g. 'Trader Joe's'"),
				"amount_cents": prop("integer", "Amount in cents; negative for outflow"),
				"date":         prop("string", "Transaction date as YYYY-MM-DD"),
				"memo":         prop("string", "Optional note"),
			},
			Required: []string{"account_id", "amount_cents", "date"},
		},
		{
			Name:        "update_transaction",
			Description: "Change fields on an existing transaction. Only include the fields being changed.",
			Properties: map[string]any{
				"transaction_id": prop("string", "Id of the transaction to change"),
				"account_id":     prop("string", "Move to a different account"),
				"category_id":    prop("string", "Recategorize; null clears the category"),
				"payee_name":     prop("string", "Rename the payee; empty clears it"),
				"amount_cents":   prop("integer", "New amount in cents"),
				"date":           prop("string", "New date as YYYY-MM-DD"),
				"memo":           prop("string", "New note"),
				"cleared":        prop("boolean", "Whether the transaction has cleared the bank"),
			},
			Required: []string{"transaction_id"},
		},
		{
			Name:        "delete_transaction",
			Description: "Delete a transaction permanently.",
			Properties: map[string]any{
				"transaction_id": prop("string", "Id of the transaction to delete"),
			},
			Required: []string{"transaction_id"},
		},
		{
			Name:        "create_category",
			Description: "Create a budget category inside an existing group.",
			Properties: map[string]any{
				"group_id":      prop("string", "Id of the group the category belongs to"),
				"name":          prop("string", "Category name"),
				"is_savings":    prop("boolean", "True for savings goals rather than spending envelopes"),
				"due_day":       prop("integer", "Day of month a bill is due, 1-31"),
				"recurrence":    prop("string", "Bill cadence: monthly, yearly, or weekly"),
				"target_amount": prop("integer", "Monthly funding target in cents"),
				"notes":         prop("string", "Free-form notes"),
			},
			Required: []string{"group_id", "name"},
		},
		{
			Name:        "update_category",
			Description: "Change fields on an existing category. Only include the fields being changed.",
			Properties: map[string]any{
				"category_id":   prop("string", "Id of the category to change"),
				"name":          prop("string", "New name"),
				"is_savings":    prop("boolean", "New savings flag"),
				"due_day":       prop("integer", "New due day, 1-31; null clears it"),
				"recurrence":    prop("string", "New cadence; null clears it"),
				"target_amount": prop("integer", "New target in cents; null clears it"),
				"notes":         prop("string", "New notes; null clears them"),
			},
			Required: []string{"category_id"},
		},
		{
			Name:        "delete_category",
			Description: "Delete a category. Its transactions survive but become uncategorized, and its allocations are removed.",
			Properties: map[string]any{
				"category_id": prop("string", "Id of the category to delete"),
			},
			Required: []string{"category_id"},
		},
		{
			Name:        "create_category_group",
			Description: "Create a new category group, e.g. 'Subscriptions'.",
			Properties: map[string]any{
				"name": prop("string", "Group name"),
			},
			Required: []string{"name"},
		},
		{
			Name:        "delete_category_group",
			Description: "Delete a category group and every category inside it. Confirm with the user before calling this.",
			Properties: map[string]any{
				"group_id": prop("string", "Id of the group to delete"),
			},
			Required: []string{"group_id"},
		},
		{
			Name:        "create_account",
			Description: "Create a tracked account such as a checking account or credit card.",
			Properties: map[string]any{
				"name":                   prop("string", "Account name"),
				"type":                   prop("string", "One of: checking, savings, credit_card, cash"),
				"starting_balance_cents": prop("integer", "Balance at the moment tracking starts, in cents"),
				"is_savings_bucket":      prop("boolean", "True if this account holds savings rather than spending money"),
			},
			Required: []string{"name", "type"},
		},
		{
			Name:        "update_account",
			Description: "Change fields on an existing account. Only include the fields being changed.",
			Properties: map[string]any{
				"account_id":             prop("string", "Id of the account to change"),
				"name":                   prop("string", "New name"),
				"type":                   prop("string", "New type: checking, savings, credit_card, cash"),
				"starting_balance_cents": prop("integer", "Corrected starting balance in cents"),
				"is_savings_bucket":      prop("boolean", "New savings flag"),
			},
			Required: []string{"account_id"},
		},
		{
			Name:        "delete_account",
			Description: "Delete an account and every transaction in it. Confirm with the user before calling this.",
			Properties: map[string]any{
				"account_id": prop("string", "Id of the account to delete"),
			},
			Required: []string{"account_id"},
		},
	}
}

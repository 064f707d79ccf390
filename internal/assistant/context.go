package assistant

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"budgetd/internal/budget"
	"budgetd/internal/insights"
	"budgetd/internal/store"
)

const (
	recentTransactionLimit = 20
	insightsWindowMonths   = 6
)

// snapshot is everything the model sees before the conversation starts.
type snapshot struct {
	month    *budget.Month
	accounts []store.Account
	recent   []store.Transaction
	digest   string
}

func fetchSnapshot(ctx context.Context, s *store.Storage, year, month int) (*snapshot, error) {
	rows, err := s.Budget.MonthRows(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("budget rows: %w", err)
	}
	funding, err := s.Budget.Funding(ctx)
	if err != nil {
		return nil, fmt.Errorf("funding: %w", err)
	}
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}
	recent, err := s.Transactions.List(ctx, store.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	digest := ""
	if outflows, err := s.Budget.MonthlyCategoryOutflows(ctx, insightsWindowMonths); err == nil {
		if report, err := insights.Compute(outflows, insightsWindowMonths); err == nil {
			digest = insights.Summary(report, 3)
		}
	}

	return &snapshot{
		month:    budget.Assemble(year, month, rows, *funding),
		accounts: accounts,
		recent:   recent,
		digest:   digest,
	}, nil
}

// buildSystemPrompt renders the ledger into the model's system prompt. Every
// category line carries its id so tool calls can reference it directly.
func buildSystemPrompt(snap *snapshot, now time.Time) string {
	monthName := time.Date(snap.month.Year, time.Month(snap.month.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")

	var budgetText strings.Builder
	type bill struct {
		line      budget.CategoryLine
		daysUntil int
	}
	var bills []bill
	todayDay := now.Day()

	for _, g := range snap.month.Groups {
		fmt.Fprintf(&budgetText, "\n%s:\n", g.Name)
		for _, c := range g.Categories {
			due := ""
			if c.DueDay != nil {
				due = fmt.Sprintf(" [due: %d", *c.DueDay)
				if c.Recurrence != nil {
					due += ", " + *c.Recurrence
				}
				due += "]"
				bills = append(bills, bill{line: c, daysUntil: daysUntilDue(*c.DueDay, todayDay)})
			}
			goal := ""
			if c.TargetAmount != nil {
				goal = fmt.Sprintf(" [goal: %s]", FormatCents(*c.TargetAmount))
			}
			status := ""
			if c.Available < 0 {
				status = " OVERSPENT"
			}
			fmt.Fprintf(&budgetText, "  - %s%s%s: assigned %s, activity %s, available %s%s  [id: %s]\n",
				c.Name, due, goal, FormatCents(c.Allocated), FormatCents(c.Activity), FormatCents(c.Available), status, c.ID)
		}
	}

	sort.Slice(bills, func(i, j int) bool { return bills[i].daysUntil < bills[j].daysUntil })
	var billsText strings.Builder
	for _, b := range bills {
		when := fmt.Sprintf("in %d days", b.daysUntil)
		if b.daysUntil == 0 {
			when = "TODAY"
		}
		fmt.Fprintf(&billsText, "  - %s: due day %d (%s), assigned %s, available %s\n",
			b.line.Name, *b.line.DueDay, when, FormatCents(b.line.Allocated), FormatCents(b.line.Available))
	}

	var accountText strings.Builder
	for _, a := range snap.accounts {
		fmt.Fprintf(&accountText, "  - %s (%s): %s  [id: %s]\n", a.Name, a.Type, FormatCents(a.ComputedBalance), a.ID)
	}

	var txText strings.Builder
	for _, t := range snap.recent {
		payee := "No payee"
		if t.PayeeName != nil && *t.PayeeName != "" {
			payee = *t.PayeeName
		}
		category := "Uncategorized"
		if t.CategoryName != nil {
			category = *t.CategoryName
		}
		fmt.Fprintf(&txText, "  %s | %s | %s | %s\n", t.Date, payee, category, FormatCents(t.Amount))
	}

	rtaWarning := ""
	if snap.month.ReadyToAssign < 0 {
		rtaWarning = " OVER-BUDGETED"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a smart, proactive personal budget assistant built directly into a zero-based budgeting app.\n\n")
	fmt.Fprintf(&b, "Today is %s.\nCurrent budget month: %s.\n\n", now.Format("Monday, January 2, 2006"), monthName)
	fmt.Fprintf(&b, "=== FINANCIAL SNAPSHOT ===\nReady to Assign: %s%s\n\n", FormatCents(snap.month.ReadyToAssign), rtaWarning)
	fmt.Fprintf(&b, "ACCOUNTS:\n%s\n", orPlaceholder(accountText.String(), "  (none yet)\n"))
	fmt.Fprintf(&b, "=== BUDGET: %s ===\n%s\n", monthName, orPlaceholder(budgetText.String(), "  (no categories yet)\n"))
	if billsText.Len() > 0 {
		fmt.Fprintf(&b, "=== UPCOMING BILLS ===\n%s\n", billsText.String())
	}
	fmt.Fprintf(&b, "=== RECENT TRANSACTIONS (last %d) ===\n%s\n", recentTransactionLimit, orPlaceholder(txText.String(), "  (none yet)\n"))
	if snap.digest != "" {
		fmt.Fprintf(&b, "=== SPENDING TRENDS ===\n%s\n\n", snap.digest)
	}
	b.WriteString(`=== YOUR CAPABILITIES ===
You can:
1. Answer questions about spending, balances, and trends
2. Assign money to categories with assign_to_category or bulk_assign
3. Record, edit, and delete transactions
4. Create, edit, and delete categories, groups, and accounts
5. Analyze spending patterns with get_transactions
6. Give budget advice based on upcoming bills and available money

IMPORTANT RULES:
- When the user asks you to DO something, USE THE TOOLS. Do not just describe what to do.
- After taking actions, confirm clearly what you did (e.g., "Done! Assigned $500.00 to Rent.")
- Be conversational and friendly, not overly formal.
- If asked to "cover bills" or "fund upcoming bills", use bulk_assign to fill each bill category up to its needed amount from Ready to Assign.
- Destructive actions (deleting accounts, groups) need explicit user confirmation first.
- All amounts in tools are in CENTS (multiply dollars by 100).`)
	return b.String()
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// daysUntilDue wraps around a nominal 31-day month, matching how due days are
// surfaced in the UI.
func daysUntilDue(dueDay, todayDay int) int {
	if dueDay >= todayDay {
		return dueDay - todayDay
	}
	return 31 - todayDay + dueDay
}

// FormatCents renders integer cents as a dollar string with thousands
// separators, e.g. -123456 -> "-$1,234.56".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	dollars := strconv.FormatInt(cents/100, 10)
	var grouped strings.Builder
	lead := len(dollars) % 3
	if lead > 0 {
		grouped.WriteString(dollars[:lead])
	}
	for i := lead; i < len(dollars); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteString(dollars[i : i+3])
	}
	return fmt.Sprintf("%s$%s.%02d", sign, grouped.String(), cents%100)
}

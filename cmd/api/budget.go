package main

import (
	"context"
	"fmt"
	"net/http"

	"budgetd/internal/response"
	"budgetd/internal/store"
)

// allocatePayload covers all three shapes accepted by PUT .../allocate:
// a single assignment, a bulk batch, or a full month reset.
type allocatePayload struct {
	CategoryID  *string            `json:"category_id"`
	Allocated   *int64             `json:"allocated"`
	Assignments []store.Assignment `json:"assignments"`
	ResetAll    bool               `json:"reset_all"`
}

func (app *application) handleGetBudgetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthFromURL(r)
	if !ok {
		app.badRequest(w, "year and month must be integers")
		return
	}

	view, err := app.mutator.ReadMonth(r.Context(), year, month)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleAllocate(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthFromURL(r)
	if !ok {
		app.badRequest(w, "year and month must be integers")
		return
	}

	var payload allocatePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}

	switch {
	case payload.ResetAll:
		removed, err := app.mutator.ResetMonth(r.Context(), year, month)
		if err != nil {
			app.storeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, response.Ack(fmt.Sprintf("Removed %d allocations", removed)))

	case len(payload.Assignments) > 0:
		count, err := app.mutator.BulkAssign(r.Context(), year, month, payload.Assignments)
		if err != nil {
			app.storeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, response.Ack(fmt.Sprintf("Updated %d allocations", count)))

	case payload.CategoryID != nil && payload.Allocated != nil:
		record, err := app.mutator.Assign(r.Context(), year, month, *payload.CategoryID, *payload.Allocated)
		if err != nil {
			app.storeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)

	default:
		app.badRequest(w, "payload must contain category_id and allocated, assignments, or reset_all")
	}
}

func (app *application) handleCoverOverspending(w http.ResponseWriter, r *http.Request) {
	app.runQuickAction(w, r, "Covered overspending in %d categories", app.mutator.CoverOverspending)
}

func (app *application) handleFundTargets(w http.ResponseWriter, r *http.Request) {
	app.runQuickAction(w, r, "Funded %d categories to target", app.mutator.FundTargets)
}

func (app *application) handleCopyPrevious(w http.ResponseWriter, r *http.Request) {
	app.runQuickAction(w, r, "Copied %d allocations from the previous month", app.mutator.CopyPreviousMonth)
}

// runQuickAction wraps the shared month parsing and ack envelope around the
// three one-shot budget mutations.
func (app *application) runQuickAction(
	w http.ResponseWriter,
	r *http.Request,
	messageFormat string,
	action func(ctx context.Context, year, month int) (int, error),
) {
	year, month, ok := monthFromURL(r)
	if !ok {
		app.badRequest(w, "year and month must be integers")
		return
	}

	count, err := action(r.Context(), year, month)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	ack := response.Ack(fmt.Sprintf(messageFormat, count))
	if err := writeJSON(w, http.StatusOK, ack); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

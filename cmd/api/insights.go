package main

import (
	"net/http"

	"budgetd/internal/insights"
)

const defaultInsightsWindow = 6

func (app *application) handleSpendingInsights(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months")
	if err != nil {
		app.badRequest(w, "months must be an integer")
		return
	}
	window := defaultInsightsWindow
	if months != nil {
		window = *months
	}
	if window < 1 || window > 60 {
		app.badRequest(w, "months must be between 1 and 60")
		return
	}

	rows, err := app.store.Budget.MonthlyCategoryOutflows(r.Context(), window)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	report, err := insights.Compute(rows, window)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, report); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

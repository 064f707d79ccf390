package main

import (
	"errors"
	"net/http"

	"budgetd/internal/budget"
	"budgetd/internal/store"
)

// storeError maps domain errors onto status codes so every handler reports
// the same way.
func (app *application) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, budget.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		app.logger.Error("api", "%s %s: %v", r.Method, r.URL.Path, err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (app *application) badRequest(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusBadRequest, message)
}

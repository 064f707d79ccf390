package main

import (
	"net/http"
	"slices"

	"budgetd/internal/response"
	"budgetd/internal/store"

	"github.com/go-chi/chi/v5"
)

type createCategoryPayload struct {
	GroupID      string  `json:"group_id"`
	Name         string  `json:"name"`
	IsSavings    bool    `json:"is_savings"`
	DueDay       *int    `json:"due_day"`
	Recurrence   *string `json:"recurrence"`
	TargetAmount *int64  `json:"target_amount"`
	Notes        *string `json:"notes"`
}

func (p createCategoryPayload) validate() string {
	if p.GroupID == "" || p.Name == "" {
		return "group_id and name are required"
	}
	if p.DueDay != nil && (*p.DueDay < 1 || *p.DueDay > 31) {
		return "due_day must be between 1 and 31"
	}
	if p.Recurrence != nil && !slices.Contains(store.Recurrences, *p.Recurrence) {
		return "invalid recurrence"
	}
	return ""
}

func (app *application) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, categories); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload createCategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if msg := payload.validate(); msg != "" {
		app.badRequest(w, msg)
		return
	}

	category := &store.Category{
		GroupID:      payload.GroupID,
		Name:         payload.Name,
		IsSavings:    payload.IsSavings,
		DueDay:       payload.DueDay,
		Recurrence:   payload.Recurrence,
		TargetAmount: payload.TargetAmount,
		Notes:        payload.Notes,
	}
	if err := app.store.Categories.Create(r.Context(), category); err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, category); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var patch store.CategoryPatch
	if err := readJSON(w, r, &patch); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if err := patch.Validate(); err != nil {
		app.badRequest(w, err.Error())
		return
	}

	category, err := app.store.Categories.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, category); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		app.storeError(w, r, err)
		return
	}

	ack := response.Ack("Category deleted; its transactions are now uncategorized")
	if err := writeJSON(w, http.StatusOK, ack); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

package main

import (
	"net/http"

	"budgetd/internal/response"
	"budgetd/internal/store"

	"github.com/go-chi/chi/v5"
)

func (app *application) handleListCategoryGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := app.store.CategoryGroups.List(r.Context())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, groups); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateCategoryGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if payload.Name == "" {
		app.badRequest(w, "name is required")
		return
	}

	group := &store.CategoryGroup{Name: payload.Name}
	if err := app.store.CategoryGroups.Create(r.Context(), group); err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, group); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateCategoryGroup(w http.ResponseWriter, r *http.Request) {
	var patch store.CategoryGroupPatch
	if err := readJSON(w, r, &patch); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if err := patch.Validate(); err != nil {
		app.badRequest(w, err.Error())
		return
	}

	group, err := app.store.CategoryGroups.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, group); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteCategoryGroup(w http.ResponseWriter, r *http.Request) {
	if err := app.store.CategoryGroups.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		app.storeError(w, r, err)
		return
	}

	ack := response.Ack("Group and its categories deleted")
	if err := writeJSON(w, http.StatusOK, ack); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

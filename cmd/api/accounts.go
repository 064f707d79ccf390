package main

import (
	"net/http"
	"slices"

	"budgetd/internal/budget"
	"budgetd/internal/response"
	"budgetd/internal/store"

	"github.com/go-chi/chi/v5"
)

type createAccountPayload struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	StartingBalance int64  `json:"starting_balance"`
	IsSavingsBucket bool   `json:"is_savings_bucket"`
}

type accountListResponse struct {
	Accounts []store.Account       `json:"accounts"`
	Summary  budget.AccountSummary `json:"summary"`
}

func (app *application) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := app.store.Accounts.List(r.Context())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	resp := accountListResponse{Accounts: accounts, Summary: budget.Summarize(accounts)}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var payload createAccountPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if payload.Name == "" || payload.Type == "" {
		app.badRequest(w, "name and type are required")
		return
	}
	if !slices.Contains(store.AccountTypes, payload.Type) {
		app.badRequest(w, "type must be one of checking, savings, credit_card, cash")
		return
	}

	account := &store.Account{
		Name:            payload.Name,
		Type:            payload.Type,
		StartingBalance: payload.StartingBalance,
		IsSavingsBucket: payload.IsSavingsBucket,
	}
	if err := app.store.Accounts.Create(r.Context(), account); err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, account); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var patch store.AccountPatch
	if err := readJSON(w, r, &patch); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if err := patch.Validate(); err != nil {
		app.badRequest(w, err.Error())
		return
	}

	account, err := app.store.Accounts.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, account); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Accounts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		app.storeError(w, r, err)
		return
	}

	ack := response.Ack("Account and its transactions deleted")
	if err := writeJSON(w, http.StatusOK, ack); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

package main

import (
	"net/http"

	"budgetd/internal/response"
	"budgetd/internal/store"

	"github.com/go-chi/chi/v5"
)

type createTransactionPayload struct {
	AccountID  string  `json:"account_id"`
	CategoryID *string `json:"category_id"`
	PayeeName  *string `json:"payee_name"`
	Amount     int64   `json:"amount"`
	Date       string  `json:"date"`
	Memo       *string `json:"memo"`
	Cleared    bool    `json:"cleared"`
}

func (app *application) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	year, errY := queryInt(r, "year")
	month, errM := queryInt(r, "month")
	if errY != nil || errM != nil {
		app.badRequest(w, "year and month must be integers")
		return
	}

	filter := store.TransactionFilter{
		AccountID:  queryString(r, "account_id"),
		CategoryID: queryString(r, "category_id"),
		Year:       year,
		Month:      month,
	}
	txs, err := app.store.Transactions.List(r.Context(), filter)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, txs); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := app.store.Transactions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tx); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var payload createTransactionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if payload.AccountID == "" || payload.Date == "" {
		app.badRequest(w, "account_id and date are required")
		return
	}
	if _, err := store.ParseDate(payload.Date); err != nil {
		app.badRequest(w, "date must be YYYY-MM-DD")
		return
	}

	tx := &store.Transaction{
		AccountID:  payload.AccountID,
		CategoryID: payload.CategoryID,
		PayeeName:  payload.PayeeName,
		Amount:     payload.Amount,
		Date:       payload.Date,
		Memo:       payload.Memo,
		Cleared:    payload.Cleared,
	}
	if err := app.store.Transactions.Create(r.Context(), tx); err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, tx); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var patch store.TransactionPatch
	if err := readJSON(w, r, &patch); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}
	if err := patch.Validate(); err != nil {
		app.badRequest(w, err.Error())
		return
	}

	tx, err := app.store.Transactions.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tx); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Transactions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		app.storeError(w, r, err)
		return
	}

	ack := response.Ack("Transaction deleted")
	if err := writeJSON(w, http.StatusOK, ack); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleListPayees(w http.ResponseWriter, r *http.Request) {
	payees, err := app.store.Payees.List(r.Context())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, payees); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

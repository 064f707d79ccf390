package main

import (
	"errors"
	"net/http"

	"budgetd/internal/assistant"
	"budgetd/internal/budget"
)

func (app *application) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	var req assistant.ChatRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequest(w, "invalid json payload")
		return
	}

	resp, err := app.assistant.Chat(r.Context(), req)
	if err != nil {
		if errors.Is(err, budget.ErrValidation) {
			app.badRequest(w, err.Error())
			return
		}
		app.logger.Error("assistant", "chat failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "assistant request failed")
		return
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

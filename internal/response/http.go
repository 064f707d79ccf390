// Package response defines the JSON envelopes shared by every handler.
package response

type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Ack is the bodyless success envelope used by deletes and quick actions.
func Ack(message string) *APIResponse[struct{}] {
	return &APIResponse[struct{}]{Success: true, Message: message}
}

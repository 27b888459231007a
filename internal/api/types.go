// Package api holds the response envelopes shared by every HTTP handler.
package api

// ErrorResponse is the body of every non-2xx response that carries no view.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

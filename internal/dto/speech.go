package dto

import "github.com/SscSPs/expense_tracker/internal/core/domain"

// SpeechKeyResponse carries the speech-to-text API key for the browser socket.
type SpeechKeyResponse struct {
	Success bool   `json:"success"`
	APIKey  string `json:"apiKey"`
}

// SpeechStateRequest reports a connection state change.
type SpeechStateRequest struct {
	State string `json:"state" binding:"required,oneof=disconnected connecting connected error"`
}

// SpeechStateResponse is the connection state after a read or change.
type SpeechStateResponse struct {
	State domain.SpeechConnectionState `json:"state"`
}

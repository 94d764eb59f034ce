package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// SpeechSvc issues speech-to-text credentials and tracks each user's connection state.
type SpeechSvc interface {
	IssueKey(ctx context.Context) (string, error)
	State(userID string) domain.SpeechConnectionState
	Transition(userID string, to domain.SpeechConnectionState) (domain.SpeechConnectionState, error)
}

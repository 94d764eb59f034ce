package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
)

// speechTransitions lists the states reachable from each state. Disconnecting is always allowed.
var speechTransitions = map[domain.SpeechConnectionState][]domain.SpeechConnectionState{
	domain.SpeechDisconnected: {domain.SpeechConnecting},
	domain.SpeechConnecting:   {domain.SpeechConnected, domain.SpeechError},
	domain.SpeechConnected:    {domain.SpeechError},
	domain.SpeechError:        {domain.SpeechConnecting},
}

type speechService struct {
	BaseService
	apiKey string

	mu     sync.Mutex
	states map[string]domain.SpeechConnectionState
}

// NewSpeechService creates the speech-to-text credential and state service.
func NewSpeechService(apiKey string, opts ...BaseOption) portssvc.SpeechSvc {
	svc := &speechService{
		apiKey: apiKey,
		states: make(map[string]domain.SpeechConnectionState),
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.SpeechSvc = (*speechService)(nil)

func (s *speechService) IssueKey(ctx context.Context) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("deepgram: %w", apperrors.ErrNotConfigured)
	}
	return s.apiKey, nil
}

func (s *speechService) State(userID string) domain.SpeechConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[userID]; ok {
		return state
	}
	return domain.SpeechDisconnected
}

func (s *speechService) Transition(userID string, to domain.SpeechConnectionState) (domain.SpeechConnectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.states[userID]
	if !ok {
		from = domain.SpeechDisconnected
	}
	if !speechTransitionAllowed(from, to) {
		return from, fmt.Errorf("%w: cannot move from %s to %s", apperrors.ErrValidation, from, to)
	}

	if to == domain.SpeechDisconnected {
		delete(s.states, userID)
	} else {
		s.states[userID] = to
	}
	return to, nil
}

func speechTransitionAllowed(from, to domain.SpeechConnectionState) bool {
	if to == domain.SpeechDisconnected || from == to {
		return true
	}
	for _, next := range speechTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

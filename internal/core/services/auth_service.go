package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/google/uuid"
)

const revocationSweepInterval = time.Minute

// AuthConfig holds what the auth service needs from configuration.
type AuthConfig struct {
	PIN       string
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// authService signs anonymous sessions after a PIN check and remembers signed-out tokens
// until they would have expired anyway.
type authService struct {
	BaseService
	pinHash string
	cfg     AuthConfig

	mu      sync.RWMutex
	revoked map[string]time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// NewAuthService hashes the configured PIN and starts the revocation sweeper.
func NewAuthService(cfg AuthConfig, opts ...BaseOption) (portssvc.AuthSvcFacade, error) {
	if cfg.PIN == "" {
		return nil, fmt.Errorf("%w: access PIN is required", apperrors.ErrValidation)
	}
	hash, err := utils.HashPIN(cfg.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access PIN: %w", err)
	}

	svc := &authService{
		pinHash: hash,
		cfg:     cfg,
		revoked: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
	svc.apply(opts)
	go svc.sweep()
	return svc, nil
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) SignIn(ctx context.Context, pin string) (*domain.Session, error) {
	if !utils.CheckPINHash(pin, s.pinHash) {
		s.LogInfo(ctx, "Sign-in rejected: invalid PIN")
		return nil, apperrors.ErrUnauthorized
	}

	userID := uuid.NewString()
	token, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token")
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.LogInfo(ctx, "Anonymous session created", slog.String("user_id", userID))
	return &domain.Session{
		UserID:      userID,
		IsAnonymous: true,
		Token:       token.Token,
		TokenID:     token.TokenID,
		ExpiresAt:   token.ExpiresAt.UnixMilli(),
	}, nil
}

func (s *authService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("%w: token ID is required", apperrors.ErrValidation)
	}
	if expiresAt.IsZero() {
		expiresAt = s.Now().Add(s.cfg.JWTExpiry)
	}

	s.mu.Lock()
	s.revoked[tokenID] = expiresAt
	s.mu.Unlock()

	s.LogInfo(ctx, "Session signed out")
	return nil
}

func (s *authService) IsRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[tokenID]
	return ok
}

func (s *authService) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}

func (s *authService) sweep() {
	ticker := time.NewTicker(revocationSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.purgeExpired()
		}
	}
}

// purgeExpired forgets revoked tokens past their expiry. The JWT check rejects those on its own.
func (s *authService) purgeExpired() {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
}

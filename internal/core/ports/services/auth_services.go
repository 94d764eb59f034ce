package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// AuthSvcFacade defines PIN sign-in and session revocation.
type AuthSvcFacade interface {
	// SignIn checks pin and, on match, issues an anonymous session. Returns apperrors.ErrUnauthorized otherwise.
	SignIn(ctx context.Context, pin string) (*domain.Session, error)

	// SignOut revokes the token with the given id until it would have expired anyway.
	SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether the token id was signed out.
	IsRevoked(tokenID string) bool

	// Close stops background cleanup.
	Close()
}

package dto

import "github.com/SscSPs/expense_tracker/internal/core/domain"

// SignInRequest carries the shared access PIN.
type SignInRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// SessionUser is the anonymous user behind a session.
type SessionUser struct {
	UID         string `json:"uid"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// SignInResponse is returned after a successful PIN sign-in.
type SignInResponse struct {
	Success   bool        `json:"success"`
	User      SessionUser `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
}

// ToSignInResponse converts a new session into the sign-in response.
func ToSignInResponse(s *domain.Session) SignInResponse {
	return SignInResponse{
		Success:   true,
		User:      SessionUser{UID: s.UserID, IsAnonymous: s.IsAnonymous},
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

// AuthFailureResponse is returned when the PIN is rejected.
type AuthFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SessionResponse describes the session that authenticated the request.
type SessionResponse struct {
	User      SessionUser `json:"user"`
	ExpiresAt int64       `json:"expiresAt,omitempty"`
}

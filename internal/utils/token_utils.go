package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssuedToken is a signed session token and the claims needed to revoke it later.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// GenerateJWT signs an HS256 token for the subject with a random token id (jti).
func GenerateJWT(userID string, secret string, expiryDuration time.Duration, issuer string) (*IssuedToken, error) {
	tokenID, err := GenerateSecureRandomString(16)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(expiryDuration)
	claims := jwt.RegisteredClaims{
		ID:        tokenID,
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &IssuedToken{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the RegisteredClaims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredForgetsOnlyExpiredTokens(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	facade, err := NewAuthService(AuthConfig{PIN: "1111", JWTSecret: "secret", JWTExpiry: time.Hour}, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	defer facade.Close()
	svc := facade.(*authService)

	svc.revoked["old"] = now.Add(-time.Minute)
	svc.revoked["edge"] = now
	svc.revoked["live"] = now.Add(time.Minute)

	svc.purgeExpired()

	assert.False(t, svc.IsRevoked("old"))
	assert.False(t, svc.IsRevoked("edge"))
	assert.True(t, svc.IsRevoked("live"))
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"receipt.jpg":              "receipt.jpg",
		"my receipt #1.png":        "my_receipt__1.png",
		`C:\Users\me\scan 50%.pdf`: "scan_50_.pdf",
		"../../etc/passwd":         "passwd",
		"":                         "upload",
		"/":                        "upload",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFileName(in), "input %q", in)
	}
}

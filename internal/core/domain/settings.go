package domain

// AppSettings is the deployment-wide settings document.
// Version is bumped by every successful remote write and used as an optimistic concurrency token.
type AppSettings struct {
	ID        string  `json:"id,omitempty"`
	LogoURL   *string `json:"logoUrl"`
	Version   int64   `json:"version"`
	UpdatedAt int64   `json:"updatedAt,omitempty"`
}

// DefaultAppSettings returns the settings used when neither the cache nor the store has any.
func DefaultAppSettings() AppSettings {
	return AppSettings{LogoURL: nil}
}

// SpeechConnectionState mirrors the speech-to-text socket lifecycle.
type SpeechConnectionState string

const (
	SpeechDisconnected SpeechConnectionState = "disconnected"
	SpeechConnecting   SpeechConnectionState = "connecting"
	SpeechConnected    SpeechConnectionState = "connected"
	SpeechError        SpeechConnectionState = "error"
)

// Session is an anonymous authenticated session issued after a PIN sign-in.
type Session struct {
	UserID      string `json:"uid"`
	IsAnonymous bool   `json:"isAnonymous"`
	Token       string `json:"token,omitempty"`
	TokenID     string `json:"-"`
	ExpiresAt   int64  `json:"expiresAt"`
}

package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// cursors travel in query strings
var tokenEncoding = base64.RawURLEncoding

// EncodeCursor creates an opaque cursor from a document's creation time (unix millis) and id.
// Listings ordered by (created_at DESC, id DESC) resume strictly after this position.
func EncodeCursor(createdAt int64, id string) string {
	return EncodeMultiFieldToken(strconv.FormatInt(createdAt, 10), id)
}

// DecodeCursor parses a cursor produced by EncodeCursor.
func DecodeCursor(token string) (int64, string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, "", err
	}
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return createdAt, parts[1], nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return tokenEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

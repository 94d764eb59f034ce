package domain

import "time"

// AuditFields holds the creation/update stamps of a stored document, in Unix milliseconds.
type AuditFields struct {
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// NowMillis returns the current wall clock time in Unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// DateLayout is the calendar date format used for expense and receipt dates.
const DateLayout = "2006-01-02"

// Today returns the current UTC date formatted with DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

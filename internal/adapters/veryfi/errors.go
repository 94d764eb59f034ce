package veryfi

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrorCategory groups upstream failures by what the caller can do about them.
type ErrorCategory string

const (
	CategoryBadFormat      ErrorCategory = "bad_format"
	CategoryBadCredentials ErrorCategory = "bad_credentials"
	CategoryRateLimited    ErrorCategory = "rate_limited"
	CategoryVendorOutage   ErrorCategory = "vendor_outage"
	CategoryOther          ErrorCategory = "other"
)

const maxErrorBody = 4 << 10

// APIError is a non-2xx answer from the OCR API.
type APIError struct {
	StatusCode int
	Body       string
	Category   ErrorCategory
}

func (e *APIError) Error() string {
	return fmt.Sprintf("veryfi API error: %d %s", e.StatusCode, e.Body)
}

// CategoryFor maps an HTTP status to an error category.
func CategoryFor(status int) ErrorCategory {
	switch {
	case status == http.StatusBadRequest:
		return CategoryBadFormat
	case status == http.StatusUnauthorized:
		return CategoryBadCredentials
	case status == http.StatusTooManyRequests:
		return CategoryRateLimited
	case status >= 500:
		return CategoryVendorOutage
	}
	return CategoryOther
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(raw)),
		Category:   CategoryFor(resp.StatusCode),
	}
}

// HTTPStatus returns the upstream status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

package dto

import "github.com/SscSPs/expense_tracker/internal/core/domain"

// ReceiptToExpenseRequest turns a reviewed receipt into an expense.
type ReceiptToExpenseRequest struct {
	Receipt  domain.ReceiptData `json:"receipt"`
	VendorID string             `json:"vendorId"`
	// Save stores the draft instead of only returning it.
	Save bool `json:"save"`
}

// ErrorDetailResponse is the error body of the vendor-facing routes.
type ErrorDetailResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

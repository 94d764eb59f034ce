package models

import (
	"encoding/json"
	"fmt"
)

// ExpenseSchemaVersion is the schema version written for new expense documents.
//
//	v0: vendor reference stored as payeeId/payeeName
//	v1: vendor reference stored as vendorId/vendorName
const ExpenseSchemaVersion = 1

// ExpenseItem is a stored expense line.
type ExpenseItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// Expense is the JSON body of an expense document at ExpenseSchemaVersion.
type Expense struct {
	VendorID           string        `json:"vendorId,omitempty"`
	VendorName         string        `json:"vendorName,omitempty"`
	Date               string        `json:"date"`
	Amount             float64       `json:"amount"`
	Currency           string        `json:"currency,omitempty"`
	Category           string        `json:"category,omitempty"`
	Subcategory        string        `json:"subcategory,omitempty"`
	PaymentMethod      string        `json:"paymentMethod,omitempty"`
	ReceiptURL         string        `json:"receiptUrl,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	Items              []ExpenseItem `json:"items,omitempty"`
	Tax                *float64      `json:"tax,omitempty"`
	IsRecurring        bool          `json:"isRecurring,omitempty"`
	RecurringFrequency string        `json:"recurringFrequency,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
	Type               string        `json:"type,omitempty"`
}

// MigrateExpenseBody upgrades a stored expense body from schemaVersion to ExpenseSchemaVersion.
// Unknown fields are dropped by the final decode.
func MigrateExpenseBody(schemaVersion int, body json.RawMessage) (*Expense, error) {
	raw := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("decode expense body: %w", err)
		}
	}

	if schemaVersion < 1 {
		renameLegacyField(raw, "payeeId", "vendorId")
		renameLegacyField(raw, "payeeName", "vendorName")
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode migrated expense body: %w", err)
	}
	var exp Expense
	if err := json.Unmarshal(normalized, &exp); err != nil {
		return nil, fmt.Errorf("decode migrated expense body: %w", err)
	}
	return &exp, nil
}

// renameLegacyField moves from into to unless to already holds a non-empty value.
func renameLegacyField(raw map[string]any, from, to string) {
	legacy, ok := raw[from]
	if !ok {
		return
	}
	delete(raw, from)
	if current, exists := raw[to]; exists && current != nil && current != "" {
		return
	}
	raw[to] = legacy
}

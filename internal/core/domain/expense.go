package domain

import (
	"errors"
	"fmt"
	"time"
)

// ExpenseType discriminates regular expenses from cost of goods sold.
type ExpenseType string

const (
	ExpenseTypeExpense ExpenseType = "expense"
	ExpenseTypeCOGS    ExpenseType = "cogs"
)

// RecurringFrequency is how often a recurring expense repeats.
type RecurringFrequency string

const (
	FrequencyDaily     RecurringFrequency = "daily"
	FrequencyWeekly    RecurringFrequency = "weekly"
	FrequencyBiWeekly  RecurringFrequency = "bi-weekly"
	FrequencyMonthly   RecurringFrequency = "monthly"
	FrequencyQuarterly RecurringFrequency = "quarterly"
	FrequencyAnnually  RecurringFrequency = "annually"
)

// IsValid reports whether f is one of the known frequencies.
func (f RecurringFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// ExpenseCategories are the categories offered by the expense form.
var ExpenseCategories = []string{
	"Advertising",
	"Auto",
	"Bank Fees",
	"Entertainment",
	"Equipment",
	"Food",
	"Insurance",
	"Office Supplies",
	"Rent",
	"Salary",
	"Software",
	"Taxes",
	"Travel",
	"Utilities",
	"Other",
}

// ExpenseItem is a single line of an itemised expense.
type ExpenseItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// Expense is a single business expense owned by a user.
type Expense struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	VendorID           string             `json:"vendorId,omitempty"`
	VendorName         string             `json:"vendorName"`
	Date               string             `json:"date"`
	Amount             float64            `json:"amount"`
	Currency           string             `json:"currency"`
	Category           string             `json:"category"`
	Subcategory        string             `json:"subcategory,omitempty"`
	PaymentMethod      string             `json:"paymentMethod,omitempty"`
	ReceiptURL         string             `json:"receiptUrl,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	Items              []ExpenseItem      `json:"items,omitempty"`
	Tax                *float64           `json:"tax,omitempty"`
	IsRecurring        bool               `json:"isRecurring,omitempty"`
	RecurringFrequency RecurringFrequency `json:"recurringFrequency,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
	Type               ExpenseType        `json:"type,omitempty"`
	AuditFields
}

// IsCOGS reports whether the expense counts as cost of goods sold.
func (e Expense) IsCOGS() bool {
	return e.Type == ExpenseTypeCOGS
}

// IsValid reports whether t is a known expense type.
func (t ExpenseType) IsValid() bool {
	return t == ExpenseTypeExpense || t == ExpenseTypeCOGS
}

// ParseExpenseDate accepts a calendar date or a full RFC3339 timestamp and returns the calendar date.
func ParseExpenseDate(raw string) (string, error) {
	if _, err := time.Parse(DateLayout, raw); err == nil {
		return raw, nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return raw[:len(DateLayout)], nil
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
}

// Normalize applies defaults and checks the field invariants of a new expense.
func (e *Expense) Normalize() error {
	if e.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	date, err := ParseExpenseDate(e.Date)
	if err != nil {
		return err
	}
	e.Date = date
	if e.RecurringFrequency != "" && !e.RecurringFrequency.IsValid() {
		return fmt.Errorf("unknown recurring frequency %q", e.RecurringFrequency)
	}
	if e.Type == "" {
		e.Type = ExpenseTypeExpense
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("unknown expense type %q", e.Type)
	}
	return nil
}

// ExpenseFilter narrows an expense listing. Zero values disable a criterion.
type ExpenseFilter struct {
	StartDate  string
	EndDate    string
	Categories []string
	VendorIDs  []string
	MinAmount  *float64
	MaxAmount  *float64
	SearchTerm string
	Tags       []string
}

// ExpensePage is one page of an expense listing.
type ExpensePage struct {
	Expenses   []Expense `json:"expenses"`
	NextCursor *string   `json:"nextCursor"`
}

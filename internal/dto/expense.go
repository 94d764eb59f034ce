package dto

import (
	"strings"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense.
type CreateExpenseRequest struct {
	VendorID           string               `json:"vendorId"`
	VendorName         string               `json:"vendorName" binding:"required"`
	Date               string               `json:"date" binding:"required"`
	Amount             float64              `json:"amount" binding:"gte=0"`
	Currency           string               `json:"currency"`
	Category           string               `json:"category" binding:"required"`
	Subcategory        string               `json:"subcategory"`
	PaymentMethod      string               `json:"paymentMethod"`
	ReceiptURL         string               `json:"receiptUrl" binding:"omitempty,url"`
	Notes              string               `json:"notes"`
	Items              []domain.ExpenseItem `json:"items"`
	Tax                *float64             `json:"tax" binding:"omitempty,gte=0"`
	IsRecurring        bool                 `json:"isRecurring"`
	RecurringFrequency string               `json:"recurringFrequency" binding:"omitempty,oneof=daily weekly bi-weekly monthly quarterly annually"`
	Tags               []string             `json:"tags"`
	Type               string               `json:"type" binding:"omitempty,oneof=expense cogs"`
}

// ToDomain converts the request into an unsaved expense.
func (r CreateExpenseRequest) ToDomain() domain.Expense {
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	return domain.Expense{
		VendorID:           r.VendorID,
		VendorName:         strings.TrimSpace(r.VendorName),
		Date:               r.Date,
		Amount:             r.Amount,
		Currency:           currency,
		Category:           r.Category,
		Subcategory:        r.Subcategory,
		PaymentMethod:      r.PaymentMethod,
		ReceiptURL:         r.ReceiptURL,
		Notes:              r.Notes,
		Items:              r.Items,
		Tax:                r.Tax,
		IsRecurring:        r.IsRecurring,
		RecurringFrequency: domain.RecurringFrequency(r.RecurringFrequency),
		Tags:               r.Tags,
		Type:               domain.ExpenseType(r.Type),
	}
}

// ListExpensesParams defines query parameters for listing and summarising expenses.
// List-valued filters are comma separated.
type ListExpensesParams struct {
	StartDate  string   `form:"startDate"`
	EndDate    string   `form:"endDate"`
	Categories string   `form:"categories"`
	VendorIDs  string   `form:"vendorIds"`
	MinAmount  *float64 `form:"minAmount"`
	MaxAmount  *float64 `form:"maxAmount"`
	Search     string   `form:"search"`
	Tags       string   `form:"tags"`
	Limit      int      `form:"limit,default=50" binding:"min=1,max=500"`
	Cursor     string   `form:"cursor"`
}

// ToFilter converts the query into the in-memory expense filter.
func (p ListExpensesParams) ToFilter() domain.ExpenseFilter {
	return domain.ExpenseFilter{
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Categories: splitList(p.Categories),
		VendorIDs:  splitList(p.VendorIDs),
		MinAmount:  p.MinAmount,
		MaxAmount:  p.MaxAmount,
		SearchTerm: strings.TrimSpace(p.Search),
		Tags:       splitList(p.Tags),
	}
}

// ListExpensesResponse is one page of expenses.
type ListExpensesResponse struct {
	Expenses   []domain.Expense `json:"expenses"`
	NextCursor *string          `json:"nextCursor"`
}

// ToListExpensesResponse converts a domain page into the response DTO.
func ToListExpensesResponse(page domain.ExpensePage) ListExpensesResponse {
	expenses := page.Expenses
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return ListExpensesResponse{Expenses: expenses, NextCursor: page.NextCursor}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

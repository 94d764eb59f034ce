package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelExpense converts a domain Expense to its stored body.
func ToModelExpense(d domain.Expense) models.Expense {
	var items []models.ExpenseItem
	if len(d.Items) > 0 {
		items = make([]models.ExpenseItem, len(d.Items))
		for i, it := range d.Items {
			items[i] = models.ExpenseItem{
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       it.Total,
			}
		}
	}
	return models.Expense{
		VendorID:           d.VendorID,
		VendorName:         d.VendorName,
		Date:               d.Date,
		Amount:             d.Amount,
		Currency:           d.Currency,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		PaymentMethod:      d.PaymentMethod,
		ReceiptURL:         d.ReceiptURL,
		Notes:              d.Notes,
		Items:              items,
		Tax:                d.Tax,
		IsRecurring:        d.IsRecurring,
		RecurringFrequency: string(d.RecurringFrequency),
		Tags:               d.Tags,
		Type:               string(d.Type),
	}
}

// ToDomainExpense converts a stored document and its migrated body to a domain Expense.
// Missing timestamps are filled with readAt.
func ToDomainExpense(doc models.Document, m models.Expense, readAt int64) domain.Expense {
	var items []domain.ExpenseItem
	if len(m.Items) > 0 {
		items = make([]domain.ExpenseItem, len(m.Items))
		for i, it := range m.Items {
			items[i] = domain.ExpenseItem{
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       it.Total,
			}
		}
	}
	return domain.Expense{
		ID:                 doc.ID,
		UserID:             doc.UserID,
		VendorID:           m.VendorID,
		VendorName:         m.VendorName,
		Date:               m.Date,
		Amount:             m.Amount,
		Currency:           m.Currency,
		Category:           m.Category,
		Subcategory:        m.Subcategory,
		PaymentMethod:      m.PaymentMethod,
		ReceiptURL:         m.ReceiptURL,
		Notes:              m.Notes,
		Items:              items,
		Tax:                m.Tax,
		IsRecurring:        m.IsRecurring,
		RecurringFrequency: domain.RecurringFrequency(m.RecurringFrequency),
		Tags:               m.Tags,
		Type:               domain.ExpenseType(m.Type),
		AuditFields:        ToDomainAuditFields(doc.AuditFields, readAt),
	}
}

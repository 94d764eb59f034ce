package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields.
// Zero timestamps, left by documents written without them, are replaced with readAt.
func ToDomainAuditFields(m models.AuditFields, readAt int64) domain.AuditFields {
	out := domain.AuditFields{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	if out.CreatedAt == 0 {
		out.CreatedAt = readAt
	}
	if out.UpdatedAt == 0 {
		out.UpdatedAt = readAt
	}
	return out
}

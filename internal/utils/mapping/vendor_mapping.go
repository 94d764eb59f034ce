package mapping

import (
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/models"
)

// ToModelVendor converts a domain Vendor to its stored body.
func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		Name:     d.Name,
		Address:  d.Address,
		Phone:    d.Phone,
		Email:    d.Email,
		Category: d.Category,
		Notes:    d.Notes,
	}
}

// ToDomainVendor converts a stored document and its body to a domain Vendor.
func ToDomainVendor(doc models.Document, m models.Vendor, readAt int64) domain.Vendor {
	return domain.Vendor{
		ID:          doc.ID,
		UserID:      doc.UserID,
		Name:        m.Name,
		Address:     m.Address,
		Phone:       m.Phone,
		Email:       m.Email,
		Category:    m.Category,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(doc.AuditFields, readAt),
	}
}

// ToDomainAppSettings converts the settings document to domain AppSettings.
func ToDomainAppSettings(doc models.Document, m models.AppSettings) domain.AppSettings {
	return domain.AppSettings{
		ID:        doc.ID,
		LogoURL:   m.LogoURL,
		Version:   doc.Revision,
		UpdatedAt: doc.UpdatedAt,
	}
}

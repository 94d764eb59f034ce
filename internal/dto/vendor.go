package dto

import "github.com/SscSPs/expense_tracker/internal/core/domain"

// CreateVendorRequest defines the data needed to create a vendor (payee).
type CreateVendorRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

// ToDomain converts the request into an unsaved vendor.
func (r CreateVendorRequest) ToDomain() domain.Vendor {
	return domain.Vendor{
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
		Category: r.Category,
		Notes:    r.Notes,
	}
}

// ListVendorsResponse wraps a vendor listing.
type ListVendorsResponse struct {
	Vendors []domain.Vendor `json:"vendors"`
}

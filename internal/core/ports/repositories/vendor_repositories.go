package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// VendorReader defines read operations for vendor data
type VendorReader interface {
	FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error)
	ListVendorsByUser(ctx context.Context, userID string, limit int) ([]domain.Vendor, error)
}

// VendorWriter defines write operations for vendor data
type VendorWriter interface {
	SaveVendor(ctx context.Context, vendor domain.Vendor) error
	UpdateVendor(ctx context.Context, userID, vendorID string, patch map[string]any, updatedAt int64) error
	DeleteVendor(ctx context.Context, userID, vendorID string) error
}

// VendorRepositoryFacade combines all vendor-related repository interfaces
type VendorRepositoryFacade interface {
	VendorReader
	VendorWriter
}

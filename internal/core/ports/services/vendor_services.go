package services

import (
	"context"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// VendorReaderSvc defines read operations for vendor data
type VendorReaderSvc interface {
	GetVendorByID(ctx context.Context, userID string, vendorID string) (*domain.Vendor, error)

	// GetVendors lists the user's vendors. Read failures are logged and yield an empty list.
	GetVendors(ctx context.Context, userID string) []domain.Vendor
}

// VendorWriterSvc defines write operations for vendor data
type VendorWriterSvc interface {
	AddVendor(ctx context.Context, userID string, vendor domain.Vendor) (*domain.Vendor, error)
	UpdateVendor(ctx context.Context, userID string, vendorID string, patch map[string]any) error
	DeleteVendor(ctx context.Context, userID string, vendorID string) error
}

// VendorSvcFacade combines all vendor-related service interfaces
type VendorSvcFacade interface {
	VendorReaderSvc
	VendorWriterSvc
}

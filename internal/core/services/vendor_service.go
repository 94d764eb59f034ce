package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/google/uuid"
)

type vendorService struct {
	BaseService
	vendorRepo portsrepo.VendorRepositoryFacade
}

// NewVendorService creates a new vendor service.
func NewVendorService(repo portsrepo.VendorRepositoryFacade, opts ...BaseOption) portssvc.VendorSvcFacade {
	svc := &vendorService{vendorRepo: repo}
	svc.apply(opts)
	return svc
}

var _ portssvc.VendorSvcFacade = (*vendorService)(nil)

func (s *vendorService) AddVendor(ctx context.Context, userID string, vendor domain.Vendor) (*domain.Vendor, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	vendor.Name = strings.TrimSpace(vendor.Name)
	if vendor.Name == "" {
		return nil, fmt.Errorf("%w: vendor name is required", apperrors.ErrValidation)
	}

	now := s.NowMillis()
	vendor.ID = uuid.NewString()
	vendor.UserID = userID
	vendor.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}

	if err := s.vendorRepo.SaveVendor(ctx, vendor); err != nil {
		s.LogError(ctx, err, "Failed to save vendor",
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Vendor created successfully", slog.String("vendor_id", vendor.ID))
	s.Publish(ctx, clients.EventVendorCreated, userID, vendor.ID, map[string]any{"name": vendor.Name})
	return &vendor, nil
}

func (s *vendorService) GetVendorByID(ctx context.Context, userID string, vendorID string) (*domain.Vendor, error) {
	if vendorID == "" {
		return nil, fmt.Errorf("%w: vendor ID is required", apperrors.ErrValidation)
	}
	vendor, err := s.vendorRepo.FindVendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return vendor, nil
}

func (s *vendorService) GetVendors(ctx context.Context, userID string) []domain.Vendor {
	if userID == "" {
		s.LogError(ctx, apperrors.ErrValidation, "Cannot list vendors without a user ID")
		return []domain.Vendor{}
	}
	vendors, err := s.vendorRepo.ListVendorsByUser(ctx, userID, domain.MaxVendorsPerUser)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vendors",
			slog.String("user_id", userID))
		return []domain.Vendor{}
	}
	return vendors
}

func (s *vendorService) UpdateVendor(ctx context.Context, userID string, vendorID string, patch map[string]any) error {
	if vendorID == "" {
		return fmt.Errorf("%w: vendor ID is required", apperrors.ErrValidation)
	}
	if raw, ok := patch["name"]; ok {
		name, _ := raw.(string)
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: vendor name must not be empty", apperrors.ErrValidation)
		}
	}

	if err := s.vendorRepo.UpdateVendor(ctx, userID, vendorID, patch, s.NowMillis()); err != nil {
		s.LogError(ctx, err, "Failed to update vendor",
			slog.String("vendor_id", vendorID))
		return err
	}
	return nil
}

func (s *vendorService) DeleteVendor(ctx context.Context, userID string, vendorID string) error {
	if vendorID == "" {
		return fmt.Errorf("%w: vendor ID is required", apperrors.ErrValidation)
	}
	if err := s.vendorRepo.DeleteVendor(ctx, userID, vendorID); err != nil {
		s.LogError(ctx, err, "Failed to delete vendor",
			slog.String("vendor_id", vendorID))
		return err
	}
	return nil
}

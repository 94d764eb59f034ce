package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/expense_tracker/internal/models"
	"github.com/SscSPs/expense_tracker/internal/utils/mapping"
)

type VendorRepository struct {
	store Store
}

// NewVendorRepository creates a repository for vendor documents.
func NewVendorRepository(store Store) *VendorRepository {
	return &VendorRepository{store: store}
}

var _ portsrepo.VendorRepositoryFacade = (*VendorRepository)(nil)

func (r *VendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	body, err := json.Marshal(mapping.ToModelVendor(vendor))
	if err != nil {
		return fmt.Errorf("failed to encode vendor %s: %w", vendor.ID, err)
	}

	doc := models.Document{
		Collection:    models.CollectionVendors,
		ID:            vendor.ID,
		UserID:        vendor.UserID,
		Body:          body,
		SchemaVersion: models.VendorSchemaVersion,
		AuditFields:   mapping.ToModelAuditFields(vendor.AuditFields),
	}
	if err := r.store.Insert(ctx, doc); err != nil {
		return fmt.Errorf("failed to save vendor %s: %w", vendor.ID, err)
	}
	return nil
}

func (r *VendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	doc, err := r.store.Get(ctx, models.CollectionVendors, vendorID)
	if err != nil {
		return nil, err
	}
	vendor, err := toDomainVendor(*doc, domain.NowMillis())
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListVendorsByUser returns up to limit vendors owned by userID, newest first.
func (r *VendorRepository) ListVendorsByUser(ctx context.Context, userID string, limit int) ([]domain.Vendor, error) {
	docs, err := r.store.ListByUser(ctx, models.CollectionVendors, userID, limit, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors for user %s: %w", userID, err)
	}

	readAt := domain.NowMillis()
	vendors := make([]domain.Vendor, 0, len(docs))
	for _, doc := range docs {
		vendor, err := toDomainVendor(doc, readAt)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, nil
}

func (r *VendorRepository) UpdateVendor(ctx context.Context, userID, vendorID string, patch map[string]any, updatedAt int64) error {
	raw, err := encodePatch(patch, &models.Vendor{})
	if err != nil {
		return err
	}
	return r.store.Patch(ctx, models.CollectionVendors, vendorID, userID, raw, updatedAt)
}

func (r *VendorRepository) DeleteVendor(ctx context.Context, userID, vendorID string) error {
	return r.store.Delete(ctx, models.CollectionVendors, vendorID, userID)
}

func toDomainVendor(doc models.Document, readAt int64) (domain.Vendor, error) {
	var body models.Vendor
	if err := json.Unmarshal(doc.Body, &body); err != nil {
		return domain.Vendor{}, fmt.Errorf("failed to decode vendor %s: %w", doc.ID, err)
	}
	return mapping.ToDomainVendor(doc, body, readAt), nil
}

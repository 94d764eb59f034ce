package services_test

import (
	"context"
	"io"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Repositories ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, cursor string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, userID, limit, cursor)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return expenses, next, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, userID, expenseID string, patch map[string]any, updatedAt int64) error {
	args := m.Called(ctx, userID, expenseID, patch, updatedAt)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	args := m.Called(ctx, userID, expenseID)
	return args.Error(0)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindVendorByID(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ListVendorsByUser(ctx context.Context, userID string, limit int) ([]domain.Vendor, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) UpdateVendor(ctx context.Context, userID, vendorID string, patch map[string]any, updatedAt int64) error {
	args := m.Called(ctx, userID, vendorID, patch, updatedAt)
	return args.Error(0)
}

func (m *MockVendorRepository) DeleteVendor(ctx context.Context, userID, vendorID string) error {
	args := m.Called(ctx, userID, vendorID)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindAppSettings(ctx context.Context) (*domain.AppSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsRepository) CreateAppSettings(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateAppSettings(ctx context.Context, settings domain.AppSettings) (*domain.AppSettings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

type MockDiagnosticsRepository struct {
	mock.Mock
}

func (m *MockDiagnosticsRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDiagnosticsRepository) ListPublicData(ctx context.Context, limit int) ([]portsrepo.DiagnosticDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.DiagnosticDocument), args.Error(1)
}

func (m *MockDiagnosticsRepository) SeedPublicData(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

// --- Clients ---

type MockReceiptOCR struct {
	mock.Mock
}

func (m *MockReceiptOCR) ProcessDocument(ctx context.Context, upload domain.ReceiptUpload) (*clients.OCRDocument, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.OCRDocument), args.Error(1)
}

func (m *MockReceiptOCR) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockShopifyClient struct {
	mock.Mock
}

func (m *MockShopifyClient) ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderPage), args.Error(1)
}

func (m *MockShopifyClient) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPage), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event clients.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// eventOfType matches a published event by type.
func eventOfType(eventType string) any {
	return mock.MatchedBy(func(e clients.Event) bool { return e.Type == eventType })
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, userID string, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpenses(ctx context.Context, userID string, filter domain.ExpenseFilter, limit int, cursor string) domain.ExpensePage {
	args := m.Called(ctx, userID, filter, limit, cursor)
	return args.Get(0).(domain.ExpensePage)
}

func (m *MockExpenseService) AddExpense(ctx context.Context, userID string, expense domain.Expense) (*domain.Expense, error) {
	args := m.Called(ctx, userID, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, userID string, expenseID string, patch map[string]any) error {
	args := m.Called(ctx, userID, expenseID, patch)
	return args.Error(0)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, userID string, expenseID string) error {
	args := m.Called(ctx, userID, expenseID)
	return args.Error(0)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock VendorService ---
type MockVendorService struct {
	mock.Mock
}

func (m *MockVendorService) GetVendorByID(ctx context.Context, userID string, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, userID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorService) GetVendors(ctx context.Context, userID string) []domain.Vendor {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Vendor)
}

func (m *MockVendorService) AddVendor(ctx context.Context, userID string, vendor domain.Vendor) (*domain.Vendor, error) {
	args := m.Called(ctx, userID, vendor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorService) UpdateVendor(ctx context.Context, userID string, vendorID string, patch map[string]any) error {
	args := m.Called(ctx, userID, vendorID, patch)
	return args.Error(0)
}

func (m *MockVendorService) DeleteVendor(ctx context.Context, userID string, vendorID string) error {
	args := m.Called(ctx, userID, vendorID)
	return args.Error(0)
}

var _ portssvc.VendorSvcFacade = (*MockVendorService)(nil)

// --- Mock AnalyticsService ---
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) ExpenseSummary(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpenseSummary, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseSummary), args.Error(1)
}

func (m *MockAnalyticsService) RevenueSummary(ctx context.Context, q domain.OrderQuery) (*domain.RevenueSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueSummary), args.Error(1)
}

func (m *MockAnalyticsService) Correlation(ctx context.Context, ordersCSV io.Reader, sessionsCSV io.Reader) (*domain.CorrelationAnalysis, error) {
	args := m.Called(ctx, ordersCSV, sessionsCSV)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CorrelationAnalysis), args.Error(1)
}

func (m *MockAnalyticsService) Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

var _ portssvc.AnalyticsSvc = (*MockAnalyticsService)(nil)

// --- Mock ReceiptService ---
type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) ValidateReceiptFile(contentType string, size int64) error {
	args := m.Called(contentType, size)
	return args.Error(0)
}

func (m *MockReceiptService) ProcessReceipt(ctx context.Context, upload domain.ReceiptUpload) (*domain.ReceiptData, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceiptData), args.Error(1)
}

func (m *MockReceiptService) ConvertToExpense(receipt domain.ReceiptData, vendorID string) domain.Expense {
	args := m.Called(receipt, vendorID)
	return args.Get(0).(domain.Expense)
}

var _ portssvc.ReceiptSvc = (*MockReceiptService)(nil)

// --- Mock ShopifyService ---
type MockShopifyService struct {
	mock.Mock
}

func (m *MockShopifyService) ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderPage), args.Error(1)
}

func (m *MockShopifyService) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductPage), args.Error(1)
}

func (m *MockShopifyService) SyncOrders(ctx context.Context, q domain.OrderQuery) ([]domain.ShopifyOrder, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopifyOrder), args.Error(1)
}

func (m *MockShopifyService) Inventory(ctx context.Context, q domain.ProductQuery) ([]domain.InventoryItem, *string, error) {
	args := m.Called(ctx, q)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.InventoryItem), next, args.Error(2)
}

var _ portssvc.ShopifySvc = (*MockShopifyService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, pin string) (*domain.Session, error) {
	args := m.Called(ctx, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockAuthService) IsRevoked(tokenID string) bool {
	args := m.Called(tokenID)
	return args.Bool(0)
}

func (m *MockAuthService) Close() {}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Load(ctx context.Context) (domain.AppSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Get() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func (m *MockSettingsService) SetLogoURL(ctx context.Context, logoURL *string) domain.AppSettings {
	args := m.Called(ctx, logoURL)
	return args.Get(0).(domain.AppSettings)
}

func (m *MockSettingsService) UploadLogo(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (domain.AppSettings, error) {
	args := m.Called(ctx, fileName, contentType, body, size)
	return args.Get(0).(domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettingsService) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.SettingsSvc = (*MockSettingsService)(nil)

// --- Mock SpeechService ---
type MockSpeechService struct {
	mock.Mock
}

func (m *MockSpeechService) IssueKey(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSpeechService) State(userID string) domain.SpeechConnectionState {
	args := m.Called(userID)
	return args.Get(0).(domain.SpeechConnectionState)
}

func (m *MockSpeechService) Transition(userID string, to domain.SpeechConnectionState) (domain.SpeechConnectionState, error) {
	args := m.Called(userID, to)
	return args.Get(0).(domain.SpeechConnectionState), args.Error(1)
}

var _ portssvc.SpeechSvc = (*MockSpeechService)(nil)

// --- Mock DiagnosticsService ---
type MockDiagnosticsService struct {
	mock.Mock
}

func (m *MockDiagnosticsService) TestDocumentStore(ctx context.Context) (*domain.DocumentStoreReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.DocumentStoreReport), args.Error(1)
}

func (m *MockDiagnosticsService) TestOCR(ctx context.Context) (*domain.OCRReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.OCRReport), args.Error(1)
}

var _ portssvc.DiagnosticsSvc = (*MockDiagnosticsService)(nil)

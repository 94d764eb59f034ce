package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/handlers"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	jwtSecret   string
	expenses    *MockExpenseService
	vendors     *MockVendorService
	analytics   *MockAnalyticsService
	receipts    *MockReceiptService
	shopify     *MockShopifyService
	auth        *MockAuthService
	settings    *MockSettingsService
	speech      *MockSpeechService
	diagnostics *MockDiagnosticsService
}

// generateTestToken creates a signed session token for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	return suite.generateTestTokenWithID(userID, uuid.NewString())
}

func (suite *HandlerTestSuite) generateTestTokenWithID(userID, tokenID string) string {
	claims := jwt.RegisteredClaims{
		ID:        tokenID,
		Issuer:    "expense-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.expenses = new(MockExpenseService)
	suite.vendors = new(MockVendorService)
	suite.analytics = new(MockAnalyticsService)
	suite.receipts = new(MockReceiptService)
	suite.shopify = new(MockShopifyService)
	suite.auth = new(MockAuthService)
	suite.settings = new(MockSettingsService)
	suite.speech = new(MockSpeechService)
	suite.diagnostics = new(MockDiagnosticsService)

	// sessions are live unless a test says otherwise
	suite.auth.On("IsRevoked", mock.Anything).Return(false).Maybe()

	container := &portssvc.ServiceContainer{
		Expense:     suite.expenses,
		Vendor:      suite.vendors,
		Analytics:   suite.analytics,
		Receipt:     suite.receipts,
		Shopify:     suite.shopify,
		Auth:        suite.auth,
		Settings:    suite.settings,
		Speech:      suite.speech,
		Diagnostics: suite.diagnostics,
	}
	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, container, handlers.RouteOptions{})
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.expenses.AssertExpectations(suite.T())
	suite.vendors.AssertExpectations(suite.T())
	suite.analytics.AssertExpectations(suite.T())
	suite.receipts.AssertExpectations(suite.T())
	suite.shopify.AssertExpectations(suite.T())
	suite.auth.AssertExpectations(suite.T())
	suite.settings.AssertExpectations(suite.T())
	suite.speech.AssertExpectations(suite.T())
	suite.diagnostics.AssertExpectations(suite.T())
}

// do serves a request, optionally JSON-encoding body and signing it as userID.
func (suite *HandlerTestSuite) do(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "Failed to unmarshal response body")
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestExpenses_RequireSession() {
	w := suite.do(http.MethodGet, "/api/v1/expenses", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.expenses.AssertNotCalled(suite.T(), "GetExpenses")
}

func (suite *HandlerTestSuite) TestExpenses_RevokedSessionRejected() {
	userID := uuid.NewString()
	tokenID := uuid.NewString()
	suite.auth.ExpectedCalls = nil
	suite.auth.On("IsRevoked", tokenID).Return(true).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestTokenWithID(userID, tokenID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateExpense_Success() {
	userID := uuid.NewString()
	req := dto.CreateExpenseRequest{
		VendorName: "  Acme Supplies ",
		Date:       "2024-03-05",
		Amount:     42.5,
		Category:   "Office",
		Tags:       []string{"q1"},
	}
	stored := &domain.Expense{ID: uuid.NewString(), UserID: userID, VendorName: "Acme Supplies", Date: "2024-03-05", Amount: 42.5, Currency: "USD", Category: "Office"}

	suite.expenses.On("AddExpense", mock.Anything, userID, mock.MatchedBy(func(e domain.Expense) bool {
		return e.VendorName == "Acme Supplies" && e.Currency == "USD" && e.Amount == 42.5
	})).Return(stored, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/expenses", req, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var got domain.Expense
	suite.decode(w, &got)
	suite.Equal(stored.ID, got.ID)
	suite.Equal("USD", got.Currency)
}

func (suite *HandlerTestSuite) TestCreateExpense_BindingErrors() {
	userID := uuid.NewString()
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing vendor", map[string]any{"date": "2024-03-05", "amount": 1, "category": "Office"}},
		{"negative amount", map[string]any{"vendorName": "A", "date": "2024-03-05", "amount": -1, "category": "Office"}},
		{"unknown type", map[string]any{"vendorName": "A", "date": "2024-03-05", "amount": 1, "category": "Office", "type": "refund"}},
		{"bad frequency", map[string]any{"vendorName": "A", "date": "2024-03-05", "amount": 1, "category": "Office", "recurringFrequency": "hourly"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/expenses", tt.body, userID)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.expenses.AssertNotCalled(suite.T(), "AddExpense")
}

func (suite *HandlerTestSuite) TestCreateExpense_ServiceValidation() {
	userID := uuid.NewString()
	suite.expenses.On("AddExpense", mock.Anything, userID, mock.AnythingOfType("domain.Expense")).
		Return(nil, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)).Once()

	body := dto.CreateExpenseRequest{VendorName: "A", Date: "05/03/2024", Amount: 1, Category: "Office"}
	w := suite.do(http.MethodPost, "/api/v1/expenses", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListExpenses_ParsesFilters() {
	userID := uuid.NewString()
	next := "cursor-2"
	page := domain.ExpensePage{
		Expenses:   []domain.Expense{{ID: "e1", UserID: userID}, {ID: "e2", UserID: userID}},
		NextCursor: &next,
	}

	suite.expenses.On("GetExpenses", mock.Anything, userID, mock.MatchedBy(func(f domain.ExpenseFilter) bool {
		return len(f.Categories) == 2 && f.Categories[1] == "Travel" &&
			f.MinAmount != nil && *f.MinAmount == 10 &&
			f.SearchTerm == "coffee" && f.StartDate == "2024-01-01"
	}), 20, "cursor-1").Return(page).Once()

	url := "/api/v1/expenses?categories=Office,%20Travel&minAmount=10&search=%20coffee&startDate=2024-01-01&endDate=2024-01-31&limit=20&cursor=cursor-1"
	w := suite.do(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Expenses, 2)
	suite.Require().NotNil(resp.NextCursor)
	suite.Equal(next, *resp.NextCursor)
}

func (suite *HandlerTestSuite) TestListExpenses_EmptyPageIsArray() {
	userID := uuid.NewString()
	suite.expenses.On("GetExpenses", mock.Anything, userID, domain.ExpenseFilter{}, 50, "").
		Return(domain.ExpensePage{}).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"expenses":[],"nextCursor":null}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestListExpenses_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/expenses?limit=1000", nil, uuid.NewString())
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetExpense_NotFound() {
	userID := uuid.NewString()
	suite.expenses.On("GetExpenseByID", mock.Anything, userID, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/expenses/missing", nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"Expense not found"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestUpdateExpense() {
	userID := uuid.NewString()
	patch := map[string]any{"notes": "lunch", "amount": 12.0}

	suite.expenses.On("UpdateExpense", mock.Anything, userID, "e1", patch).Return(nil).Once()
	suite.expenses.On("UpdateExpense", mock.Anything, userID, "gone", mock.Anything).
		Return(fmt.Errorf("expense gone: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/expenses/e1", patch, userID)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodPatch, "/api/v1/expenses/gone", patch, userID)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateExpense_MistypedField() {
	userID := uuid.NewString()
	patch := map[string]any{"tags": "food"}
	suite.expenses.On("UpdateExpense", mock.Anything, userID, "e1", patch).
		Return(fmt.Errorf("%w: invalid patch: json: cannot unmarshal string into Go struct field Expense.tags of type []string", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/expenses/e1", patch, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "invalid patch")
}

func (suite *HandlerTestSuite) TestDeleteExpense() {
	userID := uuid.NewString()
	suite.expenses.On("DeleteExpense", mock.Anything, userID, "e1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/expenses/e1", nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestVendors_PayeeAlias() {
	userID := uuid.NewString()
	vendors := []domain.Vendor{{ID: "v1", UserID: userID, Name: "Acme"}}
	suite.vendors.On("GetVendors", mock.Anything, userID).Return(vendors).Twice()

	for _, path := range []string{"/api/v1/vendors", "/api/v1/payees"} {
		w := suite.do(http.MethodGet, path, nil, userID)
		suite.Equal(http.StatusOK, w.Code, path)
		var resp dto.ListVendorsResponse
		suite.decode(w, &resp)
		suite.Require().Len(resp.Vendors, 1)
		suite.Equal("Acme", resp.Vendors[0].Name)
	}
}

func (suite *HandlerTestSuite) TestCreateVendor_InvalidEmail() {
	body := map[string]any{"name": "Acme", "email": "not-an-email"}
	w := suite.do(http.MethodPost, "/api/v1/vendors", body, uuid.NewString())
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.vendors.AssertNotCalled(suite.T(), "AddVendor")
}

func (suite *HandlerTestSuite) TestSignIn() {
	session := &domain.Session{UserID: "anon-1", IsAnonymous: true, Token: "signed", ExpiresAt: 1700000000000}
	suite.auth.On("SignIn", mock.Anything, "1234").Return(session, nil).Once()
	suite.auth.On("SignIn", mock.Anything, "0000").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/auth/signin", dto.SignInRequest{PIN: "1234"}, "")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SignInResponse
	suite.decode(w, &resp)
	suite.True(resp.Success)
	suite.Equal("anon-1", resp.User.UID)
	suite.True(resp.User.IsAnonymous)
	suite.Equal("signed", resp.Token)

	w = suite.do(http.MethodPost, "/api/auth/signin", dto.SignInRequest{PIN: "0000"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"success":false,"message":"Invalid PIN"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestSignIn_MissingPIN() {
	w := suite.do(http.MethodPost, "/api/auth/signin", map[string]any{}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.auth.AssertNotCalled(suite.T(), "SignIn", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestSignOutAndSession() {
	userID := uuid.NewString()
	tokenID := uuid.NewString()
	suite.auth.On("SignOut", mock.Anything, tokenID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	token := suite.generateTestTokenWithID(userID, tokenID)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
	var sess dto.SessionResponse
	suite.decode(w, &sess)
	suite.Equal(userID, sess.User.UID)
	suite.True(sess.User.IsAnonymous)
	suite.Positive(sess.ExpiresAt)

	req, _ = http.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestSettings() {
	userID := uuid.NewString()
	logo := "https://cdn.example.com/logo.png"
	current := domain.AppSettings{LogoURL: &logo, Version: 3}

	suite.settings.On("Get").Return(domain.AppSettings{Version: 2}).Once()
	suite.settings.On("SetLogoURL", mock.Anything, mock.MatchedBy(func(u *string) bool {
		return u != nil && *u == logo
	})).Return(current).Once()
	suite.settings.On("SetLogoURL", mock.Anything, (*string)(nil)).Return(domain.AppSettings{Version: 4}).Once()

	w := suite.do(http.MethodGet, "/api/v1/settings", nil, userID)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"logoUrl":null,"version":2}`, w.Body.String())

	w = suite.do(http.MethodPut, "/api/v1/settings/logo-url", map[string]any{"logoUrl": logo}, userID)
	suite.Equal(http.StatusOK, w.Code)
	var got domain.AppSettings
	suite.decode(w, &got)
	suite.Require().NotNil(got.LogoURL)
	suite.Equal(logo, *got.LogoURL)

	w = suite.do(http.MethodPut, "/api/v1/settings/logo-url", map[string]any{"logoUrl": nil}, userID)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/settings/logo-url", map[string]any{"logoUrl": "not a url"}, userID)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSpeech() {
	userID := uuid.NewString()
	suite.speech.On("IssueKey", mock.Anything).Return("dg-key", nil).Once()
	suite.speech.On("Transition", userID, domain.SpeechConnected).
		Return(domain.SpeechDisconnected, fmt.Errorf("cannot move from disconnected to connected")).Once()
	suite.speech.On("Transition", userID, domain.SpeechConnecting).Return(domain.SpeechConnecting, nil).Once()

	w := suite.do(http.MethodGet, "/api/deepgram/transcribe-audio", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/deepgram/transcribe-audio", nil, userID)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"success":true,"apiKey":"dg-key"}`, w.Body.String())

	w = suite.do(http.MethodPut, "/api/deepgram/state", dto.SpeechStateRequest{State: "connected"}, userID)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPut, "/api/deepgram/state", dto.SpeechStateRequest{State: "connecting"}, userID)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"state":"connecting"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestSpeech_KeyNotConfigured() {
	suite.speech.On("IssueKey", mock.Anything).Return("", fmt.Errorf("deepgram: %w", apperrors.ErrNotConfigured)).Once()

	w := suite.do(http.MethodGet, "/api/deepgram/transcribe-audio", nil, uuid.NewString())

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Deepgram API key not configured"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestDiagnostics() {
	suite.diagnostics.On("TestDocumentStore", mock.Anything).
		Return(&domain.DocumentStoreReport{Message: "Connection failed"}, fmt.Errorf("dial tcp: refused")).Once()
	suite.diagnostics.On("TestOCR", mock.Anything).
		Return(&domain.OCRReport{Message: "Missing credentials", MissingCredentials: []string{"VERYFI_API_KEY"}, StatusCode: 0},
			fmt.Errorf("ocr: %w", apperrors.ErrNotConfigured)).Once()

	w := suite.do(http.MethodGet, "/api/test-firestore", nil, "")
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"success":false,"message":"Connection failed","error":"dial tcp: refused"}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/test-veryfi", nil, "")
	suite.Equal(http.StatusInternalServerError, w.Code)
	var report domain.OCRReport
	suite.decode(w, &report)
	suite.Equal([]string{"VERYFI_API_KEY"}, report.MissingCredentials)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

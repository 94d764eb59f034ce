package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/expense_tracker/internal/adapters/shopify"
	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListOrders_EchoesParams() {
	next := "page-2"
	query := domain.OrderQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", Limit: 50, Status: "open"}
	page := &domain.OrderPage{Orders: []domain.ShopifyOrder{{ID: 1001, Name: "#1001", TotalPrice: "19.99"}}, NextCursor: &next}
	suite.shopify.On("ListOrders", mock.Anything, query).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/shopify/orders?startDate=2024-01-01&endDate=2024-01-31&status=open", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListOrdersResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Orders, 1)
	suite.Equal(int64(1001), resp.Orders[0].ID)
	suite.Equal(dto.OrderParamsEcho{StartDate: "2024-01-01", EndDate: "2024-01-31", Status: "open"}, resp.OriginalParams)
	suite.Require().NotNil(resp.NextCursor)
	suite.Equal(next, *resp.NextCursor)
}

func (suite *HandlerTestSuite) TestListOrders_Errors() {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not configured", fmt.Errorf("shopify: %w", apperrors.ErrNotConfigured), http.StatusInternalServerError, `{"error":"Shopify API credentials not configured"}`},
		{"bad date", fmt.Errorf("%w: invalid startDate", apperrors.ErrValidation), http.StatusBadRequest, `{"error":"validation error: invalid startDate"}`},
		{"throttled", &shopify.APIError{StatusCode: http.StatusTooManyRequests, Body: "Exceeded 2 calls per second"}, http.StatusTooManyRequests, `{"error":"Shopify API error: Exceeded 2 calls per second"}`},
		{"network", fmt.Errorf("dial tcp: timeout"), http.StatusInternalServerError, `{"error":"Error fetching Shopify orders: dial tcp: timeout"}`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.shopify.On("ListOrders", mock.Anything, mock.AnythingOfType("domain.OrderQuery")).Return(nil, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/shopify/orders", nil, "")

			suite.Equal(tt.status, w.Code)
			suite.JSONEq(tt.body, w.Body.String())
		})
	}
}

func (suite *HandlerTestSuite) TestListOrders_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/shopify/orders?limit=500", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.shopify.AssertNotCalled(suite.T(), "ListOrders", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListProducts_DefaultLimit() {
	query := domain.ProductQuery{Limit: 250, ProductType: "Mugs"}
	suite.shopify.On("ListProducts", mock.Anything, query).Return(&domain.ProductPage{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/shopify/products?product_type=Mugs", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"products":[],"nextCursor":null,"originalParams":{"collectionId":"","productType":"Mugs","vendor":""}}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestInventory_RequiresSession() {
	w := suite.do(http.MethodGet, "/api/v1/inventory", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	items := []domain.InventoryItem{{ID: "gid-1", Name: "Mug", Category: "Kitchen", Price: 12, Stock: 4}}
	suite.shopify.On("Inventory", mock.Anything, mock.AnythingOfType("domain.ProductQuery")).Return(items, nil, nil).Once()

	w = suite.do(http.MethodGet, "/api/v1/inventory", nil, uuid.NewString())

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InventoryResponse
	suite.decode(w, &resp)
	suite.Equal(items, resp.Items)
	suite.Nil(resp.NextCursor)
}

func (suite *HandlerTestSuite) TestRevenueSummary() {
	userID := uuid.NewString()
	summary := &domain.RevenueSummary{TotalRevenue: 150, TotalOrders: 3, AverageOrderValue: 50}
	suite.analytics.On("RevenueSummary", mock.Anything, domain.OrderQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", Status: "any", Limit: 250}).
		Return(summary, nil).Once()
	suite.analytics.On("RevenueSummary", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("shopify: %w", apperrors.ErrNotConfigured)).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/revenue?startDate=2024-01-01&endDate=2024-01-31", nil, userID)
	suite.Equal(http.StatusOK, w.Code)
	var got domain.RevenueSummary
	suite.decode(w, &got)
	suite.Equal(3, got.TotalOrders)

	w = suite.do(http.MethodGet, "/api/v1/analytics/revenue", nil, userID)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"error":"Shopify API credentials not configured"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestExpenseSummaryAndDashboard() {
	userID := uuid.NewString()
	suite.analytics.On("ExpenseSummary", mock.Anything, userID, mock.MatchedBy(func(f domain.ExpenseFilter) bool {
		return len(f.Tags) == 1 && f.Tags[0] == "travel"
	})).Return(&domain.ExpenseSummary{TotalExpenses: 80, CategoryBreakdown: map[string]float64{"Travel": 80}}, nil).Once()
	suite.analytics.On("Dashboard", mock.Anything, userID).
		Return(&domain.DashboardSummary{ThisMonth: domain.PeriodTotals{Revenue: 100, Expenses: 30, COGS: 20, Profit: 50}, RevenueAvailable: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/expenses?tags=travel", nil, userID)
	suite.Equal(http.StatusOK, w.Code)
	var summary domain.ExpenseSummary
	suite.decode(w, &summary)
	suite.Equal(80.0, summary.TotalExpenses)

	w = suite.do(http.MethodGet, "/api/v1/analytics/dashboard", nil, userID)
	suite.Equal(http.StatusOK, w.Code)
	var dash domain.DashboardSummary
	suite.decode(w, &dash)
	suite.Equal(50.0, dash.ThisMonth.Profit)
	suite.True(dash.RevenueAvailable)
}

func (suite *HandlerTestSuite) TestCorrelation() {
	userID := uuid.NewString()
	orders := formFile{field: "orders", name: "orders.csv", contentType: "text/csv", content: []byte("Date,Order ID,Total\n2024-01-01,1,10\n")}
	sessions := formFile{field: "sessions", name: "sessions.csv", contentType: "text/csv", content: []byte("Date,Sessions\n2024-01-01,5\n")}

	req := multipartRequest("/api/v1/analytics/correlation", nil, orders)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := suite.serve(req)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Missing sessions file"}`, w.Body.String())

	suite.analytics.On("Correlation", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.CorrelationAnalysis{TotalOrders: 1, TotalSessions: 5, TotalRevenue: 10}, nil).Once()

	req = multipartRequest("/api/v1/analytics/correlation", nil, orders, sessions)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w = suite.serve(req)
	suite.Equal(http.StatusOK, w.Code)
	var got domain.CorrelationAnalysis
	suite.decode(w, &got)
	suite.Equal(5, got.TotalSessions)
}

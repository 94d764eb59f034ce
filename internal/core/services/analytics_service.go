package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/utils/analytics"
	"golang.org/x/sync/errgroup"
)

// analyticsPageSize is the page size used when walking all of a user's expenses.
const analyticsPageSize = 500

type analyticsService struct {
	BaseService
	expenseRepo portsrepo.ExpenseReader
	shopify     portssvc.ShopifySvc
}

// NewAnalyticsService creates the aggregation service. shopify may be nil when the store is not configured.
func NewAnalyticsService(expenseRepo portsrepo.ExpenseReader, shopify portssvc.ShopifySvc, opts ...BaseOption) portssvc.AnalyticsSvc {
	svc := &analyticsService{expenseRepo: expenseRepo, shopify: shopify}
	svc.apply(opts)
	return svc
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

func (s *analyticsService) ExpenseSummary(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpenseSummary, error) {
	expenses, err := s.allExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := analytics.CalculateExpenseSummary(analytics.FilterExpenses(expenses, filter))
	return &summary, nil
}

func (s *analyticsService) RevenueSummary(ctx context.Context, q domain.OrderQuery) (*domain.RevenueSummary, error) {
	if s.shopify == nil {
		return nil, fmt.Errorf("shopify: %w", apperrors.ErrNotConfigured)
	}
	orders, err := s.shopify.SyncOrders(ctx, q)
	if err != nil {
		return nil, err
	}
	summary := analytics.CalculateRevenueSummary(orders)
	return &summary, nil
}

func (s *analyticsService) Correlation(ctx context.Context, ordersCSV io.Reader, sessionsCSV io.Reader) (*domain.CorrelationAnalysis, error) {
	orders, err := analytics.ParseOrdersCSV(ordersCSV)
	if err != nil {
		return nil, fmt.Errorf("orders file: %w", err)
	}
	sessions, err := analytics.ParseSessionsCSV(sessionsCSV)
	if err != nil {
		return nil, fmt.Errorf("sessions file: %w", err)
	}

	s.LogDebug(ctx, "Correlating exports",
		slog.Int("orders", len(orders)),
		slog.Int("sessions", len(sessions)))
	result := analytics.AnalyzeCorrelation(orders, sessions)
	return &result, nil
}

// Dashboard loads expenses and orders concurrently. Orders are optional: when the store
// cannot be reached the summary is returned with RevenueAvailable false.
func (s *analyticsService) Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	now := s.Now()
	_, threeMonthsAgo := analytics.DashboardWindows(now)

	var (
		expenses []domain.Expense
		orders   []domain.ShopifyOrder
		ordersOK bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.allExpenses(gctx, userID)
		return err
	})
	if s.shopify != nil {
		g.Go(func() error {
			synced, err := s.shopify.SyncOrders(gctx, domain.OrderQuery{
				StartDate: threeMonthsAgo.Format(domain.DateLayout),
				Status:    "any",
			})
			if err != nil {
				s.LogError(ctx, err, "Revenue unavailable for dashboard")
				return nil
			}
			orders, ordersOK = synced, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := analytics.CalculateDashboard(expenses, orders, now)
	summary.RevenueAvailable = ordersOK
	return &summary, nil
}

// allExpenses walks every page of the user's expenses.
func (s *analyticsService) allExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	all := []domain.Expense{}
	cursor := ""
	for {
		page, next, err := s.expenseRepo.ListExpensesByUser(ctx, userID, analyticsPageSize, cursor)
		if err != nil {
			s.LogError(ctx, err, "Failed to load expenses for analytics", slog.String("user_id", userID))
			return nil, err
		}
		all = append(all, page...)
		if next == nil {
			return all, nil
		}
		cursor = *next
	}
}

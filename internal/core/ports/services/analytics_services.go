package services

import (
	"context"
	"io"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// AnalyticsSvc computes summaries over expenses, orders and traffic.
type AnalyticsSvc interface {
	// ExpenseSummary aggregates every expense of the user that matches filter.
	ExpenseSummary(ctx context.Context, userID string, filter domain.ExpenseFilter) (*domain.ExpenseSummary, error)

	// RevenueSummary syncs orders from the store and aggregates them.
	RevenueSummary(ctx context.Context, q domain.OrderQuery) (*domain.RevenueSummary, error)

	// Correlation parses order and session CSV exports and correlates revenue with traffic.
	Correlation(ctx context.Context, ordersCSV io.Reader, sessionsCSV io.Reader) (*domain.CorrelationAnalysis, error)

	// Dashboard computes this-month and last-three-months totals.
	Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}

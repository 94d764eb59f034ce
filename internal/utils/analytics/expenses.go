// Package analytics holds the pure aggregation functions behind the reporting endpoints.
package analytics

import (
	"strings"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// UncategorizedLabel is used for expenses and products without a category.
const UncategorizedLabel = "Uncategorized"

// CalculateExpenseSummary totals expenses overall, by category, by vendor name and by month (YYYY-MM).
func CalculateExpenseSummary(expenses []domain.Expense) domain.ExpenseSummary {
	summary := domain.ExpenseSummary{
		CategoryBreakdown: map[string]float64{},
		VendorBreakdown:   map[string]float64{},
		MonthlyTotals:     map[string]float64{},
	}

	for _, e := range expenses {
		summary.TotalExpenses += e.Amount

		category := e.Category
		if category == "" {
			category = UncategorizedLabel
		}
		summary.CategoryBreakdown[category] += e.Amount

		summary.VendorBreakdown[e.VendorName] += e.Amount

		summary.MonthlyTotals[monthOf(e.Date)] += e.Amount
	}

	return summary
}

func monthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// MatchesFilter reports whether e satisfies every criterion of f.
// The date range only applies when both bounds are set; comparisons are on ISO date strings.
func MatchesFilter(e domain.Expense, f domain.ExpenseFilter) bool {
	if f.StartDate != "" && f.EndDate != "" {
		if e.Date < f.StartDate || e.Date > f.EndDate {
			return false
		}
	}
	if len(f.Categories) > 0 && !contains(f.Categories, e.Category) {
		return false
	}
	if len(f.VendorIDs) > 0 && !contains(f.VendorIDs, e.VendorID) {
		return false
	}
	if f.MinAmount != nil && e.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(e.VendorName), term) &&
			!strings.Contains(strings.ToLower(e.Notes), term) &&
			!strings.Contains(strings.ToLower(e.Category), term) {
			return false
		}
	}
	if len(f.Tags) > 0 && !intersects(e.Tags, f.Tags) {
		return false
	}
	return true
}

// FilterExpenses keeps the expenses matching f, preserving order.
func FilterExpenses(expenses []domain.Expense, f domain.ExpenseFilter) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if MatchesFilter(e, f) {
			out = append(out, e)
		}
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}

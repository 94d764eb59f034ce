package analytics

import (
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils"
)

// DashboardWindows returns the start of the current UTC month and the date three months before now.
func DashboardWindows(now time.Time) (monthStart, threeMonthsAgo time.Time) {
	now = now.UTC()
	monthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	threeMonthsAgo = time.Date(now.Year(), now.Month()-3, now.Day(), 0, 0, 0, 0, time.UTC)
	return monthStart, threeMonthsAgo
}

// CalculateDashboard totals revenue, regular expenses and COGS for the current month and the last three months.
// Expenses are bucketed by their calendar date, orders by their UTC creation day.
func CalculateDashboard(expenses []domain.Expense, orders []domain.ShopifyOrder, now time.Time) domain.DashboardSummary {
	monthStart, threeMonthsAgo := DashboardWindows(now)
	thisMonthFrom := monthStart.Format(domain.DateLayout)
	lastThreeFrom := threeMonthsAgo.Format(domain.DateLayout)

	var summary domain.DashboardSummary

	for _, e := range expenses {
		if e.Date >= thisMonthFrom {
			addExpense(&summary.ThisMonth, e)
		}
		if e.Date >= lastThreeFrom {
			addExpense(&summary.LastThreeMonths, e)
		}
	}

	for _, o := range orders {
		amount, _ := utils.ParseAmount(o.TotalPrice)
		day := orderDay(o.CreatedAt)
		if day >= thisMonthFrom {
			summary.ThisMonth.Revenue += amount
		}
		if day >= lastThreeFrom {
			summary.LastThreeMonths.Revenue += amount
		}
	}

	finishPeriod(&summary.ThisMonth)
	finishPeriod(&summary.LastThreeMonths)
	return summary
}

func addExpense(p *domain.PeriodTotals, e domain.Expense) {
	if e.IsCOGS() {
		p.COGS += e.Amount
		return
	}
	p.Expenses += e.Amount
}

func finishPeriod(p *domain.PeriodTotals) {
	p.Revenue = utils.RoundFloat(p.Revenue, 2)
	p.Expenses = utils.RoundFloat(p.Expenses, 2)
	p.COGS = utils.RoundFloat(p.COGS, 2)
	p.Profit = utils.RoundFloat(p.Revenue-p.Expenses-p.COGS, 2)
}

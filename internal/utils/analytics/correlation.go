package analytics

import (
	"math"
	"sort"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
)

// CalculatePearsonCorrelation returns the Pearson coefficient of x and y.
// Empty or mismatched input, or a series with zero variance, yields 0.
func CalculatePearsonCorrelation(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n == 0 {
		return 0
	}

	var xSum, ySum float64
	for i := 0; i < n; i++ {
		xSum += x[i]
		ySum += y[i]
	}
	xMean := xSum / float64(n)
	yMean := ySum / float64(n)

	var covariance, xVar, yVar float64
	for i := 0; i < n; i++ {
		xDiff := x[i] - xMean
		yDiff := y[i] - yMean
		covariance += xDiff * yDiff
		xVar += xDiff * xDiff
		yVar += yDiff * yDiff
	}

	if xVar == 0 || yVar == 0 {
		return 0
	}
	return covariance / (math.Sqrt(xVar) * math.Sqrt(yVar))
}

// AnalyzeCorrelation joins revenue and order counts with sessions per date and correlates revenue with sessions.
// Totals cover every date; only dates with revenue or sessions produce a row.
func AnalyzeCorrelation(orders []domain.OrderData, sessions []domain.SessionData) domain.CorrelationAnalysis {
	revenueByDate := map[string]float64{}
	ordersByDate := map[string]int{}
	for _, o := range orders {
		revenueByDate[o.Date] += o.TotalPrice
		ordersByDate[o.Date]++
	}

	sessionsByDate := map[string]int{}
	for _, s := range sessions {
		sessionsByDate[s.Date] += s.Sessions
	}

	dateSet := map[string]struct{}{}
	for d := range revenueByDate {
		dateSet[d] = struct{}{}
	}
	for d := range sessionsByDate {
		dateSet[d] = struct{}{}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	result := domain.CorrelationAnalysis{CorrelationData: []domain.CorrelationData{}}
	revenueValues := []float64{}
	sessionValues := []float64{}

	for _, date := range dates {
		revenue := revenueByDate[date]
		orderCount := ordersByDate[date]
		sessionCount := sessionsByDate[date]

		var conversionRate, averageOrderValue float64
		if sessionCount > 0 {
			conversionRate = float64(orderCount) / float64(sessionCount) * 100
		}
		if orderCount > 0 {
			averageOrderValue = revenue / float64(orderCount)
		}

		result.TotalRevenue += revenue
		result.TotalOrders += orderCount
		result.TotalSessions += sessionCount

		if revenue > 0 || sessionCount > 0 {
			result.CorrelationData = append(result.CorrelationData, domain.CorrelationData{
				Date:              date,
				Revenue:           revenue,
				Sessions:          sessionCount,
				ConversionRate:    conversionRate,
				AverageOrderValue: averageOrderValue,
			})
			revenueValues = append(revenueValues, revenue)
			sessionValues = append(sessionValues, float64(sessionCount))
		}
	}

	result.PearsonCorrelation = CalculatePearsonCorrelation(revenueValues, sessionValues)
	if result.TotalSessions > 0 {
		result.AverageConversionRate = float64(result.TotalOrders) / float64(result.TotalSessions) * 100
	}
	if result.TotalOrders > 0 {
		result.AverageOrderValue = result.TotalRevenue / float64(result.TotalOrders)
	}
	return result
}

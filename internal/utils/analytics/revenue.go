package analytics

import (
	"sort"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils"
)

const topProductsLimit = 5

// CalculateRevenueSummary aggregates orders into totals, top products by revenue and revenue per UTC day.
func CalculateRevenueSummary(orders []domain.ShopifyOrder) domain.RevenueSummary {
	summary := domain.RevenueSummary{
		TotalOrders:  len(orders),
		TopProducts:  []domain.ProductSales{},
		RevenueByDay: []domain.DailyRevenue{},
	}

	dayIndex := map[string]int{}
	productIndex := map[string]int{}
	products := []domain.ProductSales{}

	for _, order := range orders {
		orderRevenue, _ := utils.ParseAmount(order.TotalPrice)
		summary.TotalRevenue += orderRevenue

		day := orderDay(order.CreatedAt)
		if i, ok := dayIndex[day]; ok {
			summary.RevenueByDay[i].Revenue += orderRevenue
			summary.RevenueByDay[i].Orders++
		} else {
			dayIndex[day] = len(summary.RevenueByDay)
			summary.RevenueByDay = append(summary.RevenueByDay, domain.DailyRevenue{Date: day, Revenue: orderRevenue, Orders: 1})
		}

		for _, item := range order.LineItems {
			summary.TotalProducts += item.Quantity

			price, _ := utils.ParseAmount(item.Price)
			itemRevenue := price * float64(item.Quantity)
			if i, ok := productIndex[item.Title]; ok {
				products[i].Revenue += itemRevenue
				products[i].Quantity += item.Quantity
			} else {
				productIndex[item.Title] = len(products)
				products = append(products, domain.ProductSales{Title: item.Title, Revenue: itemRevenue, Quantity: item.Quantity})
			}
		}
	}

	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}

	// ties keep first-encounter order
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Revenue > products[j].Revenue
	})
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}
	summary.TopProducts = products

	sort.SliceStable(summary.RevenueByDay, func(i, j int) bool {
		return summary.RevenueByDay[i].Date < summary.RevenueByDay[j].Date
	})

	return summary
}

// orderDay returns the UTC calendar date of a Shopify timestamp.
func orderDay(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		if len(createdAt) >= 10 {
			return createdAt[:10]
		}
		return createdAt
	}
	return t.UTC().Format(domain.DateLayout)
}

package domain

// ExpenseSummary aggregates a list of expenses.
type ExpenseSummary struct {
	TotalExpenses     float64            `json:"totalExpenses"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	VendorBreakdown   map[string]float64 `json:"vendorBreakdown"`
	MonthlyTotals     map[string]float64 `json:"monthlyTotals"`
}

// ProductSales is revenue and units attributed to one product title.
type ProductSales struct {
	Title    string  `json:"title"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

// DailyRevenue is revenue and order count for one calendar date.
type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueSummary aggregates a list of orders.
type RevenueSummary struct {
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalOrders       int            `json:"totalOrders"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	TotalProducts     int            `json:"totalProducts"`
	TopProducts       []ProductSales `json:"topProducts"`
	RevenueByDay      []DailyRevenue `json:"revenueByDay"`
}

// OrderData is an order row imported from a CSV export.
type OrderData struct {
	Date       string  `json:"date"`
	OrderID    string  `json:"orderId"`
	TotalPrice float64 `json:"totalPrice"`
}

// SessionData is a storefront traffic row imported from a CSV export.
type SessionData struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
}

// CorrelationData is one joined date of revenue and traffic.
type CorrelationData struct {
	Date              string  `json:"date"`
	Revenue           float64 `json:"revenue"`
	Sessions          int     `json:"sessions"`
	ConversionRate    float64 `json:"conversionRate"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// CorrelationAnalysis is the result of joining revenue with traffic.
type CorrelationAnalysis struct {
	CorrelationData       []CorrelationData `json:"correlationData"`
	PearsonCorrelation    float64           `json:"pearsonCorrelation"`
	TotalRevenue          float64           `json:"totalRevenue"`
	TotalOrders           int               `json:"totalOrders"`
	TotalSessions         int               `json:"totalSessions"`
	AverageConversionRate float64           `json:"averageConversionRate"`
	AverageOrderValue     float64           `json:"averageOrderValue"`
}

// PeriodTotals holds revenue, expense, COGS and profit for a time window.
type PeriodTotals struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	COGS     float64 `json:"cogs"`
	Profit   float64 `json:"profit"`
}

// DashboardSummary is the home screen overview.
type DashboardSummary struct {
	ThisMonth       PeriodTotals `json:"thisMonth"`
	LastThreeMonths PeriodTotals `json:"lastThreeMonths"`
	// RevenueAvailable is false when revenue could not be loaded from the store.
	RevenueAvailable bool `json:"revenueAvailable"`
}

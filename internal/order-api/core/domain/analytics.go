package domain

// Dataset is one data series of a dashboard chart.
type Dataset struct {
	Label string    `json:"label,omitempty"`
	Data  []float64 `json:"data"`
}

// Series is a chart payload: one label per point and the datasets plotted
// against them.
type Series struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type ChartData struct {
	SalesTrend          Series `json:"salesTrend"`
	OrderStatus         Series `json:"orderStatus"`
	ProductCategories   Series `json:"productCategories"`
	MonthlyRevenue      Series `json:"monthlyRevenue"`
	CustomerAcquisition Series `json:"customerAcquisition"`
}

type Summary struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	UniqueCustomers int     `json:"uniqueCustomers"`
}

type ProductStat struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RecentOrder is the dashboard projection of an order.
type RecentOrder struct {
	ID       string  `json:"id"`
	Customer string  `json:"customer"`
	Product  string  `json:"product"`
	Amount   float64 `json:"amount"`
	Status   Status  `json:"status"`
	Date     string  `json:"date"`
}

type Stats struct {
	TotalOrders    int           `json:"totalOrders"`
	TotalRevenue   float64       `json:"totalRevenue"`
	TotalCustomers int           `json:"totalCustomers"`
	MonthlyGrowth  float64       `json:"monthlyGrowth"`
	// ConversionRate needs storefront visit data the API does not collect;
	// it is always 0.
	ConversionRate float64       `json:"conversionRate"`
	TopProducts    []ProductStat `json:"topProducts"`
	RecentOrders   []RecentOrder `json:"recentOrders"`
}

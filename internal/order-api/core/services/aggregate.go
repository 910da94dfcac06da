package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
)

const (
	trendDays     = 7
	revenueMonths = 4
	acquisition   = 4
	topProducts   = 10
	recentOrders  = 10
)

// BuildChartData derives the five dashboard series and the summary from
// orders, relative to now in loc. Every series keeps its shape when orders
// is empty.
func BuildChartData(orders []domain.Order, now time.Time, loc *time.Location) (domain.ChartData, domain.Summary) {
	now = now.In(loc)
	return domain.ChartData{
		SalesTrend:          salesTrend(orders, now, loc),
		OrderStatus:         statusDistribution(orders),
		ProductCategories:   categoryPerformance(orders),
		MonthlyRevenue:      monthlyRevenue(orders, now, loc),
		CustomerAcquisition: customerAcquisition(orders, now, loc),
	}, summarize(orders)
}

// BuildStats derives the headline numbers, top products and recent orders.
func BuildStats(orders []domain.Order, now time.Time, loc *time.Location) domain.Stats {
	sum := summarize(orders)
	return domain.Stats{
		TotalOrders:    sum.TotalOrders,
		TotalRevenue:   sum.TotalRevenue,
		TotalCustomers: sum.UniqueCustomers,
		MonthlyGrowth:  monthlyGrowth(orders, now.In(loc), loc),
		TopProducts:    productPerformance(orders),
		RecentOrders:   latest(orders, loc),
	}
}

func summarize(orders []domain.Order) domain.Summary {
	emails := make(map[string]struct{}, len(orders))
	var revenue float64
	for _, o := range orders {
		revenue += o.Total
		emails[o.Email] = struct{}{}
	}
	return domain.Summary{
		TotalOrders:     len(orders),
		TotalRevenue:    revenue,
		UniqueCustomers: len(emails),
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func startOfMonth(t time.Time, loc *time.Location) time.Time {
	y, m, _ := t.In(loc).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, loc)
}

// revenueBetween sums totals of orders dated in [from, to).
func revenueBetween(orders []domain.Order, from, to time.Time) float64 {
	var sum float64
	for _, o := range orders {
		if !o.Date.Before(from) && o.Date.Before(to) {
			sum += o.Total
		}
	}
	return sum
}

func salesTrend(orders []domain.Order, now time.Time, loc *time.Location) domain.Series {
	labels := make([]string, 0, trendDays)
	data := make([]float64, 0, trendDays)
	today := startOfDay(now, loc)
	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		labels = append(labels, day.Format("Mon"))
		data = append(data, revenueBetween(orders, day, day.AddDate(0, 0, 1)))
	}
	return domain.Series{
		Labels:   labels,
		Datasets: []domain.Dataset{{Label: "Daily Revenue (Rs)", Data: data}},
	}
}

func statusDistribution(orders []domain.Order) domain.Series {
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, o := range orders {
		counts[o.Status]++
	}

	labels := make([]string, len(domain.Statuses))
	data := make([]float64, len(domain.Statuses))
	for i, s := range domain.Statuses {
		labels[i] = statusLabel(s)
		data[i] = float64(counts[s])
	}
	return domain.Series{
		Labels:   labels,
		Datasets: []domain.Dataset{{Data: data}},
	}
}

func statusLabel(s domain.Status) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func categoryPerformance(orders []domain.Order) domain.Series {
	counts := make(map[string]int, len(domain.Categories))
	for _, o := range orders {
		for _, it := range o.Items {
			counts[it.CategoryOf()] += it.Quantity
		}
	}

	labels := make([]string, len(domain.Categories))
	data := make([]float64, len(domain.Categories))
	for i, c := range domain.Categories {
		labels[i] = c
		data[i] = float64(counts[c])
	}
	return domain.Series{
		Labels:   labels,
		Datasets: []domain.Dataset{{Label: "Sales Count", Data: data}},
	}
}

func monthlyRevenue(orders []domain.Order, now time.Time, loc *time.Location) domain.Series {
	labels := make([]string, 0, revenueMonths)
	data := make([]float64, 0, revenueMonths)
	first := startOfMonth(now, loc)
	for i := revenueMonths - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		labels = append(labels, month.Format("Jan"))
		data = append(data, revenueBetween(orders, month, month.AddDate(0, 1, 0)))
	}
	return domain.Series{
		Labels:   labels,
		Datasets: []domain.Dataset{{Label: "Monthly Revenue (Rs)", Data: data}},
	}
}

// customerAcquisition counts distinct emails per calendar week. Weeks start
// on Sunday at midnight and span [start, start+7d).
func customerAcquisition(orders []domain.Order, now time.Time, loc *time.Location) domain.Series {
	labels := make([]string, 0, acquisition)
	data := make([]float64, 0, acquisition)
	today := startOfDay(now, loc)
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	for i := acquisition - 1; i >= 0; i-- {
		start := sunday.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)

		emails := make(map[string]struct{})
		for _, o := range orders {
			if !o.Date.Before(start) && o.Date.Before(end) {
				emails[o.Email] = struct{}{}
			}
		}
		labels = append(labels, fmt.Sprintf("Week %d", acquisition-i))
		data = append(data, float64(len(emails)))
	}
	return domain.Series{
		Labels:   labels,
		Datasets: []domain.Dataset{{Label: "New Customers", Data: data}},
	}
}

// monthlyGrowth compares the current calendar month's revenue with the
// previous one, in percent rounded to one decimal. A zero previous month
// yields 0.
func monthlyGrowth(orders []domain.Order, now time.Time, loc *time.Location) float64 {
	cur := startOfMonth(now, loc)
	prev := cur.AddDate(0, -1, 0)
	curRevenue := revenueBetween(orders, cur, cur.AddDate(0, 1, 0))
	prevRevenue := revenueBetween(orders, prev, cur)
	if prevRevenue <= 0 {
		return 0
	}
	growth := (curRevenue - prevRevenue) / prevRevenue * 100
	return math.Round(growth*10) / 10
}

func productPerformance(orders []domain.Order) []domain.ProductStat {
	byName := make(map[string]*domain.ProductStat)
	for _, o := range orders {
		for _, it := range o.Items {
			ps, ok := byName[it.Name]
			if !ok {
				ps = &domain.ProductStat{Name: it.Name}
				byName[it.Name] = ps
			}
			ps.Sales += it.Quantity
			ps.Revenue += it.Subtotal()
			ps.Orders++
		}
	}

	out := make([]domain.ProductStat, 0, len(byName))
	for _, ps := range byName {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topProducts {
		out = out[:topProducts]
	}
	return out
}

func latest(orders []domain.Order, loc *time.Location) []domain.RecentOrder {
	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	domain.SortNewestFirst(sorted)
	if len(sorted) > recentOrders {
		sorted = sorted[:recentOrders]
	}

	out := make([]domain.RecentOrder, 0, len(sorted))
	for _, o := range sorted {
		out = append(out, domain.RecentOrder{
			ID:       o.OrderNumber,
			Customer: o.Name,
			Product:  o.ItemNames(),
			Amount:   o.Total,
			Status:   o.Status,
			Date:     o.Date.In(loc).Format(time.DateOnly),
		})
	}
	return out
}

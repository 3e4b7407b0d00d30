package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/gokhale/internal/models"
)

// Order list view parameters.
const (
	OrdersPerPage    = 20
	RecentDaysWindow = 10
)

// OrderListQuery selects the subset and ordering of the admin order view.
// Zero values mean "no filter": tab "all", empty search, date filter
// "all", sort by created_at descending, page 1.
type OrderListQuery struct {
	Tab        string
	Search     string
	DateFilter string // all|today|yesterday|week|month|custom
	StartDate  string // YYYY-MM-DD, custom range only
	EndDate    string // YYYY-MM-DD, custom range only
	SortBy     string
	SortOrder  string // asc|desc
	Page       int
}

func (q OrderListQuery) sortDesc() bool {
	return q.SortOrder != "asc"
}

// FilterOrders applies the tab, date and search stages in fixed order,
// then sorts. Pagination is a separate stage so callers can report the
// filtered total. The input slice is not modified.
func FilterOrders(orders []models.Order, q OrderListQuery, now time.Time) []models.Order {
	filtered := make([]models.Order, 0, len(orders))

	recentCutoff := now.AddDate(0, 0, -RecentDaysWindow)
	for _, o := range orders {
		if matchesTab(o, q.Tab, recentCutoff) &&
			matchesDateFilter(o, q, now) &&
			matchesSearch(o, q.Search) {
			filtered = append(filtered, o)
		}
	}

	sortOrders(filtered, q)
	return filtered
}

// Paginate slices one fixed-size page out of the filtered list. Pages
// are 1-based; out-of-range pages return an empty slice.
func Paginate(orders []models.Order, page int) []models.Order {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * OrdersPerPage
	if start >= len(orders) {
		return []models.Order{}
	}
	end := start + OrdersPerPage
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

// TotalPages returns the page count for n filtered orders.
func TotalPages(n int) int {
	if n == 0 {
		return 1
	}
	return (n + OrdersPerPage - 1) / OrdersPerPage
}

func matchesTab(o models.Order, tab string, recentCutoff time.Time) bool {
	switch tab {
	case "", "all":
		return true
	case "recent":
		// Recency ignores status entirely.
		return !o.CreatedAt.Before(recentCutoff)
	default:
		return o.OrderStatus == tab
	}
}

func matchesDateFilter(o models.Order, q OrderListQuery, now time.Time) bool {
	switch q.DateFilter {
	case "", "all":
		return true
	case "today":
		return sameDay(o.CreatedAt, now)
	case "yesterday":
		return sameDay(o.CreatedAt, now.AddDate(0, 0, -1))
	case "week":
		return !o.CreatedAt.Before(startOfDay(now).AddDate(0, 0, -7))
	case "month":
		return !o.CreatedAt.Before(startOfDay(now).AddDate(0, -1, 0))
	case "custom":
		if q.StartDate != "" {
			if start, err := time.ParseInLocation("2006-01-02", q.StartDate, now.Location()); err == nil {
				if o.CreatedAt.Before(start) {
					return false
				}
			}
		}
		if q.EndDate != "" {
			if end, err := time.ParseInLocation("2006-01-02", q.EndDate, now.Location()); err == nil {
				// End boundary is inclusive of the whole day.
				if !o.CreatedAt.Before(end.AddDate(0, 0, 1)) {
					return false
				}
			}
		}
		return true
	default:
		return true
	}
}

func matchesSearch(o models.Order, search string) bool {
	if search == "" {
		return true
	}
	query := strings.ToLower(search)

	return strings.Contains(strconv.Itoa(int(o.ID)), query) ||
		strings.Contains(strings.ToLower(o.RazorpayOrderID), query) ||
		(o.FirstName != "" && strings.Contains(strings.ToLower(o.FirstName), query)) ||
		(o.MobileNumber != "" && strings.Contains(strings.ToLower(o.MobileNumber), query))
}

// sortOrders sorts in place. The sort is stable: ties keep input order.
// Missing values (nil delivery dates) go first ascending, last descending.
func sortOrders(orders []models.Order, q OrderListQuery) {
	desc := q.sortDesc()
	field := q.SortBy
	if field == "" {
		field = "created_at"
	}

	less := func(a, b models.Order) int {
		switch field {
		case "created_at":
			return a.CreatedAt.Compare(b.CreatedAt)
		case "delivery_date":
			switch {
			case a.DeliveryDate == nil && b.DeliveryDate == nil:
				return 0
			case a.DeliveryDate == nil:
				return -1
			case b.DeliveryDate == nil:
				return 1
			default:
				return a.DeliveryDate.Compare(*b.DeliveryDate)
			}
		case "total_amount":
			return compareFloat(a.TotalAmount, b.TotalAmount)
		case "id":
			return compareFloat(float64(a.ID), float64(b.ID))
		case "first_name":
			return strings.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName))
		case "mobile_number":
			return strings.Compare(strings.ToLower(a.MobileNumber), strings.ToLower(b.MobileNumber))
		case "order_status":
			return strings.Compare(strings.ToLower(a.OrderStatus), strings.ToLower(b.OrderStatus))
		case "razorpay_order_id":
			return strings.Compare(strings.ToLower(a.RazorpayOrderID), strings.ToLower(b.RazorpayOrderID))
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		c := less(orders[i], orders[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

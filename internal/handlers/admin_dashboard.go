package handlers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/models"
)

// AdminDashboardHandler serves the back-office analytics widgets.
type AdminDashboardHandler struct {
	db *gorm.DB
}

// NewAdminDashboardHandler constructs AdminDashboardHandler.
func NewAdminDashboardHandler(db *gorm.DB) *AdminDashboardHandler {
	return &AdminDashboardHandler{db: db}
}

// periodWindow maps the dashboard period selector to a lookback window.
func periodWindow(period string, now time.Time) (time.Time, string, error) {
	switch period {
	case "", "weekly":
		return now.AddDate(0, 0, -7), "weekly", nil
	case "monthly":
		return now.AddDate(0, 0, -30), "monthly", nil
	case "yearly":
		return now.AddDate(0, 0, -365), "yearly", nil
	default:
		return time.Time{}, "", fiber.NewError(fiber.StatusBadRequest,
			"period must be weekly, monthly or yearly")
	}
}

// Cancelled and rejected orders never reached the kitchen; they are
// excluded from every revenue figure.
func (h *AdminDashboardHandler) revenueScope(since time.Time) *gorm.DB {
	return h.db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Where("order_status NOT IN ?", []string{models.StatusRejected, models.StatusCancelled})
}

// Summary returns the headline numbers for the selected period.
func (h *AdminDashboardHandler) Summary(c *fiber.Ctx) error {
	since, period, err := periodWindow(c.Query("period"), time.Now())
	if err != nil {
		return err
	}

	var summary struct {
		Revenue   float64
		Orders    int64
		Customers int64
	}

	if err := h.revenueScope(since).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders, COUNT(DISTINCT mobile_number) AS customers").
		Scan(&summary).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period":    period,
			"revenue":   summary.Revenue,
			"orders":    summary.Orders,
			"customers": summary.Customers,
		},
	})
}

// Revenue returns the revenue series for the period chart: daily buckets
// for weekly and monthly views, monthly buckets for the yearly view.
func (h *AdminDashboardHandler) Revenue(c *fiber.Ctx) error {
	since, period, err := periodWindow(c.Query("period"), time.Now())
	if err != nil {
		return err
	}

	bucket := "YYYY-MM-DD"
	if period == "yearly" {
		bucket = "YYYY-MM"
	}

	var series []struct {
		Bucket  string  `json:"bucket"`
		Revenue float64 `json:"revenue"`
		Orders  int64   `json:"orders"`
	}

	if err := h.revenueScope(since).
		Select("to_char(created_at, ?) AS bucket, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders", bucket).
		Group("bucket").
		Order("bucket").
		Scan(&series).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period": period,
			"series": series,
		},
	})
}

const topProductsLimit = 5

// TopProducts ranks products by revenue over the selected period.
func (h *AdminDashboardHandler) TopProducts(c *fiber.Ctx) error {
	since, period, err := periodWindow(c.Query("period"), time.Now())
	if err != nil {
		return err
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("created_at >= ?", since).
		Where("order_status NOT IN ?", []string{models.StatusRejected, models.StatusCancelled}).
		Find(&orders).Error; err != nil {
		return err
	}

	type productSales struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Sales    float64 `json:"sales"`
	}

	totals := make(map[string]*productSales)
	var names []string
	for _, order := range orders {
		for _, item := range order.Items {
			entry, ok := totals[item.Name]
			if !ok {
				entry = &productSales{Name: item.Name}
				totals[item.Name] = entry
				names = append(names, item.Name)
			}
			entry.Quantity += item.Quantity
			entry.Sales += item.Price * float64(item.Quantity)
		}
	}

	ranked := make([]productSales, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, *totals[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Sales > ranked[j].Sales
	})
	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period":   period,
			"products": ranked,
		},
	})
}

// Categories counts catalog entries per category.
func (h *AdminDashboardHandler) Categories(c *fiber.Ctx) error {
	var rows []struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}

	if err := h.db.Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": rows})
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/services"
	"github.com/example/gokhale/internal/utils"
)

// Working set for the in-memory order view. The back office only ever
// browses recent history; older orders stay queryable by id.
const orderWorkingSet = 500

// Statuses that put an order on the kitchen's plate.
var defaultKitchenStatuses = []string{
	models.StatusConfirmed,
	models.StatusInProcess,
}

// AdminOrderHandler serves the back-office order views.
type AdminOrderHandler struct {
	db *gorm.DB
}

// NewAdminOrderHandler constructs AdminOrderHandler.
func NewAdminOrderHandler(db *gorm.DB) *AdminOrderHandler {
	return &AdminOrderHandler{db: db}
}

func (h *AdminOrderHandler) loadWorkingSet() ([]models.Order, error) {
	var orders []models.Order
	err := h.db.Preload("Items").
		Order("created_at DESC").
		Limit(orderWorkingSet).
		Find(&orders).Error
	return orders, err
}

func listQueryFromRequest(c *fiber.Ctx) services.OrderListQuery {
	return services.OrderListQuery{
		Tab:        c.Query("tab", "all"),
		Search:     c.Query("search"),
		DateFilter: c.Query("date_filter", "all"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		SortBy:     c.Query("sort_by", "created_at"),
		SortOrder:  c.Query("sort_order", "desc"),
		Page:       utils.ParseInt(c.Query("page"), 1),
	}
}

func orderView(o models.Order) fiber.Map {
	return fiber.Map{
		"id":                o.ID,
		"created_at":        o.CreatedAt,
		"first_name":        o.FirstName,
		"mobile_number":     o.MobileNumber,
		"razorpay_order_id": o.RazorpayOrderID,
		"order_status":      o.OrderStatus,
		"total_amount":      o.TotalAmount,
		"delivery_date":     o.DeliveryDate,
		"items":             o.Items,
		"address":           o.Address(),
		"next_statuses":     models.NextStatuses(o.OrderStatus),
	}
}

// tabCounts summarizes the working set per tab for the dashboard chips.
func tabCounts(orders []models.Order, now time.Time) fiber.Map {
	counts := fiber.Map{"all": len(orders)}
	recentCutoff := now.AddDate(0, 0, -services.RecentDaysWindow)

	recent := 0
	byStatus := make(map[string]int)
	for _, o := range orders {
		if !o.CreatedAt.Before(recentCutoff) {
			recent++
		}
		byStatus[o.OrderStatus]++
	}

	counts["recent"] = recent
	for _, status := range models.AllowedStatuses {
		counts[status] = byStatus[status]
	}
	return counts
}

// ListOrders runs the full view pipeline: tab, date filter, search,
// sort, then pagination.
func (h *AdminOrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.loadWorkingSet()
	if err != nil {
		return err
	}

	q := listQueryFromRequest(c)
	now := time.Now()

	filtered := services.FilterOrders(orders, q, now)
	page := services.Paginate(filtered, q.Page)

	result := make([]fiber.Map, 0, len(page))
	for _, o := range page {
		result = append(result, orderView(o))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"counts":  tabCounts(orders, now),
		"pagination": fiber.Map{
			"page":        q.Page,
			"per_page":    services.OrdersPerPage,
			"total":       len(filtered),
			"total_pages": services.TotalPages(len(filtered)),
		},
	})
}

// ExportOrders streams the filtered (unpaginated) view as CSV.
func (h *AdminOrderHandler) ExportOrders(c *fiber.Ctx) error {
	orders, err := h.loadWorkingSet()
	if err != nil {
		return err
	}

	q := listQueryFromRequest(c)
	filtered := services.FilterOrders(orders, q, time.Now())

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "created_at", "customer", "mobile", "status",
		"total_amount", "delivery_date", "pincode", "items",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, o := range filtered {
		deliveryDate := ""
		if o.DeliveryDate != nil {
			deliveryDate = o.DeliveryDate.Format("2006-01-02")
		}

		var items []string
		for _, item := range o.Items {
			items = append(items, fmt.Sprintf("%s (%s) x%d", item.Name, item.Variant, item.Quantity))
		}

		record := []string{
			strconv.Itoa(int(o.ID)),
			o.CreatedAt.Format(time.RFC3339),
			o.FirstName,
			o.MobileNumber,
			o.OrderStatus,
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			deliveryDate,
			o.AddressPincode,
			strings.Join(items, "; "),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(buf.String())
}

// GetOrder returns one order with its lines, by id.
func (h *AdminOrderHandler) GetOrder(c *fiber.Ctx) error {
	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": orderView(order)})
}

type updateStatusRequest struct {
	Status string `json:"order_status"`
}

// UpdateStatus moves one order along the status chain. Illegal moves
// are rejected with the legal ones listed.
func (h *AdminOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !models.IsValidStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status: "+req.Status)
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !models.CanTransition(order.OrderStatus, req.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf(
			"cannot move order from %s to %s, allowed: %s",
			order.OrderStatus, req.Status,
			strings.Join(models.NextStatuses(order.OrderStatus), ", "),
		))
	}

	if err := h.db.Model(&order).Update("order_status", req.Status).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":            order.ID,
			"order_status":  req.Status,
			"next_statuses": models.NextStatuses(req.Status),
		},
	})
}

type bulkStatusRequest struct {
	OrderIDs []uint `json:"ids"`
	Status   string `json:"order_status"`
}

type bulkFailure struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

// BulkUpdateStatus applies one status to many orders. Each order is
// validated on its own; one bad id never sinks the batch.
func (h *AdminOrderHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var req bulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.OrderIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "ids must not be empty")
	}
	if !models.IsValidStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status: "+req.Status)
	}

	updated := make([]uint, 0, len(req.OrderIDs))
	failed := make([]bulkFailure, 0)

	// Every id gets its own verdict; one failure never aborts the batch.
	for _, id := range req.OrderIDs {
		var order models.Order
		if err := h.db.First(&order, "id = ?", id).Error; err != nil {
			reason := "database error"
			if err == gorm.ErrRecordNotFound {
				reason = "not found"
			}
			failed = append(failed, bulkFailure{ID: id, Reason: reason})
			continue
		}

		if !models.CanTransition(order.OrderStatus, req.Status) {
			failed = append(failed, bulkFailure{
				ID:     id,
				Reason: fmt.Sprintf("cannot move from %s to %s", order.OrderStatus, req.Status),
			})
			continue
		}

		if err := h.db.Model(&order).Update("order_status", req.Status).Error; err != nil {
			failed = append(failed, bulkFailure{ID: id, Reason: "database error"})
			continue
		}
		updated = append(updated, id)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"status":  req.Status,
			"updated": updated,
			"failed":  failed,
		},
	})
}

// KitchenPrep aggregates active orders into per-product preparation
// totals. The status query param (comma-separated) narrows which orders
// count.
func (h *AdminOrderHandler) KitchenPrep(c *fiber.Ctx) error {
	statuses := defaultKitchenStatuses
	if raw := c.Query("status"); raw != "" {
		statuses = nil
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if !models.IsValidStatus(s) {
				return fiber.NewError(fiber.StatusBadRequest, "unknown status: "+s)
			}
			statuses = append(statuses, s)
		}
		if len(statuses) == 0 {
			statuses = defaultKitchenStatuses
		}
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("order_status IN ?", statuses).
		Find(&orders).Error; err != nil {
		return err
	}

	items := services.AggregateKitchenPrep(orders, statuses)

	return c.JSON(fiber.Map{
		"success":  true,
		"data":     items,
		"statuses": statuses,
		"count":    len(items),
	})
}

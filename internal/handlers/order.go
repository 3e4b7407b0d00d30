package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/middleware"
	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/services"
	"github.com/example/gokhale/internal/utils"
)

// OrderHandler drives the customer checkout flow: gateway order
// creation, payment verification and order history.
type OrderHandler struct {
	db       *gorm.DB
	razorpay *services.RazorpayService
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, razorpay *services.RazorpayService, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{db: db, razorpay: razorpay, telegram: telegram}
}

// CreateOrder registers a gateway order for the caller's current cart
// total. The amount is always computed server-side.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.CartItem
	if err := h.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}

	totals := services.ComputeCartTotals(items)

	gatewayOrder, err := h.razorpay.CreateOrder(totals.Total)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "payment gateway unavailable")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"order_id": gatewayOrder.ID,
		"amount":   gatewayOrder.Amount,
		"currency": gatewayOrder.Currency,
		"key_id":   h.razorpay.KeyID(),
		"totals":   totals,
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	AddressID         uint   `json:"address_id"`
	DeliveryDate      string `json:"delivery_date"` // YYYY-MM-DD, optional
}

// VerifyPayment validates the checkout signature, persists the order
// from the server-side cart and clears the cart. The admin chat is
// notified off the request path.
func (h *OrderHandler) VerifyPayment(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing payment fields")
	}

	if !h.razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return fiber.NewError(fiber.StatusBadRequest, "payment signature verification failed")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var address models.UserAddress
	if err := h.db.First(&address, "id = ? AND user_id = ?", req.AddressID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "delivery address not found")
		}
		return err
	}

	var cartItems []models.CartItem
	if err := h.db.Where("user_id = ?", userID).Order("id").Find(&cartItems).Error; err != nil {
		return err
	}
	if len(cartItems) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid delivery_date, expected YYYY-MM-DD")
		}
		deliveryDate = &parsed
	}

	totals := services.ComputeCartTotals(cartItems)

	order := models.Order{
		UserID:          userID,
		FirstName:       user.FirstName,
		MobileNumber:    user.MobileNumber,
		RazorpayOrderID: req.RazorpayOrderID,
		OrderStatus:     models.StatusPlaced,
		TotalAmount:     totals.Total,
		DeliveryDate:    deliveryDate,
		AddressLine1:    address.Line1,
		AddressCity:     address.City,
		AddressState:    address.State,
		AddressPincode:  address.Pincode,
	}
	for _, item := range cartItems {
		productID := item.ProductID
		line := models.OrderItem{
			Name:          item.Name,
			Variant:       item.Variant,
			Quantity:      item.Quantity,
			Weight:        item.Weight,
			Price:         item.Price,
			OriginalPrice: services.DisplayPrice(item.Price),
		}
		if productID != 0 {
			line.ProductID = &productID
		}
		order.Items = append(order.Items, line)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	}); err != nil {
		return err
	}

	go func(order models.Order) {
		notification := services.OrderNotification{
			OrderID:      order.ID,
			CustomerName: order.FirstName,
			Phone:        order.MobileNumber,
			TotalAmount:  order.TotalAmount,
			Pincode:      order.AddressPincode,
		}
		for _, item := range order.Items {
			notification.Items = append(notification.Items, services.OrderItemNotification{
				Name:     item.Name,
				Variant:  item.Variant,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
		if err := h.telegram.NotifyNewOrder(notification); err != nil {
			log.Printf("[Order] Admin notification failed for order %d: %v", order.ID, err)
		}
	}(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order":   order,
			"address": order.Address(),
		},
	})
}

// ListOrders returns a page of the caller's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	p := utils.ParsePagination(c)

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(orders))
	for i := range orders {
		result = append(result, fiber.Map{
			"order":         orders[i],
			"address":       orders[i].Address(),
			"next_statuses": models.NextStatuses(orders[i].OrderStatus),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"count":   len(result),
		"page":    p.Page,
		"limit":   p.Limit,
	})
}

// GetOrder returns one of the caller's orders.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"order":   order,
			"address": order.Address(),
		},
	})
}

// CancelOrder lets a customer cancel an order that has not entered the
// kitchen yet.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !models.CanTransition(order.OrderStatus, models.StatusCancelled) {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			"order can no longer be cancelled")
	}

	if err := h.db.Model(&order).Update("order_status", models.StatusCancelled).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_status": models.StatusCancelled,
		},
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/middleware"
	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/services"
)

// CartHandler manages the per-customer server-side cart.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

func (h *CartHandler) loadItems(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := h.db.Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func cartResponse(items []models.CartItem) fiber.Map {
	return fiber.Map{
		"success": true,
		"items":   items,
		"totals":  services.ComputeCartTotals(items),
	}
}

// GetCart returns the caller's cart lines and totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.loadItems(userID)
	if err != nil {
		return err
	}

	return c.JSON(cartResponse(items))
}

type cartItemRequest struct {
	ProductID uint   `json:"product_id"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product variant to the cart, merging with an existing
// line for the same product and variant. Price and weight come from the
// catalog, never from the client.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ? AND is_enabled = ?", req.ProductID, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var price float64
	found := false
	for _, v := range product.Variants() {
		if v.Packing == req.Variant {
			price = v.Price
			found = true
			break
		}
	}
	if !found {
		return fiber.NewError(fiber.StatusBadRequest, "unknown variant")
	}

	var line models.CartItem
	err := h.db.Where("user_id = ? AND product_id = ? AND variant = ?", userID, req.ProductID, req.Variant).
		First(&line).Error
	switch err {
	case nil:
		line.Quantity += req.Quantity
		line.Price = price
		if err := h.db.Save(&line).Error; err != nil {
			return err
		}
	case gorm.ErrRecordNotFound:
		line = models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Name:      product.ItemName,
			Variant:   req.Variant,
			Quantity:  req.Quantity,
			Weight:    services.ParseVariantGrams(req.Variant),
			Price:     price,
		}
		if err := h.db.Create(&line).Error; err != nil {
			return err
		}
	default:
		return err
	}

	items, err := h.loadItems(userID)
	if err != nil {
		return err
	}

	return c.JSON(cartResponse(items))
}

type cartSyncRequest struct {
	Items []struct {
		ProductID uint    `json:"product_id"`
		Name      string  `json:"name"`
		Variant   string  `json:"variant"`
		Quantity  int     `json:"quantity"`
		Weight    int     `json:"weight"`
		Price     float64 `json:"price"`
	} `json:"items"`
}

// SyncCart replaces the server-side cart with the client's local copy.
// Last write wins; there is no versioning.
func (h *CartHandler) SyncCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req cartSyncRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			if item.Quantity <= 0 {
				continue
			}
			line := models.CartItem{
				UserID:    userID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Variant:   item.Variant,
				Quantity:  item.Quantity,
				Weight:    item.Weight,
				Price:     item.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	items, err := h.loadItems(userID)
	if err != nil {
		return err
	}

	return c.JSON(cartResponse(items))
}

// ClearCart removes every line from the caller's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}

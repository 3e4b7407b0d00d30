package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/utils"
)

// AdminProductHandler manages the back-office catalog.
type AdminProductHandler struct {
	db *gorm.DB
}

// NewAdminProductHandler constructs AdminProductHandler.
func NewAdminProductHandler(db *gorm.DB) *AdminProductHandler {
	return &AdminProductHandler{db: db}
}

// adminProductView exposes both the legacy slot fields the dashboard
// edits and the normalized variant list the storefront reads.
func adminProductView(p models.Product) fiber.Map {
	return fiber.Map{
		"id":              p.ID,
		"item_name":       p.ItemName,
		"category":        p.Category,
		"description":     p.Description,
		"image_url":       p.ImageSrc,
		"shelf_life_days": p.ShelfLifeDays,
		"lead_time_days":  p.LeadTimeDays,
		"is_enabled":      p.IsEnabled,
		"packing_01":      p.Packing01,
		"price_01":        p.Price01,
		"packing_02":      p.Packing02,
		"price_02":        p.Price02,
		"packing_03":      p.Packing03,
		"price_03":        p.Price03,
		"packing_04":      p.Packing04,
		"price_04":        p.Price04,
		"variants":        p.Variants(),
		"max_price":       p.MaxPrice(),
	}
}

type productRequest struct {
	ItemName      string  `json:"item_name"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
	ShelfLifeDays int     `json:"shelf_life_days"`
	LeadTimeDays  int     `json:"lead_time_days"`
	Packing01     string  `json:"packing_01"`
	Price01       float64 `json:"price_01"`
	Packing02     string  `json:"packing_02"`
	Price02       float64 `json:"price_02"`
	Packing03     string  `json:"packing_03"`
	Price03       float64 `json:"price_03"`
	Packing04     string  `json:"packing_04"`
	Price04       float64 `json:"price_04"`
}

func (r productRequest) validate() error {
	if r.ItemName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "item_name is required")
	}
	for i, price := range []float64{r.Price01, r.Price02, r.Price03, r.Price04} {
		if price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("price_%02d must not be negative", i+1))
		}
	}
	if r.Price01 <= 0 && r.Price02 <= 0 && r.Price03 <= 0 && r.Price04 <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one variant price is required")
	}
	return nil
}

func (r productRequest) apply(p *models.Product) {
	p.ItemName = r.ItemName
	p.Category = r.Category
	p.Description = r.Description
	p.ImageSrc = r.ImageURL
	p.ShelfLifeDays = r.ShelfLifeDays
	p.LeadTimeDays = r.LeadTimeDays
	p.Packing01 = r.Packing01
	p.Price01 = r.Price01
	p.Packing02 = r.Packing02
	p.Price02 = r.Price02
	p.Packing03 = r.Packing03
	p.Price03 = r.Price03
	p.Packing04 = r.Packing04
	p.Price04 = r.Price04
}

// ListProducts returns the whole catalog, disabled products included.
func (h *AdminProductHandler) ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Order("item_name").Find(&products).Error; err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		result = append(result, adminProductView(p))
	}

	return c.JSON(fiber.Map{"success": true, "data": result, "count": len(result)})
}

// AddProduct creates a catalog entry. New products start enabled.
func (h *AdminProductHandler) AddProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	product := models.Product{IsEnabled: true}
	req.apply(&product)

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    adminProductView(product),
	})
}

// UpdateProduct replaces a catalog entry's editable fields. The enabled
// flag is toggled separately.
func (h *AdminProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	req.apply(&product)

	if err := h.db.Save(&product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": adminProductView(product)})
}

// DeleteProduct removes a catalog entry. Past order lines keep their
// copied name and price.
func (h *AdminProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("product %d deleted", id)})
}

// ToggleProduct flips one product's storefront visibility.
func (h *AdminProductHandler) ToggleProduct(c *fiber.Ctx) error {
	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	// Update mutates the loaded struct; capture the target state first so
	// the response reflects what was stored.
	enabled := !product.IsEnabled
	if err := h.db.Model(&product).Update("is_enabled", enabled).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":         product.ID,
			"is_enabled": enabled,
		},
	})
}

// ToggleAll enables or disables the entire catalog in one shot.
// action=1 enables, action=0 disables.
func (h *AdminProductHandler) ToggleAll(c *fiber.Ctx) error {
	action := c.Query("action")
	if action != "0" && action != "1" {
		return fiber.NewError(fiber.StatusBadRequest, "action must be 0 or 1")
	}
	enabled := action == "1"

	result := h.db.Model(&models.Product{}).
		Where("is_enabled <> ?", enabled).
		Update("is_enabled", enabled)
	if result.Error != nil {
		return result.Error
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"is_enabled": enabled,
			"changed":    result.RowsAffected,
		},
	})
}

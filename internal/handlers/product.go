package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/utils"
)

// ProductHandler serves the public storefront catalog.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// productView is the normalized catalog shape: legacy packing/price slots
// collapsed into a variants list.
func productView(p models.Product) fiber.Map {
	return fiber.Map{
		"id":              p.ID,
		"item_name":       p.ItemName,
		"category":        p.Category,
		"description":     p.Description,
		"image_url":       p.ImageSrc,
		"variants":        p.Variants(),
		"max_price":       p.MaxPrice(),
		"shelf_life_days": p.ShelfLifeDays,
		"lead_time_days":  p.LeadTimeDays,
	}
}

// ListProducts returns all enabled products for the storefront.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Where("is_enabled = ?", true).Order("item_name").Find(&products).Error; err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		result = append(result, productView(p))
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// GetProduct returns a single enabled product.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id := utils.ParseInt(c.Params("id"), 0)
	if id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ? AND is_enabled = ?", id, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": productView(product)})
}

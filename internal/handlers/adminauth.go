package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/config"
	"github.com/example/gokhale/internal/middleware"
	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/utils"
)

// AdminAuthHandler serves the back-office login endpoints.
type AdminAuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminAuthHandler constructs AdminAuthHandler.
func NewAdminAuthHandler(db *gorm.DB, cfg *config.Config) *AdminAuthHandler {
	return &AdminAuthHandler{db: db, cfg: cfg}
}

type adminLoginRequest struct {
	Email    string `json:"email" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login authenticates a back-office operator. The dashboard posts
// form-encoded credentials with the email in the username field.
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	var admin models.Admin
	if err := h.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, "admin", h.cfg.AdminTokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"access_token": token,
		"token_type":   "bearer",
		"admin": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// Me returns the authenticated operator's profile.
func (h *AdminAuthHandler) Me(c *fiber.Ctx) error {
	adminID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var admin models.Admin
	if err := h.db.First(&admin, "id = ?", adminID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "admin not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the operator's password after re-checking the
// current one.
func (h *AdminAuthHandler) ChangePassword(c *fiber.Ctx) error {
	adminID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "new password must be at least 6 characters")
	}

	var admin models.Admin
	if err := h.db.First(&admin, "id = ?", adminID).Error; err != nil {
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		return fiber.NewError(fiber.StatusUnauthorized, "current password is incorrect")
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := h.db.Model(&admin).Update("password_hash", passwordHash).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "password changed"})
}

package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/gokhale/internal/config"
	"github.com/example/gokhale/internal/middleware"
	"github.com/example/gokhale/internal/models"
	"github.com/example/gokhale/internal/services"
	"github.com/example/gokhale/internal/utils"
)

func TestListOrdersPaginates(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}

	user := models.User{FirstName: "Asha", MobileNumber: "9876543210", Role: "user"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < 25; i++ {
		order := models.Order{UserID: user.ID, OrderStatus: models.StatusPlaced, TotalAmount: float64(100 + i)}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}

	h := NewOrderHandler(db, services.NewRazorpayService("", ""), services.NewTelegramService("", ""))

	app := fiber.New()
	app.Get("/api/orders", middleware.AuthMiddleware(cfg), h.ListOrders)

	token, err := utils.GenerateToken(cfg.JWTSecret, user.ID, "user", cfg.TokenExpires)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
		Count   int               `json:"count"`
		Page    int               `json:"page"`
		Limit   int               `json:"limit"`
	}

	get := func(target string) {
		t.Helper()
		req := httptest.NewRequest(fiber.MethodGet, target, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := doJSON(t, app, req, &body)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", target, resp.StatusCode)
		}
	}

	get("/api/orders")
	if body.Count != 20 || body.Page != 1 || body.Limit != 20 {
		t.Errorf("default page: count=%d page=%d limit=%d, want 20/1/20", body.Count, body.Page, body.Limit)
	}

	get("/api/orders?page=2&limit=10")
	if body.Count != 10 || body.Page != 2 {
		t.Errorf("page 2 of 10: count=%d page=%d, want 10/2", body.Count, body.Page)
	}

	get("/api/orders?page=3&limit=10")
	if body.Count != 5 {
		t.Errorf("last page: count=%d, want 5", body.Count)
	}
}

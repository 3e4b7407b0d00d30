package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gokhale/internal/config"
	"github.com/example/gokhale/internal/handlers"
	"github.com/example/gokhale/internal/middleware"
	"github.com/example/gokhale/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	razorpayService := services.NewRazorpayService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db, razorpayService, telegramService)

	adminAuthHandler := handlers.NewAdminAuthHandler(db, cfg)
	adminOrderHandler := handlers.NewAdminOrderHandler(db)
	adminProductHandler := handlers.NewAdminProductHandler(db)
	adminDashboardHandler := handlers.NewAdminDashboardHandler(db)

	api := app.Group("/api")

	// Public storefront routes
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/reset-password", authHandler.ResetPassword)

	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Protected customer routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/user/addresses", authHandler.ListAddresses)
	protected.Post("/user/address", authHandler.CreateAddress)
	protected.Put("/user/address/:id", authHandler.UpdateAddress)
	protected.Delete("/user/address/:id", authHandler.DeleteAddress)

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/add", cartHandler.AddItem)
	protected.Post("/cart/sync", cartHandler.SyncCart)
	protected.Post("/cart/clear", cartHandler.ClearCart)

	protected.Post("/create-order", orderHandler.CreateOrder)
	protected.Post("/verify-payment", orderHandler.VerifyPayment)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Patch("/cancel-order/:id", orderHandler.CancelOrder)

	// Back-office login
	adminAuth := app.Group("/admins_ops")
	adminAuth.Post("/login", adminAuthHandler.Login)
	adminAuth.Get("/me", middleware.AdminAuthMiddleware(cfg), adminAuthHandler.Me)
	adminAuth.Post("/change-password", middleware.AdminAuthMiddleware(cfg), adminAuthHandler.ChangePassword)

	// Back-office routes
	admin := app.Group("/admin", middleware.AdminAuthMiddleware(cfg))

	admin.Get("/orders", adminOrderHandler.ListOrders)
	admin.Get("/orders/export", adminOrderHandler.ExportOrders)
	admin.Post("/orders/bulk-status", adminOrderHandler.BulkUpdateStatus)
	admin.Get("/orders/:id", adminOrderHandler.GetOrder)
	admin.Patch("/orders/:id", adminOrderHandler.UpdateStatus)

	admin.Get("/kitchen-prep", adminOrderHandler.KitchenPrep)

	admin.Get("/products-state", adminProductHandler.ListProducts)
	admin.Post("/products/add", adminProductHandler.AddProduct)
	admin.Patch("/products/toggle-all", adminProductHandler.ToggleAll)
	admin.Put("/products/:id", adminProductHandler.UpdateProduct)
	admin.Delete("/products/:id", adminProductHandler.DeleteProduct)
	admin.Patch("/products/:id/toggle", adminProductHandler.ToggleProduct)

	admin.Get("/dashboard/summary", adminDashboardHandler.Summary)
	admin.Get("/dashboard/revenue", adminDashboardHandler.Revenue)
	admin.Get("/dashboard/top-products", adminDashboardHandler.TopProducts)
	admin.Get("/dashboard/categories", adminDashboardHandler.Categories)
}

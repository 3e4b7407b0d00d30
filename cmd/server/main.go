package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/gokhale/internal/config"
	"github.com/example/gokhale/internal/database"
	"github.com/example/gokhale/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := database.SeedDefaultAdmin(db, cfg.DefaultAdminEmail, cfg.DefaultAdminPass); err != nil {
		log.Fatalf("failed to seed default admin: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Gokhale Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

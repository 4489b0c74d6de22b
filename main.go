package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/sokhnamaimouna97/Paps/config"
	"github.com/sokhnamaimouna97/Paps/handlers"
	"github.com/sokhnamaimouna97/Paps/internal/ws"
	"github.com/sokhnamaimouna97/Paps/middleware"
	"github.com/sokhnamaimouna97/Paps/models"
	"github.com/sokhnamaimouna97/Paps/services"
	"github.com/sokhnamaimouna97/Paps/utils"
)

func main() {
	cfg := config.LoadConfig()

	// Prices serialize as JSON numbers, matching the legacy API
	decimal.MarshalJSONWithoutQuotes = true

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		if err := config.ResetAndMigrate(db); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	} else {
		if err := config.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
	}

	if err := os.MkdirAll("./uploads/products", 0o755); err != nil {
		log.Fatal("Failed to create uploads directory:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Paps Backend",
		ServerHeader: "Paps Backend Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Erreur serveur"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			return c.Status(code).JSON(models.ErrorResponse(msg, nil))
		},
	})

	middleware.SetupMiddleware(app)

	// Order event feed for merchant dashboards
	hub := ws.NewHub()
	go hub.Run()

	// Services
	storefrontService := services.NewStorefrontService(db)
	orderService := services.NewOrderService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(db)
	storefrontHandler := handlers.NewStorefrontHandler(storefrontService)
	orderHandler := handlers.NewOrderHandler(orderService, hub)
	productHandler := handlers.NewProductHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	courierHandler := handlers.NewCourierHandler(db)
	deliveryHandler := handlers.NewDeliveryHandler(orderService, hub)
	uploadHandler := handlers.NewUploadHandler()
	feedHandler := handlers.NewFeedHandler(hub)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	// Uploaded product images
	app.Static("/uploads", "./uploads")

	// Public storefront routes (boutique invitation links)
	client := app.Group("/client")
	client.Get("/boutiques/:boutiqueId", storefrontHandler.GetBoutique)
	client.Get("/boutiques/:boutiqueId/products/search", storefrontHandler.SearchProducts)
	client.Get("/boutiques/:boutiqueId/products/:productId", storefrontHandler.GetProduct)
	client.Get("/boutiques/:boutiqueId/products", storefrontHandler.GetProducts)
	client.Get("/boutiques/:boutiqueId/categories", storefrontHandler.GetCategories)
	client.Post("/orders/guest", orderHandler.CreateGuestOrder)

	// Auth
	api := app.Group("/api")
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	// Merchant back office
	merchantAuth := utils.RequireRole(models.RoleCommercant)

	products := api.Group("/products", utils.AuthMiddleware, merchantAuth)
	products.Get("/", productHandler.GetMyProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	categories := api.Group("/categories", utils.AuthMiddleware, merchantAuth)
	categories.Get("/", categoryHandler.GetCategories)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Delete("/:id", categoryHandler.DeleteCategory)

	orders := api.Group("/orders", utils.AuthMiddleware, merchantAuth)
	orders.Get("/", orderHandler.GetOrders)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Put("/:id/assign", orderHandler.AssignCourier)

	api.Get("/couriers", utils.AuthMiddleware, merchantAuth, courierHandler.ListCouriers)
	api.Put("/settings", utils.AuthMiddleware, merchantAuth, authHandler.UpdateSettings)
	api.Post("/upload", utils.AuthMiddleware, merchantAuth, uploadHandler.UploadImage)

	// Courier surface
	deliveries := api.Group("/deliveries", utils.AuthMiddleware, utils.RequireRole(models.RoleLivreur))
	deliveries.Get("/", deliveryHandler.GetDeliveries)
	deliveries.Put("/:id/status", deliveryHandler.UpdateDeliveryStatus)

	// Merchant order feed
	app.Get("/ws/orders",
		utils.AuthMiddleware,
		utils.RequireRole(models.RoleCommercant),
		feedHandler.WebSocketUpgradeMiddleware,
		feedHandler.Handler())

	middleware.SetupErrorHandler(app)

	log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)

	if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pixmart/pixmart/config"
	"github.com/pixmart/pixmart/internal/auth"
	"github.com/pixmart/pixmart/internal/discord"
	handler "github.com/pixmart/pixmart/internal/handler/http"
	"github.com/pixmart/pixmart/internal/logger"
	"github.com/pixmart/pixmart/internal/mercadopago"
	"github.com/pixmart/pixmart/internal/middleware"
	"github.com/pixmart/pixmart/internal/repository"
	"github.com/pixmart/pixmart/internal/repository/postgres"
	"github.com/pixmart/pixmart/internal/service"
	"github.com/pixmart/pixmart/internal/worker"
	"go.uber.org/zap"
)

const authTokenKey = "9c1185a5c5e9fc54612808977ee8f548"

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// external clients
	gateway := mercadopago.NewClient(cfg.MercadoPagoAddr, cfg.MercadoPagoToken)
	bot := discord.NewClient(cfg.DiscordAddr, cfg.DiscordToken)

	// dependency injection
	// repositories
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// auth
	authService := service.NewAuthService(cfg.AdminLogin, cfg.AdminPasswordHash, token)
	authHandler := handler.NewAuthHandler(authService)

	// payment and delivery pipeline
	pixService := service.NewPixService(orderRepo, productRepo, gateway)
	deliveryService := service.NewDeliveryService(orderRepo, productRepo, settingsRepo, bot)
	webhookService := service.NewWebhookService(orderRepo, gateway, deliveryService)
	webhookHandler := handler.NewWebhookHandler(webhookService)

	// orders
	orderService := service.NewOrderService(orderRepo, productRepo, pixService, bot)
	orderHandler := handler.NewOrderHandler(orderService)

	// products
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)

	// settings
	settingsService := service.NewSettingsService(settingsRepo, bot)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	// the gateway posts notifications here without credentials; the
	// reconciler trusts only its own re-fetch of the payment
	router.Post("/api/webhook/mercadopago", webhookHandler.PaymentNotification())
	router.Post("/api/login", authHandler.LoginUser())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token))
		group.Post("/api/orders", orderHandler.CreateOrder())
		group.Get("/api/orders", orderHandler.ListOrders())
		group.Get("/api/orders/{orderID}", orderHandler.GetOrder())
		group.Post("/api/products", productHandler.CreateProduct())
		group.Get("/api/products", productHandler.ListProducts())
		group.Get("/api/products/{productID}", productHandler.GetProduct())
		group.Put("/api/products/{productID}", productHandler.UpdateProduct())
		group.Delete("/api/products/{productID}", productHandler.DeleteProduct())
		group.Get("/api/settings", settingsHandler.GetSettings())
		group.Put("/api/settings", settingsHandler.UpdateSettings())
		group.Get("/api/discord/channels", settingsHandler.ListChannels())
	})

	// re-delivery sweep for orders stuck in paid
	processor := worker.NewDeliveryProcessor(deliveryService)
	go processor.ProcessDeliveries(ctx)

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}

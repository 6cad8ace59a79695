package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"StorefrontAPI/external/resend"
	stripeclient "StorefrontAPI/external/stripe"

	"StorefrontAPI/internal/db"
	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/repository"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// ======================
	// EXTERNALS
	// ======================
	stripeClient, err := stripeclient.NewClient()
	if err != nil {
		log.Fatal(err)
	}

	var mailer services.Mailer
	if os.Getenv("ORDER_EMAILS") == "true" {
		m, err := resend.NewResendMailer("Storefront<orders@resend.dev>")
		if err != nil {
			log.Fatal(err)
		}
		mailer = m
	}

	// ======================
	// REPOSITORIES
	// (file-per-record by default, Postgres when DATABASE_URL is set)
	// ======================
	productRepo := repository.NewProductRepository(filepath.Join(dataDir, "products"))

	var orderRepo repository.OrderRepository
	var subRepo repository.SubscriptionRepository
	if os.Getenv("DATABASE_URL") != "" {
		if err := db.RunMigrations(); err != nil {
			log.Fatal(err)
		}
		pool, err := db.Connect()
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		orderRepo = repository.NewOrderPgRepository(pool)
		subRepo = repository.NewSubscriptionPgRepository(pool)
	} else {
		ofr, err := repository.NewOrderFileRepository(filepath.Join(dataDir, "orders"))
		if err != nil {
			log.Fatal(err)
		}
		sfr, err := repository.NewSubscriptionFileRepository(filepath.Join(dataDir, "subscriptions"))
		if err != nil {
			log.Fatal(err)
		}
		orderRepo = ofr
		subRepo = sfr
	}

	// ======================
	// SERVICES
	// ======================
	catalogSvc := services.NewCatalogService(productRepo, stripeClient)
	checkoutSvc := services.NewCheckoutService(catalogSvc, stripeClient, baseURL)
	webhookSvc := services.NewWebhookService(orderRepo, subRepo, stripeClient, mailer)
	statsSvc := services.NewStatsService(orderRepo, subRepo)
	billingSvc := services.NewBillingService(stripeClient, baseURL)

	// ======================
	// RATE LIMITER
	// (in-memory per instance, Redis when shared state is available)
	// ======================
	var limiterStore middleware.LimiterStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		limiterStore = middleware.NewRedisLimiterStore(redis.NewClient(&redis.Options{Addr: addr}))
	} else {
		limiterStore = middleware.NewMemoryLimiterStore()
	}
	limit := middleware.RateLimit(limiterStore, 20, time.Minute)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerProductRoutes(api, catalogSvc)
	registerCheckoutRoutes(api, checkoutSvc, limit)
	registerWebhookRoutes(api, stripeClient, webhookSvc)
	registerDashboardRoutes(api, orderRepo, subRepo, statsSvc)
	registerBillingRoutes(api, billingSvc, limit)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ateliernoir/ateliernoir-backend/api/routes"
	"github.com/ateliernoir/ateliernoir-backend/internal/cart"
	"github.com/ateliernoir/ateliernoir-backend/internal/content"
	"github.com/ateliernoir/ateliernoir-backend/internal/coupons"
	"github.com/ateliernoir/ateliernoir-backend/internal/customers"
	"github.com/ateliernoir/ateliernoir-backend/internal/notifications"
	"github.com/ateliernoir/ateliernoir-backend/internal/offers"
	"github.com/ateliernoir/ateliernoir-backend/internal/orders"
	"github.com/ateliernoir/ateliernoir-backend/internal/products"
	"github.com/ateliernoir/ateliernoir-backend/internal/reviews"
	"github.com/ateliernoir/ateliernoir-backend/internal/wishlist"
	"github.com/ateliernoir/ateliernoir-backend/pkg/auth/session"
	"github.com/ateliernoir/ateliernoir-backend/pkg/config"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/metrics"
	"github.com/ateliernoir/ateliernoir-backend/pkg/migrate"
	"github.com/ateliernoir/ateliernoir-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	offersService, err := offers.NewService(offers.ServiceParams{
		Repo:     offers.NewRepository(dbClient.DB()),
		Cache:    redisClient,
		Logger:   logg,
		CacheTTL: cfg.Offers.CacheTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create offers service", err)
		os.Exit(1)
	}

	productsRepo := products.NewRepository(dbClient.DB())
	productsService, err := products.NewService(products.ServiceParams{
		Repo:   productsRepo,
		Offers: offersService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	couponsService, err := coupons.NewService(coupons.ServiceParams{
		Repo:    coupons.NewRepository(dbClient.DB()),
		Logger:  logg,
		Metrics: storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create coupons service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    cartStore,
		Products: productsService,
		Coupons:  couponsService,
		Logger:   logg,
		Metrics:  storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:     wishlist.NewRepository(dbClient.DB()),
		Blobs:    redisClient,
		Products: productsRepo,
		Logger:   logg,
		Metrics:  storeMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(customers.ServiceParams{
		Repo:           customers.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		Notifier:       notificationsService,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	contentService, err := content.NewService(content.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(dbClient.DB()),
		Products: productsRepo,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Sessions:      sessionManager,
			Registry:      registry,
			HTTP:          httpMetrics,
			Customers:     customersService,
			Products:      productsService,
			Cart:          cartService,
			Wishlist:      wishlistService,
			Orders:        ordersService,
			Content:       contentService,
			Reviews:       reviewsService,
			Notifications: notificationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

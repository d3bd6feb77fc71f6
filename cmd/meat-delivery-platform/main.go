package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/handlers"
	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/config"
	"github.com/freshcutsco/meat-delivery-platform/internal/health"
	"github.com/freshcutsco/meat-delivery-platform/internal/metrics"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	service "github.com/freshcutsco/meat-delivery-platform/internal/services"
	"github.com/freshcutsco/meat-delivery-platform/internal/storage"
	"github.com/freshcutsco/meat-delivery-platform/internal/telemetry"
	"github.com/freshcutsco/meat-delivery-platform/pkg/email"
	"github.com/freshcutsco/meat-delivery-platform/pkg/geocode"
	"github.com/freshcutsco/meat-delivery-platform/pkg/sms"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Otel.Enabled {
		shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
		if err != nil {
			slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracing(ctx); err != nil {
				slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
			}
		}()
	}

	// Catalog setup
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		slog.Error("❌ Error loading product catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Product catalog loaded", slog.Int("products", cat.Size()))

	// Storage setup
	var (
		store       storage.Store
		db          *sql.DB
		redisClient *redis.Client
		rateLimiter repository.RateLimitRepository
	)

	switch cfg.Storage.Backend {
	case "redis":
		redisClient, err = storage.NewRedisClient(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		store = storage.NewRedisStore(redisClient)
		rateLimiter = repository.NewRateLimitRepo(redisClient, cfg)

	case "postgres":
		db, err = storage.NewPostgresDB(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		store = storage.NewPostgresStore(db)
		rateLimiter = repository.NewNoopRateLimiter()

	case "memory":
		store = storage.NewMemoryStore()
		rateLimiter = repository.NewNoopRateLimiter()

	default:
		slog.Error("❌ Unknown storage backend", slog.String("backend", cfg.Storage.Backend))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing storage connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Storage connection closed")
		}
	}()

	// Outbound clients
	smsGateway := sms.NewMockGateway(cfg.OTP.SMSLatency)

	var geocoder service.Geocoder
	if cfg.Geocode.Enabled {
		geocoder = geocode.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.Timeout)
	}

	var emailService email.Service
	if cfg.SendGrid.APIKey != "" {
		emailService = email.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	// Repositories and services
	cartRepo := repository.NewCartRepo(store)
	userRepo := repository.NewUserRepo(store)
	challengeRepo := repository.NewChallengeRepo(store)
	orderRepo := repository.NewOrderRepo(store)

	cartService := service.NewCartService(cartRepo, cat)
	deliveryService := service.NewDeliveryService(cfg.StoreLocation, geocoder)
	authService := service.NewAuthService(userRepo, challengeRepo, rateLimiter, smsGateway, cfg)
	orderService := service.NewOrderService(orderRepo, cartService, deliveryService, emailService)

	catalogHandler := handlers.NewCatalogHandler(cat)
	cartHandler := handlers.NewCartHandler(cartService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	slog.Info("storage initialized", slog.String("env", cfg.Env),
		slog.String("backend", cfg.Storage.Backend), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	routerMux.HandleFunc("GET /api/v1/products/categories", catalogHandler.ListCategories)
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)
	routerMux.HandleFunc("POST /api/v1/delivery/check-point", deliveryHandler.CheckPoint)
	routerMux.HandleFunc("POST /api/v1/delivery/check-address", deliveryHandler.CheckAddress)
	routerMux.HandleFunc("POST /api/v1/auth/request-code", authHandler.RequestCode)
	routerMux.HandleFunc("POST /api/v1/auth/verify", authHandler.VerifyCode)
	routerMux.HandleFunc("GET /api/v1/auth/me", authMiddleware.Authenticate(http.HandlerFunc(authHandler.Profile)))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(http.HandlerFunc(cartHandler.GetCart)))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(http.HandlerFunc(cartHandler.AddItem)))
	routerMux.HandleFunc("PUT /api/v1/cart/items/quantity", authMiddleware.Authenticate(http.HandlerFunc(cartHandler.SetQuantity)))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{lineId}", authMiddleware.Authenticate(http.HandlerFunc(cartHandler.RemoveItem)))
	routerMux.HandleFunc("PATCH /api/v1/cart/visibility", authMiddleware.Authenticate(http.HandlerFunc(cartHandler.SetVisibility)))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(http.HandlerFunc(cartHandler.Clear)))
	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(http.HandlerFunc(orderHandler.Checkout)))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(http.HandlerFunc(orderHandler.ListOrders)))

	// Operational endpoints
	routerMux.Handle("GET /metrics", metrics.Handler())

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          db,
		RedisClient: redisClient,
		Catalog:     cat,
	})
	if err != nil {
		slog.Error("❌ Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	if cfg.Otel.Enabled {
		handler = otelhttp.NewHandler(handler, "http.server")
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}

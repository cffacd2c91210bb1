package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Muhammed-KRM/E-ticaret/docs"
	"github.com/Muhammed-KRM/E-ticaret/internal/api/handlers"
	"github.com/Muhammed-KRM/E-ticaret/internal/api/middleware"
	"github.com/Muhammed-KRM/E-ticaret/internal/cache"
	"github.com/Muhammed-KRM/E-ticaret/internal/config"
	"github.com/Muhammed-KRM/E-ticaret/internal/health"
	"github.com/Muhammed-KRM/E-ticaret/internal/metrics"
	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	repository "github.com/Muhammed-KRM/E-ticaret/internal/repositories"
	service "github.com/Muhammed-KRM/E-ticaret/internal/services"
	"github.com/Muhammed-KRM/E-ticaret/internal/telemetry"
	"github.com/Muhammed-KRM/E-ticaret/internal/utils"
	"github.com/Muhammed-KRM/E-ticaret/pkg/paytr"
	"github.com/Muhammed-KRM/E-ticaret/pkg/sendGrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Catalog, cart, checkout, PayTR payments and refunds for a single-merchant shop.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						token
//	@description				JWT issued by /auth/login

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	utils.DBTimeout = cfg.Database.QueryTimeout

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	productCache := cache.NewRedisCache(redisClient, cfg.Cache)

	gateway := paytr.NewClient(paytr.Config{
		MerchantID:     cfg.PayTR.MerchantID,
		MerchantKey:    cfg.PayTR.MerchantKey,
		MerchantSalt:   cfg.PayTR.MerchantSalt,
		TokenURL:       cfg.PayTR.TokenURL,
		RefundURL:      cfg.PayTR.RefundURL,
		Currency:       cfg.PayTR.Currency,
		TestMode:       cfg.PayTR.TestMode,
		DebugOn:        cfg.PayTR.DebugOn,
		NoInstallment:  cfg.PayTR.NoInstallment,
		MaxInstallment: cfg.PayTR.MaxInstallment,
		TimeoutLimit:   cfg.PayTR.TimeoutLimit,
		ClientLang:     cfg.PayTR.ClientLang,
		OkURL:          cfg.PayTR.OkURL,
		FailURL:        cfg.PayTR.FailURL,
		HTTPTimeout:    cfg.PayTR.HTTPTimeout,
	})
	sendGridClient := sendGrid.NewEmailService(sendGrid.Config{
		APIKey:    cfg.SendGrid.APIKey,
		FromEmail: cfg.SendGrid.FromEmail,
		FromName:  cfg.SendGrid.FromName,
		BaseURL:   cfg.SendGrid.BaseURL,
	})

	// Services
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient, cfg.SendGrid.AdminEmail)
	authService := service.NewAuthService(repos.User, rateLimitRepo, cfg.Security)
	productService := service.NewProductService(repos.Product, productCache)
	cartService := service.NewCartService(repos.Cart, repos.Product, cfg.Cart.MaxRetries)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User, repos.Audit, gateway, notificationService, cfg.Orders.ReturnWindow)
	paymentService := service.NewPaymentService(repos.Order, repos.Cart, repos.Audit, gateway, notificationService, cfg.PayTR)
	refundService := service.NewRefundService(repos.Order, repos.Audit, gateway, notificationService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	refundHandler := handlers.NewRefundHandler(refundService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := middleware.NewAuthMiddleware(authService, cfg.Security.TokenHeader)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	admin := func(h http.Handler) http.HandlerFunc { return authMiddleware.RequireRole(models.RoleAdmin, h) }

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup())
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authMiddleware.Authenticate(authHandler.Logout()))
	routerMux.HandleFunc("POST /api/v1/auth/admins", authMiddleware.RequireRole(models.RoleSuperAdmin, authHandler.RegisterAdmin()))
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(authHandler.Profile()))

	routerMux.HandleFunc("GET /api/v1/products", authMiddleware.Optional(productHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", authMiddleware.Optional(productHandler.GetProduct()))
	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", admin(productHandler.UpdateProduct()))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Optional(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Optional(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{lineId}", authMiddleware.Optional(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{lineId}", authMiddleware.Optional(cartHandler.RemoveItem()))

	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Optional(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/tracking", authMiddleware.Authenticate(orderHandler.GetTracking()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/cancel", authMiddleware.Authenticate(orderHandler.CancelOrder()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/return", authMiddleware.Authenticate(orderHandler.RequestReturn()))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}/shipping", admin(orderHandler.UpdateShipping()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", admin(orderHandler.UpdateStatus()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", admin(orderHandler.ListOrders()))

	routerMux.HandleFunc("POST /api/v1/payments/initiate", authMiddleware.Optional(paymentHandler.InitiatePayment()))
	routerMux.HandleFunc("POST /api/v1/payments/callback", paymentHandler.Callback())

	routerMux.HandleFunc("POST /api/v1/refunds/request", admin(refundHandler.RequestRefund()))
	routerMux.HandleFunc("GET /api/v1/refunds/pending", admin(refundHandler.ListPending()))
	routerMux.HandleFunc("POST /api/v1/refunds/{id}/approve", admin(refundHandler.Approve()))
	routerMux.HandleFunc("POST /api/v1/refunds/{id}/reject", admin(refundHandler.Reject()))

	routerMux.HandleFunc("GET /api/v1/notifications", admin(notificationHandler.ListNotifications()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Tracing.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
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

	notificationService.Wait()
	slog.Info("📨 Pending notifications flushed")

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown failed", slog.String("error", err.Error()))
	}
}

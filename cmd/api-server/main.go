package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festivalhub/database"
	"festivalhub/internal/config"
	"festivalhub/internal/microservices/fanout"
	"festivalhub/internal/microservices/http-api/handler"
	"festivalhub/internal/microservices/http-api/middleware"
	"festivalhub/internal/microservices/http-api/repository"
	"festivalhub/internal/microservices/http-api/service"
	"festivalhub/internal/microservices/websocket"
	"festivalhub/internal/supervisor"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server_stopped_gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 1. Database
	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := database.Connect(connectCtx, cfg, logger)
	connectCancel()
	if err != nil {
		return err
	}
	defer db.Close()

	tree := supervisor.NewTree(logger, cfg.ShutdownTimeout)

	// 2. Connection registry, optionally mirrored over Redis
	registry := websocket.NewRegistry(logger)
	defer registry.Shutdown()

	var broadcaster fanout.Broadcaster = registry
	if cfg.RedisEnabled {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		if cfg.RedisPassword != "" {
			opts.Password = cfg.RedisPassword
		}
		client := redis.NewClient(opts)
		defer client.Close()

		bridge := websocket.NewRedisBridge(registry, client, cfg.RedisChannel, logger)
		tree.AddMessagingService(bridge)
		broadcaster = bridge
	}

	// 3. Fan-out engine
	notificationRepo := repository.NewNotificationRepository(db.Gorm)

	pool := fanout.NewWorkerPool(cfg.FanoutWorkers, cfg.FanoutQueueSize, cfg.FanoutTimeout, logger)
	pool.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := pool.Shutdown(shutdownCtx); err != nil {
			logger.Warn("fanout_pool_shutdown_incomplete", "error", err)
		}
	}()

	engine := fanout.NewEngine(notificationRepo, broadcaster, pool,
		fanout.WithLogger(logger),
		fanout.WithCatchUpLimit(cfg.CatchUpLimit),
	)
	registry.OnAuthenticated(engine.OnAuthenticated)

	// 4. Repositories and services
	userRepo := repository.NewUserRepository(db.Gorm)
	festivalRepo := repository.NewFestivalRepository(db.Gorm)
	vendorRepo := repository.NewVendorRepository(db.Gorm)
	ticketRepo := repository.NewTicketRepository(db.Gorm)
	saleRepo := repository.NewSaleRepository(db.Gorm)
	reviewRepo := repository.NewReviewRepository(db.Gorm)
	boothRepo := repository.NewBoothRepository(db.Gorm)
	eventRepo := repository.NewEventRepository(db.Gorm)
	menuItemRepo := repository.NewMenuItemRepository(db.Gorm)

	classifier := service.NewLexiconClassifier()
	authService := service.NewAuthService(userRepo, engine, cfg)
	notificationService := service.NewNotificationService(notificationRepo, engine)
	festivalService := service.NewFestivalService(festivalRepo, classifier, engine)
	vendorService := service.NewVendorService(vendorRepo, engine)
	ticketService := service.NewTicketService(ticketRepo, festivalRepo, engine)
	saleService := service.NewSaleService(saleRepo, vendorRepo, engine)
	reviewService := service.NewReviewService(reviewRepo, vendorRepo, classifier, engine)
	boothService := service.NewBoothService(boothRepo, festivalRepo, vendorRepo, engine)
	eventService := service.NewEventService(eventRepo, festivalRepo, engine)
	menuItemService := service.NewMenuItemService(menuItemRepo, vendorRepo, engine)

	if cfg.AdminEmail != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	// 5. HTTP surface
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Pool.Ping(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": registry.Count()})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	wsConfig := websocket.ClientConfig{
		SendBuffer: cfg.WSSendBuffer,
		RateLimit:  rate.Limit(cfg.WSRateLimit),
		RateBurst:  cfg.WSRateBurst,
	}
	if cfg.WSRequireToken {
		wsConfig.Verifier = func(token string) (websocket.Identity, error) {
			claims, err := authService.ValidateToken(token)
			if err != nil {
				return websocket.Identity{}, err
			}
			return websocket.Identity{UserID: claims.UserID, Role: claims.Role}, nil
		}
	}
	r.GET("/ws", websocket.WSHandler(registry, websocket.NewUpgrader(cfg.CORSOrigins), wsConfig, logger))

	api := r.Group("/api")
	handler.NewAuthHandler(authService).RegisterRoutes(api.Group("/auth"))
	handler.NewNotificationHandler(notificationService).RegisterRoutes(api.Group("/notifications", middleware.ScopeAuth(authService, cfg.WSRequireToken)))
	handler.NewFestivalHandler(festivalService).RegisterRoutes(api.Group("/festivals"), authService)
	handler.NewVendorHandler(vendorService).RegisterRoutes(api.Group("/vendors"), authService)
	handler.NewTicketHandler(ticketService).RegisterRoutes(api.Group("/tickets"), authService)
	handler.NewSaleHandler(saleService).RegisterRoutes(api.Group("/sales"), authService)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api.Group("/reviews"), authService)
	handler.NewBoothHandler(boothService).RegisterRoutes(api.Group("/booths"), authService)
	handler.NewEventHandler(eventService).RegisterRoutes(api.Group("/events"), authService)
	handler.NewMenuItemHandler(menuItemService).RegisterRoutes(api.Group("/menu-items"), authService)

	var root http.Handler = r
	if cfg.HTTPRateLimit > 0 {
		root = httprate.LimitByIP(cfg.HTTPRateLimit, time.Minute)(root)
	}
	root = cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(root)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
	}
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.ShutdownTimeout))

	logger.Info("server_starting", "addr", server.Addr, "redis_bridge", cfg.RedisEnabled, "ws_require_token", cfg.WSRequireToken)
	return tree.Serve(ctx)
}

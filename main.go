package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/nassimidr/Emall/controllers"
	"github.com/nassimidr/Emall/database"
	"github.com/nassimidr/Emall/logger"
	"github.com/nassimidr/Emall/repository"
	"github.com/nassimidr/Emall/routes"
	"github.com/nassimidr/Emall/sender"
	"github.com/nassimidr/Emall/services"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.AppEnv)
	defer zap.L().Sync()

	// --- 1. Infrastructure ---

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(indexCtx); err != nil {
		zap.L().Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancelIndex()

	// Redis is optional; without it product reads go straight to Mongo.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Warn("Failed to parse REDIS_URL, caching disabled", zap.Error(err))
		} else {
			redisClient = redis.NewClient(redisOpts)
		}
	}

	// SMTP is optional; without it restock sends are recorded as failed.
	var mailer sender.EmailSender
	if cfg.SMTPHost != "" {
		smtpSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		if err != nil {
			zap.L().Warn("SMTP misconfigured, restock mail disabled", zap.Error(err))
		} else {
			mailer = smtpSender
		}
	}

	// --- 2. Dependency Injection (Wiring the layers together) ---

	userRepo := repository.NewMongoUserRepository(database.DB)
	mallRepo := repository.NewMongoMallRepository(database.DB)
	shopRepo := repository.NewMongoShopRepository(database.DB)
	productRepo := repository.NewMongoProductRepository(database.DB)
	reviewRepo := repository.NewMongoReviewRepository(database.DB)
	notificationRepo := repository.NewMongoNotificationRepository(database.DB)

	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService)
	productService := services.NewProductService(productRepo, shopRepo, notificationRepo, mailer, cfg.DefaultFromEmail)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	searchService := services.NewSearchService(mallRepo, shopRepo, productRepo)

	cache := controllers.NewCacheManager(redisClient)

	ctrl := routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Mall:    controllers.NewMallController(mallRepo),
		Shop:    controllers.NewShopController(shopRepo, mallRepo),
		Product: controllers.NewProductController(productService, cache),
		Review:  controllers.NewReviewController(reviewService),
		Search:  controllers.NewSearchController(searchService),
	}

	// --- 3. HTTP Server & Middleware ---

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- 4. Route Registration ---

	routes.Register(r, ctrl, tokenService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("eMall API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down eMall API...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}

	zap.L().Info("eMall API stopped gracefully")
}

package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pool-fund/pkg/cache"
	"pool-fund/pkg/config"
	"pool-fund/pkg/database"
	"pool-fund/pkg/jwt"
	"pool-fund/pkg/logger"
	"pool-fund/pkg/middleware"
	"pool-fund/pkg/queue"
	"pool-fund/pkg/s3"
	ledgerHTTP "pool-fund/services/ledger/internal/controller/http"
	"pool-fund/services/ledger/internal/provider"
	"pool-fund/services/ledger/internal/repo/persistent"
	"pool-fund/services/ledger/internal/usecase"
	"pool-fund/services/ledger/internal/webhook"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET must be set")
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (falling back to in-process locks)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	ledgerRepo := persistent.NewLedgerRepository(a.db)

	var locker cache.Locker = cache.NewLocalLocker()
	if a.redisClient != nil {
		locker = cache.NewRedisLocker(a.redisClient, a.cfg.LockTTL)
	}

	var publisher queue.Publisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	var archiver usecase.Archiver
	if a.s3Client != nil {
		archiver = a.s3Client
	}

	ledgerUseCase := usecase.NewLedgerUseCase(ledgerRepo, provider.NewSimulated(a.log), locker, publisher, a.log)
	webhookUseCase := usecase.NewWebhookUseCase(
		webhook.NewVerifier(a.cfg.StripeWebhookSecret, a.cfg.WebhookTolerance),
		usecase.NewEventRouter(ledgerUseCase, a.log),
		ledgerRepo,
		archiver,
		a.log,
	)

	ledgerHandler := ledgerHTTP.NewLedgerHandler(ledgerUseCase, a.log)
	webhookHandler := ledgerHTTP.NewWebhookHandler(webhookUseCase, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Provider deliveries authenticate with the signature header, not a bearer token.
	r.POST("/webhooks/stripe", webhookHandler.HandleStripe)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, a.log, 100, time.Minute))
	{
		api.GET("/fees", ledgerHandler.QuoteFee)
		api.POST("/deposits", ledgerHandler.CreateDeposit)
		api.GET("/transactions", ledgerHandler.GetTransactions)
		api.POST("/transfers", middleware.RequireRole(jwt.RoleAdmin), ledgerHandler.CreateTransfer)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Ledger service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down ledger service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Ledger service exited")
	return nil
}

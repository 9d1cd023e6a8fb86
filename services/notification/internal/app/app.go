package internal

import (
	"context"
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
	notificationHTTP "pool-fund/services/notification/internal/controller/http"
	"pool-fund/services/notification/internal/inbox"
	"pool-fund/services/notification/internal/repo/persistent"
	"pool-fund/services/notification/internal/usecase"

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
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	// Notifications live in redis, so unlike the other services it is required here.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
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
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	notificationRepo := persistent.NewNotificationRepository(a.db)
	redisInbox := inbox.NewRedisInbox(a.redisClient)

	var inspector usecase.QueueInspector
	if a.queueClient != nil {
		inspector = a.queueClient
	}

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, redisInbox, inspector, a.log)
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, redisInbox, a.jwtService, a.log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(a.jwtService))
	protected.Use(middleware.RateLimitMiddleware(a.redisClient, a.log, 100, time.Minute))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/pools/:pool_id/notifications", notificationHandler.GetPoolSettings)
		protected.POST("/pools/:pool_id/notifications", notificationHandler.EnablePoolNotifications)
		protected.DELETE("/pools/:pool_id/notifications", notificationHandler.DisablePoolNotifications)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(jwt.RoleAdmin))
		admin.GET("/notifications/queue", notificationHandler.GetQueueStatus)
	}

	if a.queueClient != nil {
		if err := a.queueClient.ConsumeRouted(queue.NotificationQueueName, notificationUseCase.HandleEvent); err != nil {
			a.log.Error("Error starting notification consumer: %v", err)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Notification service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down notification service...")
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

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis: %v", err)
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Notification service exited")
	return nil
}

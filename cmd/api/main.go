package main

import (
	"fmt"
	"log"
	"os"

	"github.com/damoang/angple-messaging/internal/config"
	"github.com/damoang/angple-messaging/internal/handler"
	"github.com/damoang/angple-messaging/internal/middleware"
	"github.com/damoang/angple-messaging/internal/migration"
	"github.com/damoang/angple-messaging/internal/repository"
	"github.com/damoang/angple-messaging/internal/routes"
	"github.com/damoang/angple-messaging/internal/service"
	"github.com/damoang/angple-messaging/pkg/jwt"
	pkglogger "github.com/damoang/angple-messaging/pkg/logger"
	"github.com/damoang/angple-messaging/pkg/mailer"
	pkgredis "github.com/damoang/angple-messaging/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	// 로거 초기화
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL 연결
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis 연결 (없어도 기동은 계속: 캐시/알림 큐만 비활성)
	var redisClient *goredis.Client
	redisClient, err = pkgredis.NewClient(
		cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password,
		cfg.Redis.DB, cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Redis unavailable: %v (continuing without cache)", err)
		redisClient = nil
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	readRepo := repository.NewReadMarkerRepository(db)
	rateRepo := repository.NewRateLimitRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Services
	limiter := service.NewMessageLimiter(rateRepo, service.LimiterConfig{
		HourlyPerRecipient: cfg.Messaging.HourlyPerRecipientLimit,
		DailyGlobal:        cfg.Messaging.DailyGlobalLimit,
	})
	notifier := service.NewNotificationService(notifRepo, redisClient)
	reportMailer := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		AdminTo:  cfg.SMTP.AdminTo,
	})
	convSvc := service.NewConversationService(db, convRepo, msgRepo, userRepo, readRepo)
	msgSvc := service.NewMessageService(db, msgRepo, convRepo, userRepo, blockRepo, limiter, notifier, redisClient)
	readSvc := service.NewReadService(convRepo, msgRepo, readRepo, redisClient)
	blockSvc := service.NewBlockService(blockRepo, userRepo)
	reportSvc := service.NewReportService(reportRepo, userRepo, notifier, reportMailer)

	// Handlers
	resolver := handler.NewCallerResolver(userRepo)
	handlers := &routes.Handlers{
		Conversation: handler.NewConversationHandler(resolver, convSvc),
		Message:      handler.NewMessageHandler(resolver, msgSvc),
		Read:         handler.NewReadHandler(readSvc),
		Block:        handler.NewBlockHandler(resolver, blockSvc),
		Report:       handler.NewReportHandler(resolver, reportSvc),
		User:         handler.NewUserHandler(resolver, userRepo),
	}

	// Router
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	rateLimitCfg.RequestsPerMinute = cfg.Messaging.APIRequestsPerMinute
	router.Use(middleware.RateLimit(redisClient, rateLimitCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	routes.Setup(router, handlers, jwtManager)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	pkglogger.Info("Starting messaging API on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/manish-terminal/elastomech/internal/config"
	"github.com/manish-terminal/elastomech/internal/middleware"
	"github.com/manish-terminal/elastomech/internal/stock/entity"
	"github.com/manish-terminal/elastomech/internal/stock/handler"
	"github.com/manish-terminal/elastomech/internal/stock/repository"
	"github.com/manish-terminal/elastomech/internal/stock/service"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting elastomech stock service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化Redis,连不上也继续跑,刷新令牌和报表缓存退化
	rdb := initRedis(cfg.Redis)
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unavailable, refresh tokens and report cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	// 初始化MinIO,未配置时产品图片上传不可用
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			zapLogger.Warn("MinIO init failed, image upload disabled", zap.Error(err))
			minioClient = nil
		}
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, minioClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	api := r.Group("/api")
	{
		// 认证 (无需登录)
		auth := api.Group("/auth")
		{
			auth.POST("/signin", h.Auth.SignIn)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的接口
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// 原材料,/items 为前端历史路径,/materials 为别名
			for _, prefix := range []string{"/items", "/materials"} {
				items := authorized.Group(prefix)
				items.GET("", h.Material.List)
				items.POST("", h.Material.Create)
				items.GET("/:name", h.Material.Get)
				items.PUT("/:name", h.Material.Update)
				items.DELETE("/:name", middleware.RequireRole("admin"), h.Material.Delete)
				items.GET("/:name/logs", h.Material.Logs)
				items.POST("/:name/logs", h.Material.AppendLog)
			}

			// 配方
			formulas := authorized.Group("/formulas")
			{
				formulas.GET("", h.Formula.List)
				formulas.POST("", h.Formula.Create)
				formulas.GET("/logs/:name", h.Formula.LogsByName)
				formulas.GET("/:id", h.Formula.Get)
				formulas.PUT("/:id", h.Formula.Update)
				formulas.DELETE("/:id", middleware.RequireRole("admin"), h.Formula.Delete)
				formulas.POST("/:id/log", h.Formula.LogMixing)
				formulas.POST("/:id/log-from-product", h.Formula.LogFromProduct)
			}

			// 产品
			products := authorized.Group("/products")
			{
				products.GET("", h.Product.List)
				products.POST("", h.Product.Create)
				products.GET("/:id", h.Product.Get)
				products.GET("/:id/logs", h.Product.Logs)
				products.POST("/:id/log", h.Product.LogTransaction)
				products.POST("/:id/image", h.Product.UploadImage)
			}

			// 订单
			orders := authorized.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.GET("/next-dispatch-id", h.Order.NextDispatchID)
				orders.GET("/:id", h.Order.Get)
				orders.PUT("/:id", h.Order.Update)
			}

			// 发运看板
			authorized.GET("/dispatch", h.Order.Dispatch)

			// 便签
			notes := authorized.Group("/notes")
			{
				notes.GET("", h.Note.List)
				notes.POST("", h.Note.Create)
				notes.PUT("/:id", h.Note.Update)
				notes.DELETE("/:id", h.Note.Delete)
			}

			// 报表
			reports := authorized.Group("/reports")
			{
				reports.GET("/summary", h.Report.Summary)
				reports.GET("/materials/export", h.Report.ExportMaterialLogs)
			}
		}
	}
}

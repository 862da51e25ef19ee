package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	agencyapp "github.com/immoflow/backend/internal/application/agency"
	listingapp "github.com/immoflow/backend/internal/application/listing"
	syndicationapp "github.com/immoflow/backend/internal/application/syndication"
	"github.com/immoflow/backend/internal/domain/agency"
	"github.com/immoflow/backend/internal/domain/listing"
	"github.com/immoflow/backend/internal/domain/syndication"
	"github.com/immoflow/backend/internal/infrastructure/config"
	"github.com/immoflow/backend/internal/infrastructure/delivery"
	"github.com/immoflow/backend/internal/infrastructure/logger"
	"github.com/immoflow/backend/internal/infrastructure/persistence"
	"github.com/immoflow/backend/internal/infrastructure/scheduler"
	"github.com/immoflow/backend/internal/infrastructure/storage"
	"github.com/immoflow/backend/internal/interfaces/http/handler"
	"github.com/immoflow/backend/internal/interfaces/http/middleware"
	"github.com/immoflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Immoflow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Schema migration runs automatically outside production
	if cfg.App.Env != "production" {
		if err := db.DB.AutoMigrate(
			&agency.Agency{},
			&listing.Property{},
			&listing.PropertyImage{},
			&syndication.PortalConfig{},
		); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
	}

	// Initialize repositories
	agencyRepo := persistence.NewGormAgencyRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	portalConfigRepo := persistence.NewGormPortalConfigRepository(db.DB)

	// Initialize object storage for property images
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := objectStorage.EnsureBucket(context.Background()); err != nil {
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}
	log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))

	// FTP client delivers the generated feeds to the portals
	ftpClient := delivery.NewFTPClient(cfg.Export.DialTimeout, delivery.WithLogger(log))

	// Initialize application services
	agencyService := agencyapp.NewService(agencyRepo)
	propertyService := listingapp.NewPropertyService(propertyRepo, objectStorage)
	portalConfigService := syndicationapp.NewPortalConfigService(portalConfigRepo)
	exportService := syndicationapp.NewExportService(
		portalConfigRepo,
		propertyRepo,
		objectStorage,
		ftpClient,
		syndicationapp.ExportOptions{
			RetryAttempts: cfg.Export.RetryAttempts,
			RetryDelay:    cfg.Export.RetryDelay,
			MaxConcurrent: cfg.Export.MaxConcurrent,
		},
		log,
	)

	// Initialize handlers
	agencyHandler := handler.NewAgencyHandler(agencyService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	portalHandler := handler.NewPortalConfigHandler(portalConfigService)
	exportHandler := handler.NewExportHandler(exportService)
	systemHandler := handler.NewSystemHandler(db)

	// Setup gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order matters:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID(log))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Agency management
	agencyRoutes := router.NewDomainGroup("agencies", "/agencies")
	agencyRoutes.POST("", agencyHandler.Create)
	agencyRoutes.GET("/:id", agencyHandler.GetByID)
	agencyRoutes.PUT("/:id", agencyHandler.Rename)
	r.Register(agencyRoutes)

	// Listing domain (properties and their images)
	listingRoutes := router.NewDomainGroup("listing", "/properties")
	listingRoutes.POST("", propertyHandler.Create)
	listingRoutes.GET("", propertyHandler.List)
	listingRoutes.GET("/:id", propertyHandler.GetByID)
	listingRoutes.PUT("/:id", propertyHandler.Update)
	listingRoutes.DELETE("/:id", propertyHandler.Delete)
	listingRoutes.PUT("/:id/price", propertyHandler.SetPrice)
	listingRoutes.POST("/:id/activate", propertyHandler.Activate)
	listingRoutes.POST("/:id/sell", propertyHandler.MarkSold)
	listingRoutes.POST("/:id/withdraw", propertyHandler.Withdraw)
	listingRoutes.POST("/:id/images/upload-url", propertyHandler.RequestUploadURL)
	listingRoutes.POST("/:id/images", propertyHandler.AddImage)
	listingRoutes.DELETE("/:id/images/:image_id", propertyHandler.RemoveImage)
	r.Register(listingRoutes)

	// Syndication domain (portal configs and the export trigger)
	syndicationRoutes := router.NewDomainGroup("syndication", "/syndication")
	syndicationRoutes.PUT("/portals", portalHandler.Upsert)
	syndicationRoutes.GET("/portals", portalHandler.List)
	syndicationRoutes.GET("/portals/:portal", portalHandler.GetByPortal)
	exportRoutes := syndicationRoutes.Group("export", "/export")
	exportRoutes.Use(middleware.CronAuth(cfg.Export.CronSecret))
	exportRoutes.GET("", exportHandler.Run)
	r.Register(syndicationRoutes)

	// System endpoints
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// In-process daily export trigger
	cronTrigger := scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
		DailyHour:     cfg.Scheduler.DailyHour,
		DailyMinute:   cfg.Scheduler.DailyMinute,
		CheckInterval: cfg.Scheduler.CheckInterval,
	}, exportService, log)
	if cfg.Scheduler.Enabled {
		if err := cronTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start export scheduler", zap.Error(err))
		}
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Scheduler.Enabled {
		if err := cronTrigger.Stop(ctx); err != nil {
			log.Error("Export scheduler did not stop cleanly", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"toyshop/docs"
	"toyshop/internal/caching"
	"toyshop/internal/catalog"
	"toyshop/internal/common"
	"toyshop/internal/config"
	"toyshop/internal/handlers"
	"toyshop/internal/jobs/background"
	"toyshop/internal/logging"
	"toyshop/internal/metrics"
	"toyshop/internal/middleware"
	"toyshop/internal/repositories"
	"toyshop/internal/services"
	"toyshop/pkg/database"
)

const version = "1.0.0"

//	@title			Toy Shop Catalog API
//	@version		1.0
//	@description	Category tree and product browsing for the bilingual storefront.
//	@BasePath		/

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database connection
	pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Navigation table (fallback tree and icon lookup)
	var treeOpts []catalog.TreeOption
	if cfg.Catalog.TableFile != "" {
		table, err := catalog.LoadTableFile(cfg.Catalog.TableFile)
		if err != nil {
			return err
		}
		treeOpts = append(treeOpts, catalog.WithTable(table))
		logger.Info("loaded catalog table", zap.String("file", cfg.Catalog.TableFile))
	}
	treeBuilder := catalog.NewTreeBuilder(treeOpts...)

	// Cache and object storage
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	defer func() { _ = cacheSvc.Close() }()

	iconStorage, err := services.NewIconStorage(cfg.Storage.Endpoint, cfg.Storage.AccessKey,
		cfg.Storage.SecretKey, cfg.Storage.UseSSL, cfg.Storage.Bucket)
	if err != nil {
		return fmt.Errorf("failed to initialize icon storage: %w", err)
	}
	bucketErr := iconStorage.EnsureBucket(ctx)
	if bucketErr != nil {
		// uploads fail until storage is reachable; the rest of the API still works
		logger.Warn("icon bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(bucketErr))
	}

	// Repositories and services
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool, logger)

	categorySvc := services.NewCategoryService(categoryRepo, cacheSvc, iconStorage, treeBuilder, cfg.Redis.TTL, logger)
	productSvc := services.NewProductService(productRepo, cacheSvc, cfg.Redis.TTL, logger)

	auth, err := middleware.NewAuthenticator(ctx, cfg.Auth.JWTSecret, cfg.Auth.JWKSURL, logger)
	if err != nil {
		return fmt.Errorf("failed to configure authentication: %w", err)
	}
	defer auth.Close()

	// Background cache warm-up
	scheduler, err := background.NewJobScheduler(cfg.Catalog.RefreshInterval, map[string]background.Warmer{
		"categories": categorySvc,
		"products":   productSvc,
	}, logger)
	if err != nil {
		return err
	}
	if bucketErr != nil {
		if err := scheduler.RetryUntilReady("icon-bucket-check", time.Minute, iconStorage.EnsureBucket); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("scheduler shutdown failed", zap.Error(err))
		}
	}()

	// Handlers
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc, logger)
	productHandlers := handlers.NewProductHandlers(productSvc, logger)
	uploadHandlers := handlers.NewUploadHandlers(iconStorage, logger)
	jobHandlers := handlers.NewJobHandlers(scheduler, logger)
	healthHandlers := handlers.NewHealthHandlers(version, map[string]handlers.Pinger{
		"database": pool,
		"redis":    cacheSvc,
		"storage":  handlers.PingFunc(iconStorage.Ready),
	})

	e := newServer(logger)
	registerRoutes(e, auth, categoryHandlers, productHandlers, uploadHandlers, jobHandlers, healthHandlers)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("toy shop catalog server starting",
			zap.String("version", version),
			zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newServer(logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = common.HTTPErrorHandler

	// Global middleware
	e.Use(echoMiddleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(metrics.Middleware())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.BodyLimit("6M"))
	e.Use(middleware.LocaleResolver())
	return e
}

func registerRoutes(
	e *echo.Echo,
	auth *middleware.Authenticator,
	categoryHandlers *handlers.CategoryHandlers,
	productHandlers *handlers.ProductHandlers,
	uploadHandlers *handlers.UploadHandlers,
	jobHandlers *handlers.JobHandlers,
	healthHandlers *handlers.HealthHandlers,
) {
	requireAuth := auth.RequireAuth()

	// Health, metrics and docs (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))
	e.GET("/uploads/:name", uploadHandlers.GetUpload)

	api := e.Group("/api")

	// Storefront
	api.GET("/categories", categoryHandlers.ListCategories)
	api.GET("/categories/tree", categoryHandlers.GetCategoryTree)
	api.GET("/products", productHandlers.ListProducts, auth.OptionalAuth())
	api.GET("/catalog/products", productHandlers.BrowseProducts)
	api.GET("/catalog/facets", productHandlers.GetFacets)

	// Admin
	api.GET("/admin/categories", categoryHandlers.ListAdminCategories, requireAuth)
	api.POST("/categories", categoryHandlers.CreateCategory, requireAuth)
	api.PUT("/categories/reorder", categoryHandlers.ReorderCategories, requireAuth)
	api.PUT("/categories/:id", categoryHandlers.UpdateCategory, requireAuth)
	api.PATCH("/categories/:id/toggle", categoryHandlers.ToggleCategory, requireAuth)
	api.DELETE("/categories/:id", categoryHandlers.DeleteCategory, requireAuth)
	api.GET("/admin/jobs", jobHandlers.ListJobs, requireAuth)
	api.POST("/admin/jobs/warm", jobHandlers.WarmCache, requireAuth)
}

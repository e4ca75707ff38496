package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	_ "laundry_desk/docs" // This will be auto-generated
	"laundry_desk/internal/adapter/http/middleware"
	"laundry_desk/internal/infrastructure/config"
	"laundry_desk/internal/infrastructure/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err.Error())
	}

	zlog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err.Error())
	}
	defer func() { _ = zlog.Sync() }()
	zlog = zlog.With(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newContainer(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to startup the application", zap.Error(err))
	}

	router := newRouter(cfg, app, zlog)
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to startup the application", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server...")

	// Open streams only end when the hub closes their channels.
	app.Close(zlog)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	zlog.Info("Server exited gracefully")
}

// newRouter builds the gin engine with middlewares, docs, metrics and the
// /v1 routes.
func newRouter(cfg *config.Config, app *container, zlog *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	router := gin.New()
	setMiddlewares(router, cfg, app, zlog)

	if cfg.Swagger.Enabled {
		// Swagger documentation endpoint
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(app.metrics.Handler()))
	}

	getRoutes(router, app)
	return router
}

func getRoutes(router *gin.Engine, app *container) {
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, app.orderHandler)
	addCatalogRoutes(v1, app.catalogHandler)
	addExpenseRoutes(v1, app.expenseHandler)
	addAnalyticsRoutes(v1, app.analyticsHandler)
	addStreamRoutes(v1, app.streamHandler)
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, app *container, zlog *zap.Logger) {
	router.Use(logger.RequestID())
	router.Use(logger.GinMiddleware(zlog))
	router.Use(logger.Recovery(zlog))
	if cfg.Metrics.Enabled {
		router.Use(app.metrics.GinMiddleware())
	}
	router.Use(cors.New(corsConfig(cfg.HTTP.CORSAllowOrigins)))
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Device-Token", logger.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cakeshop-service/apperrors"
	"cakeshop-service/controllers"
	"cakeshop-service/database"
	"cakeshop-service/middleware"
	"cakeshop-service/models"
	"cakeshop-service/repository"
	"cakeshop-service/routes"
	"cakeshop-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DBDriver, cfg.SQLitePath)
	if err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}
	defer database.Close(db)

	if cfg.Env != "production" {
		if err := models.Migrate(db); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories are constructed once here and injected; no package-level
	// state. Component repositories bind their catalog table at construction.
	userRepo := repository.NewGormUserRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	componentRepos := make(map[models.ComponentKind]repository.ComponentRepository, 4)
	for _, kind := range models.ComponentKinds() {
		componentRepos[kind] = repository.NewGormComponentRepository(db, kind)
	}

	orderService := services.NewOrderService(userRepo, orderRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(apperrors.ErrorMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	routes.Register(r,
		controllers.NewUserController(userRepo),
		controllers.NewOrderController(orderService, orderRepo),
		controllers.NewComponentController(componentRepos),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Cakeshop service started", zap.String("port", cfg.Port), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}

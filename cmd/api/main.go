package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/freizeitplan/backend/config"
	"github.com/freizeitplan/backend/internal/api"
	"github.com/freizeitplan/backend/internal/database"
	"github.com/freizeitplan/backend/internal/router"
	"github.com/freizeitplan/backend/internal/server"
	"github.com/freizeitplan/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	cache, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, suggestions will not be cached", zap.Error(err))
		cache = nil
	}

	ctx := context.Background()
	storage, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.Warn("s3 unavailable, exports limited to direct downloads", zap.Error(err))
		storage = nil
	}

	// service constructors attach their own logger names
	settings := service.NewSettingsService(db)
	versions := service.NewVersionService(db, logger)
	camps := service.NewCampService(db, logger)
	recipes := service.NewRecipeService(db, versions, logger)
	ingredients := service.NewIngredientService(db, cache, logger)
	taxonomy := service.NewTaxonomyService(db)
	mealPlans := service.NewMealPlanService(db, logger)
	shopping := service.NewShoppingListService(db, settings, logger)
	stats := service.NewStatsService(db)
	exports := service.NewExportService(shopping, mealPlans, camps, storage, logger)
	importer := service.NewImportService(recipes, ingredients, logger)

	apiLogger := logger.Named("api")
	handlers := router.Handlers{
		Camps:        api.NewCampHandler(camps, stats, apiLogger),
		Recipes:      api.NewRecipeHandler(recipes, versions, apiLogger),
		Ingredients:  api.NewIngredientHandler(ingredients, apiLogger),
		Taxonomy:     api.NewTaxonomyHandler(taxonomy),
		MealPlans:    api.NewMealPlanHandler(mealPlans, apiLogger),
		ShoppingList: api.NewShoppingListHandler(shopping, apiLogger),
		Exports:      api.NewExportHandler(exports, importer, apiLogger),
		Settings:     api.NewSettingsHandler(settings),
	}

	engine := router.SetupRouter(handlers, db, logger)
	srv := server.NewServer(cfg, engine, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-quit:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

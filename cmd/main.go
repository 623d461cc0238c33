package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"carmart/internal/config"
	"carmart/internal/database"
	"carmart/internal/handlers"
	"carmart/internal/repositories"
	"carmart/internal/services"
	"carmart/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	carRepo := repositories.NewCarRepo(pool)

	// Validators
	categoryValidator := validation.NewCategoryValidator(categoryRepo)
	carValidator := validation.NewCarValidator(categoryRepo, carRepo, nil)

	// Services
	categoryService := services.NewCategoryService(categoryRepo, categoryValidator)
	carService := services.NewCarService(carRepo, carValidator)

	// Handlers
	categoryHandlers := handlers.NewCategoryHandlers(categoryService)
	carHandlers := handlers.NewCarHandlers(carService)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")

	// Category routes. The fixed /active paths are registered before the
	// :id routes so echo never treats "active" as an id.
	categories := api.Group("/categories")
	categories.GET("", categoryHandlers.ListCategories)
	categories.POST("", categoryHandlers.CreateCategory)
	categories.GET("/active", categoryHandlers.ListActiveCategories)
	categories.GET("/active/with-available-cars", categoryHandlers.ListActiveCategoriesWithAvailableCars)
	categories.GET("/active/paginated", categoryHandlers.ListActiveCategoriesPaginated)
	categories.GET("/:id", categoryHandlers.GetCategory)
	categories.PUT("/:id", categoryHandlers.UpdateCategory)
	categories.DELETE("/:id", categoryHandlers.DeleteCategory)

	// Car routes
	cars := api.Group("/cars")
	cars.GET("", carHandlers.ListCars)
	cars.POST("", carHandlers.CreateCar)
	cars.GET("/:id", carHandlers.GetCar)
	cars.PUT("/:id", carHandlers.UpdateCar)
	cars.DELETE("/:id", carHandlers.DeleteCar)

	log.Printf("Starting server on port %d", cfg.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

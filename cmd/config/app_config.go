package config

import (
	"os"
	"time"

	"fridge-assistant-backend/internal/api/handlers"
	"fridge-assistant-backend/internal/api/routes"
	"fridge-assistant-backend/internal/middleware"
	"fridge-assistant-backend/internal/utils"
	"fridge-assistant-backend/pkg/cooking"
	"fridge-assistant-backend/pkg/inventory"
	"fridge-assistant-backend/pkg/jwt"
	"fridge-assistant-backend/pkg/profile"
	"fridge-assistant-backend/pkg/recipe"
	"fridge-assistant-backend/pkg/user"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const defaultCookingSessionTTL = 30 * time.Minute

func NewApp(db *gorm.DB, rdb *redis.Client) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	profileRepository := profile.NewProfileRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	sessionStore := recipe.NewSessionStore(rdb, cookingSessionTTL())
	userService := user.NewUserService(userRepository, jwtService)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	profileService := profile.NewProfileService(profileRepository)
	recipeService := recipe.NewRecipeService(inventoryRepository, profileRepository, sessionStore)
	cookingService := cooking.NewCookingService(inventoryRepository, sessionStore)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	profileHandler := handlers.NewProfileHandler(profileService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, cookingService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		InventoryHandler: inventoryHandler,
		ProfileHandler:   profileHandler,
		RecipeHandler:    recipeHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()

	return app, nil
}

func cookingSessionTTL() time.Duration {
	ttl, err := time.ParseDuration(utils.GetConfig("COOKING_SESSION_TTL"))
	if err != nil || ttl <= 0 {
		return defaultCookingSessionTTL
	}
	return ttl
}

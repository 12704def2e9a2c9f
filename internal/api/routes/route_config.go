package routes

import (
	"fridge-assistant-backend/internal/api/handlers"
	"fridge-assistant-backend/internal/middleware"
	"fridge-assistant-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	InventoryHandler handlers.InventoryHandler
	ProfileHandler   handlers.ProfileHandler
	RecipeHandler    handlers.RecipeHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Fridge()
	c.Profile()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Fridge() {
	fridge := c.App.Group("/api/v1/fridge", c.Middleware.AuthMiddleware(c.JWTService))

	fridge.Post("/items", c.InventoryHandler.AddProducts)
	fridge.Get("/items", c.InventoryHandler.GetFridge)
	fridge.Get("/items/expiring", c.InventoryHandler.GetExpiring)
	fridge.Delete("/items/:id", c.InventoryHandler.DeleteEntry)
	fridge.Post("/items/:id/consume", c.InventoryHandler.ConsumeEntry)
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware(c.JWTService))

	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Post("/allergies", c.ProfileHandler.AddAllergies)
	profile.Delete("/allergies", c.ProfileHandler.ClearAllergies)
	profile.Post("/dislikes", c.ProfileHandler.AddDislikes)
	profile.Delete("/dislikes", c.ProfileHandler.ClearDislikes)
	profile.Put("/status", c.ProfileHandler.SetStatus)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("/suggest", c.RecipeHandler.SuggestRecipe)
	recipes.Post("/cook", c.RecipeHandler.ConfirmCooking)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

package routes

import (
	"Surplus-Reduction-Backend/internal/api/handlers"
	"Surplus-Reduction-Backend/internal/middleware"
	"Surplus-Reduction-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	AuthHandler    handlers.AuthHandler
	FoodHandler    handlers.FoodHandler
	RequestHandler handlers.RequestHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.AvailableFood()
	c.RequestFood()
}

func (c *Config) GuestRoute() {
	c.App.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("running")
	})
}

func (c *Config) Auth() {
	c.App.Post("/jwt", c.AuthHandler.IssueToken)
	c.App.Post("/logOut", c.AuthHandler.LogOut)
}

func (c *Config) AvailableFood() {
	availableFood := c.App.Group("/availableFood")
	availableFood.Get("", c.FoodHandler.ListFood)
	availableFood.Post("", c.FoodHandler.CreateFood)
	availableFood.Post("/image", c.FoodHandler.UploadFoodImage)
	availableFood.Get("/:id", c.FoodHandler.GetFood)
	availableFood.Put("/:id", c.FoodHandler.UpdateFood)
	availableFood.Delete("/:id", c.FoodHandler.DeleteFood)
}

// RequestFood gates only the listing. Creating a request stays open so
// clients that have not fetched a token can still submit one.
func (c *Config) RequestFood() {
	requestFood := c.App.Group("/requestFood")
	requestFood.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.RequestHandler.ListRequests)
	requestFood.Post("", c.RequestHandler.CreateRequest)
}

package routes

import (
	"foodgram/domain"
	"foodgram/internal/api/handlers"
	"foodgram/internal/api/presenters"
	"foodgram/internal/metrics"
	"foodgram/internal/middleware"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	TagHandler          handlers.TagHandler
	IngredientHandler   handlers.IngredientHandler
	RecipeHandler       handlers.RecipeHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.User()
	c.Tags()
	c.Ingredients()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) optionalAuth() fiber.Handler {
	return c.Middleware.OptionalAuthMiddleware(c.JWTService)
}

func (c *Config) Auth() {
	token := c.App.Group("/api/v1/auth/token")
	token.Post("/login", c.UserHandler.Login)
	token.Post("/logout", c.auth(), c.UserHandler.Logout)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", c.optionalAuth(), c.UserHandler.GetUsers)
		user.Get("/me", c.auth(), c.UserHandler.Me)
		user.Post("/set_password", c.auth(), c.UserHandler.SetPassword)
		user.Post("/forgot_password", c.UserHandler.ForgotPassword)
		user.Post("/reset_password", c.UserHandler.ResetPassword)
		user.Get("/subscriptions", c.auth(), c.SubscriptionHandler.GetSubscriptions)
		user.Get("/:id", c.optionalAuth(), c.UserHandler.GetUser)
		user.Post("/:id/subscribe", c.auth(), c.SubscriptionHandler.Subscribe)
		user.Delete("/:id/subscribe", c.auth(), c.SubscriptionHandler.Unsubscribe)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/v1/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)
	tags.Post("", c.auth(), c.TagHandler.CreateTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients")
	ingredients.Get("", c.IngredientHandler.SearchIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	ingredients.Post("", c.auth(), c.IngredientHandler.CreateIngredient)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	// registered before /:id so the literal path wins
	recipes.Get("/download_shopping_cart", c.auth(), c.RecipeHandler.DownloadShoppingCart)

	recipes.Get("", c.optionalAuth(), c.RecipeHandler.GetRecipes)
	recipes.Post("", c.auth(), c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.optionalAuth(), c.RecipeHandler.GetRecipe)
	recipes.Patch("/:id", c.auth(), c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.auth(), c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", c.auth(), c.RecipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", c.auth(), c.RecipeHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", c.auth(), c.RecipeHandler.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", c.auth(), c.RecipeHandler.RemoveFromShoppingCart)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessPing)
	})
	c.App.Get("/metrics", metrics.Handler())
}

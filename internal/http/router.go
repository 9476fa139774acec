package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tastebook-backend/internal/http/handlers"
	"github.com/yungbote/tastebook-backend/internal/http/middleware"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type RouterDeps struct {
	Log     *logger.Logger
	Auth    *middleware.AuthMiddleware
	Health  *handlers.HealthHandler
	Authn   *handlers.AuthHandler
	Users   *handlers.UserHandler
	Catalog *handlers.CatalogHandler
	Recipes *handlers.RecipeHandler

	// Local media serving; skipped when MediaBaseURL is an absolute URL
	// handled elsewhere (CDN, reverse proxy).
	MediaRoot    string
	MediaBaseURL string
}

// NewRouter assembles the gin engine and the full route table.
func NewRouter(d RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(d.Log))
	engine.Use(middleware.CORS())

	engine.GET("/healthcheck", d.Health.Check)
	if d.MediaRoot != "" && strings.HasPrefix(d.MediaBaseURL, "/") {
		engine.Static(d.MediaBaseURL, d.MediaRoot)
	}

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", d.Authn.Register)
		auth.POST("/login", d.Authn.Login)
		auth.POST("/refresh", d.Authn.Refresh)
		auth.POST("/logout", d.Auth.Require(), d.Authn.Logout)
	}

	users := api.Group("/users")
	{
		users.GET("", d.Auth.Optional(), d.Users.List)
		users.GET("/me", d.Auth.Require(), d.Users.Me)
		users.GET("/subscriptions", d.Auth.Require(), d.Users.Subscriptions)
		users.GET("/:id", d.Auth.Optional(), d.Users.Get)
		users.POST("/:id/subscribe", d.Auth.Require(), d.Users.Subscribe)
		users.DELETE("/:id/subscribe", d.Auth.Require(), d.Users.Unsubscribe)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", d.Catalog.ListTags)
		tags.GET("/:id", d.Catalog.GetTag)
	}

	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("", d.Catalog.ListIngredients)
		ingredients.GET("/:id", d.Catalog.GetIngredient)
	}

	recipes := api.Group("/recipes")
	{
		recipes.GET("", d.Auth.Optional(), d.Recipes.List)
		recipes.POST("", d.Auth.Require(), d.Recipes.Create)
		recipes.GET("/download_shopping_cart", d.Auth.Require(), d.Recipes.DownloadShoppingCart)
		recipes.GET("/:id", d.Auth.Optional(), d.Recipes.Get)
		recipes.PATCH("/:id", d.Auth.Require(), d.Recipes.Update)
		recipes.DELETE("/:id", d.Auth.Require(), d.Recipes.Delete)
		recipes.POST("/:id/favorite", d.Auth.Require(), d.Recipes.Favorite)
		recipes.DELETE("/:id/favorite", d.Auth.Require(), d.Recipes.Unfavorite)
		recipes.POST("/:id/shopping_cart", d.Auth.Require(), d.Recipes.AddToCart)
		recipes.DELETE("/:id/shopping_cart", d.Auth.Require(), d.Recipes.RemoveFromCart)
	}

	return engine
}

package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/platform/media"
	"github.com/yungbote/tastebook-backend/internal/services"
)

type Services struct {
	Auth         *services.AuthService
	User         *services.UserService
	Catalog      *services.CatalogService
	Recipe       *services.RecipeService
	Relation     *services.RelationService
	ShoppingList *services.ShoppingListService
}

func NewServices(db *gorm.DB, log *logger.Logger, cfg *Config, repos *Repos) *Services {
	mediaStore := media.NewStore(log, cfg.MediaRoot, cfg.MediaBaseURL)
	return &Services{
		Auth:    services.NewAuthService(db, log, repos.User, repos.UserToken),
		User:    services.NewUserService(db, log, repos.User, repos.Recipe, repos.Subscription),
		Catalog: services.NewCatalogService(db, log, repos.Tag, repos.Ingredient),
		Recipe: services.NewRecipeService(
			db, log, mediaStore,
			repos.Recipe, repos.RecipeTag, repos.RecipeIngredient,
			repos.Tag, repos.Ingredient, repos.User,
			repos.Favorite, repos.Cart, repos.Subscription,
		),
		Relation: services.NewRelationService(
			db, log,
			repos.Favorite, repos.Cart, repos.Subscription,
			repos.Recipe, repos.User,
		),
		ShoppingList: services.NewShoppingListService(db, log, repos.RecipeIngredient),
	}
}

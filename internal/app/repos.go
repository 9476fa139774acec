package app

import (
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/tastebook-backend/internal/data/repos/catalog"
	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	socialrepo "github.com/yungbote/tastebook-backend/internal/data/repos/social"
	userrepo "github.com/yungbote/tastebook-backend/internal/data/repos/user"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type Repos struct {
	User      userrepo.UserRepo
	UserToken userrepo.UserTokenRepo

	Tag        catalogrepo.TagRepo
	Ingredient catalogrepo.IngredientRepo

	Recipe           reciperepo.RecipeRepo
	RecipeTag        reciperepo.RecipeTagRepo
	RecipeIngredient reciperepo.RecipeIngredientRepo

	Favorite     socialrepo.FavoriteRepo
	Cart         socialrepo.CartRepo
	Subscription socialrepo.SubscriptionRepo
}

func NewRepos(db *gorm.DB, log *logger.Logger) *Repos {
	return &Repos{
		User:      userrepo.NewUserRepo(db, log),
		UserToken: userrepo.NewUserTokenRepo(db, log),

		Tag:        catalogrepo.NewTagRepo(db, log),
		Ingredient: catalogrepo.NewIngredientRepo(db, log),

		Recipe:           reciperepo.NewRecipeRepo(db, log),
		RecipeTag:        reciperepo.NewRecipeTagRepo(db, log),
		RecipeIngredient: reciperepo.NewRecipeIngredientRepo(db, log),

		Favorite:     socialrepo.NewFavoriteRepo(db, log),
		Cart:         socialrepo.NewCartRepo(db, log),
		Subscription: socialrepo.NewSubscriptionRepo(db, log),
	}
}

package services

import (
	"testing"

	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/tastebook-backend/internal/data/repos/catalog"
	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	socialrepo "github.com/yungbote/tastebook-backend/internal/data/repos/social"
	"github.com/yungbote/tastebook-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/tastebook-backend/internal/data/repos/user"
	"github.com/yungbote/tastebook-backend/internal/platform/media"
)

type testEnv struct {
	db        *gorm.DB
	mediaRoot string

	users         userrepo.UserRepo
	tokens        userrepo.UserTokenRepo
	tags          catalogrepo.TagRepo
	ingredients   catalogrepo.IngredientRepo
	recipes       reciperepo.RecipeRepo
	recipeTags    reciperepo.RecipeTagRepo
	lines         reciperepo.RecipeIngredientRepo
	favorites     socialrepo.FavoriteRepo
	cart          socialrepo.CartRepo
	subscriptions socialrepo.SubscriptionRepo

	auth     *AuthService
	user     *UserService
	catalog  *CatalogService
	recipe   *RecipeService
	relation *RelationService
	list     *ShoppingListService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:            conn,
		mediaRoot:     t.TempDir(),
		users:         userrepo.NewUserRepo(conn, log),
		tokens:        userrepo.NewUserTokenRepo(conn, log),
		tags:          catalogrepo.NewTagRepo(conn, log),
		ingredients:   catalogrepo.NewIngredientRepo(conn, log),
		recipes:       reciperepo.NewRecipeRepo(conn, log),
		recipeTags:    reciperepo.NewRecipeTagRepo(conn, log),
		lines:         reciperepo.NewRecipeIngredientRepo(conn, log),
		favorites:     socialrepo.NewFavoriteRepo(conn, log),
		cart:          socialrepo.NewCartRepo(conn, log),
		subscriptions: socialrepo.NewSubscriptionRepo(conn, log),
	}
	mediaStore := media.NewStore(log, env.mediaRoot, "/media")

	env.auth = NewAuthService(conn, log, env.users, env.tokens)
	env.user = NewUserService(conn, log, env.users, env.recipes, env.subscriptions)
	env.catalog = NewCatalogService(conn, log, env.tags, env.ingredients)
	env.recipe = NewRecipeService(
		conn, log, mediaStore,
		env.recipes, env.recipeTags, env.lines,
		env.tags, env.ingredients, env.users,
		env.favorites, env.cart, env.subscriptions,
	)
	env.relation = NewRelationService(conn, log, env.favorites, env.cart, env.subscriptions, env.recipes, env.users)
	env.list = NewShoppingListService(conn, log, env.lines)
	return env
}

package domain

import (
	"github.com/yungbote/tastebook-backend/internal/domain/catalog"
	"github.com/yungbote/tastebook-backend/internal/domain/recipe"
	"github.com/yungbote/tastebook-backend/internal/domain/social"
	"github.com/yungbote/tastebook-backend/internal/domain/user"
)

type User = user.User
type UserToken = user.UserToken

type Tag = catalog.Tag
type Ingredient = catalog.Ingredient

type Recipe = recipe.Recipe
type RecipeTag = recipe.RecipeTag
type RecipeIngredient = recipe.RecipeIngredient

type Favorite = social.Favorite
type ShoppingCartEntry = social.ShoppingCartEntry
type Subscription = social.Subscription

const (
	MinAmount         = recipe.MinAmount
	MaxAmount         = recipe.MaxAmount
	MinCookingMinutes = recipe.MinCookingMinutes
)

package services

import (
	"time"

	"github.com/google/uuid"

	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	types "github.com/yungbote/tastebook-backend/internal/domain"
)

// Read-side projections. These are pure functions over already-loaded rows;
// no validation happens here.

type TagView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

type IngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// IngredientLineView carries the catalog identity of the ingredient plus the
// per-recipe amount.
type IngredientLineView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type RecipeView struct {
	ID               uuid.UUID             `json:"id"`
	Author           *UserView             `json:"author"`
	Tags             []*TagView            `json:"tags"`
	Ingredients      []*IngredientLineView `json:"ingredients"`
	Name             string                `json:"name"`
	Image            string                `json:"image"`
	Text             string                `json:"text"`
	CookingTime      int                   `json:"cooking_time"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	CreatedAt        time.Time             `json:"created_at"`
}

// RecipeSummaryView is the trimmed shape used inside relation responses and
// the subscriptions payload.
type RecipeSummaryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type AuthorWithRecipesView struct {
	UserView
	Recipes      []*RecipeSummaryView `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
}

func projectTag(t *types.Tag) *TagView {
	return &TagView{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func projectIngredient(i *types.Ingredient) *IngredientView {
	return &IngredientView{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func projectLine(l *reciperepo.LineWithIngredient) *IngredientLineView {
	return &IngredientLineView{
		ID:              l.IngredientID,
		Name:            l.Name,
		MeasurementUnit: l.MeasurementUnit,
		Amount:          l.Amount,
	}
}

func projectUser(u *types.User, isSubscribed bool) *UserView {
	return &UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

func projectRecipeSummary(r *types.Recipe) *RecipeSummaryView {
	return &RecipeSummaryView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingMinutes,
	}
}

// projectRecipe assembles one nested view from its already-fetched parts.
// Lines arrive ordered by (name, unit) from the repo.
func projectRecipe(
	r *types.Recipe,
	author *UserView,
	tags []*TagView,
	lines []*IngredientLineView,
	isFavorited, isInCart bool,
) *RecipeView {
	if tags == nil {
		tags = []*TagView{}
	}
	if lines == nil {
		lines = []*IngredientLineView{}
	}
	return &RecipeView{
		ID:               r.ID,
		Author:           author,
		Tags:             tags,
		Ingredients:      lines,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingMinutes,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        r.CreatedAt,
	}
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

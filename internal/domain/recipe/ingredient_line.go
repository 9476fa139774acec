package recipe

import (
	"time"

	"github.com/google/uuid"
)

// RecipeIngredient is one line item: a catalog ingredient with the amount
// this recipe needs. One row per (recipe, ingredient); duplicates are a
// modeling error rejected at write time, never coalesced.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index;index:idx_recipe_ingredient,unique,priority:1" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_recipe_ingredient,unique,priority:2" json:"ingredient_id"`

	Amount int `gorm:"not null;type:smallint" json:"amount"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredient" }

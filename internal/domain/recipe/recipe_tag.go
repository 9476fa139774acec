package recipe

import (
	"time"

	"github.com/google/uuid"
)

// RecipeTag links a recipe to one catalog tag. No duplicate tag per recipe.
type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_recipe_tag,unique,priority:1" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;not null;index;index:idx_recipe_tag,unique,priority:2" json:"tag_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (RecipeTag) TableName() string { return "recipe_tag" }

package social

import (
	"time"

	"github.com/google/uuid"
)

// Favorite: existence of a row means the user favorited the recipe.
// Created and deleted by explicit toggle, never updated.
type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;index:idx_favorite_user_recipe,unique,priority:1" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_favorite_user_recipe,unique,priority:2" json:"recipe_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Favorite) TableName() string { return "favorite" }

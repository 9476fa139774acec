package social

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingCartEntry stages a recipe for the user's aggregated shopping list.
type ShoppingCartEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;index:idx_cart_user_recipe,unique,priority:1" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_cart_user_recipe,unique,priority:2" json:"recipe_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShoppingCartEntry) TableName() string { return "shopping_cart_entry" }

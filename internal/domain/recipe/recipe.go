package recipe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Amount and cooking-time bounds are part of the API contract, not storage
// defaults. Amount lives in a smallint column.
const (
	MinAmount         = 1
	MaxAmount         = 32767
	MinCookingMinutes = 1
)

// Recipe is the aggregate header. Its tag links and ingredient lines live in
// recipe_tag and recipe_ingredient and are only ever written together with
// the header in one transaction.
type Recipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`

	Name           string `gorm:"not null;column:name" json:"name"`
	ImageURL       string `gorm:"column:image_url" json:"image_url"`
	Text           string `gorm:"not null;type:text;column:text" json:"text"`
	CookingMinutes int    `gorm:"not null;column:cooking_minutes" json:"cooking_minutes"`

	Metadata datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

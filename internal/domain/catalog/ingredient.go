package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Ingredient is shared reference data, never owned by a recipe. Identity is
// the (name, measurement_unit) pair: "flour" in grams and "flour" in cups are
// distinct catalog entries.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null;index;index:idx_ingredient_name_unit,unique,priority:1" json:"name"`
	MeasurementUnit string    `gorm:"not null;column:measurement_unit;index:idx_ingredient_name_unit,unique,priority:2" json:"measurement_unit"`

	Nutrition datatypes.JSON `gorm:"type:jsonb" json:"nutrition,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Ingredient) TableName() string { return "ingredient" }

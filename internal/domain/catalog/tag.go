package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Tag is shared reference data: a named recipe category with a display color
// and a URL slug, each unique on its own.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Color string    `gorm:"uniqueIndex;not null;column:color" json:"color"`
	Slug  string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Tag) TableName() string { return "tag" }

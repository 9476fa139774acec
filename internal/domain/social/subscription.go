package social

import (
	"time"

	"github.com/google/uuid"
)

// Subscription: UserID follows AuthorID. Self-subscription is rejected in
// validation before the uniqueness check ever runs.
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;index:idx_subscription_user_author,unique,priority:1" json:"user_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_subscription_user_author,unique,priority:2" json:"author_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Subscription) TableName() string { return "subscription" }

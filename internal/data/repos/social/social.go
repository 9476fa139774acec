package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationRepo is the storage shape every toggleable link table shares: an
// existence check, an insert, and a delete. The uniqueness index on each
// table is the arbiter for concurrent adds.
type RelationRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, targetID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, userID, targetID uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, userID, targetID uuid.UUID) (int64, error)
}

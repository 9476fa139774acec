package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type SubscriptionRepo interface {
	RelationRepo
	AuthorIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error)
	ListAuthorIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (r *subscriptionRepo) Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepo) Create(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.Subscription{ID: uuid.New(), UserID: userID, AuthorID: authorID}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *subscriptionRepo) Delete(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Subscription{})
	return res.RowsAffected, res.Error
}

// AuthorIDsForUser returns the subset of authorIDs the user follows.
func (r *subscriptionRepo) AuthorIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *subscriptionRepo) ListAuthorIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID)
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var ids []uuid.UUID
	if err := query.Pluck("author_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type FavoriteRepo interface {
	RelationRepo
	DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error
	RecipeIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error)
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return &favoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

func (r *favoriteRepo) Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepo) Create(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *favoriteRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *favoriteRepo) DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.Favorite{}).Error
}

// RecipeIDsForUser returns the subset of recipeIDs the user has favorited.
func (r *favoriteRepo) RecipeIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

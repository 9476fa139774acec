package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type CartRepo interface {
	RelationRepo
	DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error
	RecipeIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (r *cartRepo) Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *cartRepo) Create(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.ShoppingCartEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *cartRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.ShoppingCartEntry{})
	return res.RowsAffected, res.Error
}

func (r *cartRepo) DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.ShoppingCartEntry{}).Error
}

func (r *cartRepo) RecipeIDsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

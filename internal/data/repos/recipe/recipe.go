package recipe

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// ListFilter narrows the recipe listing. Nil/empty fields are skipped.
// FavoritedBy and InCartOf are viewer-scoped and already resolved by the
// service layer (anonymous viewers never set them).
type ListFilter struct {
	AuthorID    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Limit       int
	Offset      int
}

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipes []*types.Recipe) ([]*types.Recipe, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.Recipe, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, fields map[string]any) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error
	List(ctx context.Context, tx *gorm.DB, f ListFilter) ([]*types.Recipe, int64, error)
	CountByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	GetByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID, perAuthorLimit int) ([]*types.Recipe, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipes []*types.Recipe) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(recipes) == 0 {
		return []*types.Recipe{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (rr *recipeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Recipe
	if len(recipeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", recipeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) UpdateFields(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("id = ?", recipeID).
		Updates(fields).Error
}

func (rr *recipeRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(recipeIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", recipeIDs).
		Delete(&types.Recipe{}).Error
}

func (rr *recipeRepo) List(ctx context.Context, tx *gorm.DB, f ListFilter) ([]*types.Recipe, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Recipe{})
	if f.AuthorID != nil {
		q = q.Where("recipe.author_id = ?", *f.AuthorID)
	}
	// Set filters go through IN-subqueries so the same query counts and pages
	// without duplicate rows.
	if len(f.TagSlugs) > 0 {
		sub := transaction.Model(&types.RecipeTag{}).
			Select("recipe_tag.recipe_id").
			Joins("JOIN tag ON tag.id = recipe_tag.tag_id").
			Where("tag.slug IN ?", f.TagSlugs)
		q = q.Where("recipe.id IN (?)", sub)
	}
	if f.FavoritedBy != nil {
		sub := transaction.Model(&types.Favorite{}).
			Select("favorite.recipe_id").
			Where("favorite.user_id = ?", *f.FavoritedBy)
		q = q.Where("recipe.id IN (?)", sub)
	}
	if f.InCartOf != nil {
		sub := transaction.Model(&types.ShoppingCartEntry{}).
			Select("shopping_cart_entry.recipe_id").
			Where("shopping_cart_entry.user_id = ?", *f.InCartOf)
		q = q.Where("recipe.id IN (?)", sub)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Tiebreak on id keeps pages stable for recipes created in the same tick.
	q = q.Order("recipe.created_at DESC, recipe.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var results []*types.Recipe
	if err := q.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (rr *recipeRepo) CountByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	out := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AuthorID] = r.Total
	}
	return out, nil
}

func (rr *recipeRepo) GetByAuthorIDs(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID, perAuthorLimit int) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Recipe
	if len(authorIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	if perAuthorLimit <= 0 {
		return results, nil
	}
	// Trim in memory: subscription pages list a handful of authors, each with
	// a few most-recent recipes.
	kept := make([]*types.Recipe, 0, len(results))
	seen := make(map[uuid.UUID]int, len(authorIDs))
	for _, r := range results {
		if seen[r.AuthorID] >= perAuthorLimit {
			continue
		}
		seen[r.AuthorID]++
		kept = append(kept, r)
	}
	return kept, nil
}

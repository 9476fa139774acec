package recipe

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type RecipeTagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.RecipeTag) ([]*types.RecipeTag, error)
	GetByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeTag, error)
	DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error
}

type recipeTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeTagRepo(db *gorm.DB, baseLog *logger.Logger) RecipeTagRepo {
	return &recipeTagRepo{db: db, log: baseLog.With("repo", "RecipeTagRepo")}
}

func (rt *recipeTagRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.RecipeTag) ([]*types.RecipeTag, error) {
	transaction := tx
	if transaction == nil {
		transaction = rt.db
	}
	if len(links) == 0 {
		return []*types.RecipeTag{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (rt *recipeTagRepo) GetByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeTag, error) {
	transaction := tx
	if transaction == nil {
		transaction = rt.db
	}
	var results []*types.RecipeTag
	if len(recipeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rt *recipeTagRepo) DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rt.db
	}
	if len(recipeIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.RecipeTag{}).Error
}

// LineWithIngredient is one ingredient line joined with its catalog entry,
// the unit the read-side projection consumes.
type LineWithIngredient struct {
	RecipeID        uuid.UUID `json:"recipe_id"`
	IngredientID    uuid.UUID `json:"ingredient_id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// CartSum is one shopping-list group: amounts summed over every cart recipe
// for a (name, unit) pair.
type CartSum struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int64  `json:"total"`
}

type RecipeIngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lines []*types.RecipeIngredient) ([]*types.RecipeIngredient, error)
	GetByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeIngredient, error)
	GetWithIngredientByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*LineWithIngredient, error)
	DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error
	SumCartAmounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*CartSum, error)
}

type recipeIngredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeIngredientRepo(db *gorm.DB, baseLog *logger.Logger) RecipeIngredientRepo {
	return &recipeIngredientRepo{db: db, log: baseLog.With("repo", "RecipeIngredientRepo")}
}

func (ri *recipeIngredientRepo) Create(ctx context.Context, tx *gorm.DB, lines []*types.RecipeIngredient) ([]*types.RecipeIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ri.db
	}
	if len(lines) == 0 {
		return []*types.RecipeIngredient{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (ri *recipeIngredientRepo) GetByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ri.db
	}
	var results []*types.RecipeIngredient
	if len(recipeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ri *recipeIngredientRepo) GetWithIngredientByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*LineWithIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ri.db
	}
	var results []*LineWithIngredient
	if len(recipeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.RecipeIngredient{}).
		Select("recipe_ingredient.recipe_id, recipe_ingredient.ingredient_id, ingredient.name, ingredient.measurement_unit, recipe_ingredient.amount").
		Joins("JOIN ingredient ON ingredient.id = recipe_ingredient.ingredient_id").
		Where("recipe_ingredient.recipe_id IN ?", recipeIDs).
		Order("ingredient.name ASC, ingredient.measurement_unit ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ri *recipeIngredientRepo) DeleteByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ri.db
	}
	if len(recipeIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.RecipeIngredient{}).Error
}

func (ri *recipeIngredientRepo) SumCartAmounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*CartSum, error) {
	transaction := tx
	if transaction == nil {
		transaction = ri.db
	}
	var results []*CartSum
	// Grouped by (name, unit), not ingredient id: two catalog entries that
	// share a name with different units must stay separate lines.
	if err := transaction.WithContext(ctx).
		Model(&types.RecipeIngredient{}).
		Select("ingredient.name, ingredient.measurement_unit, SUM(recipe_ingredient.amount) AS total").
		Joins("JOIN shopping_cart_entry ON shopping_cart_entry.recipe_id = recipe_ingredient.recipe_id AND shopping_cart_entry.user_id = ?", userID).
		Joins("JOIN ingredient ON ingredient.id = recipe_ingredient.ingredient_id").
		Group("ingredient.name, ingredient.measurement_unit").
		Order("ingredient.name ASC, ingredient.measurement_unit ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type IngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error)
	// CreateIgnoreExisting inserts the batch, skipping rows whose
	// (name, measurement_unit) already exists. Returns the number inserted.
	CreateIgnoreExisting(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) (int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error)
	List(ctx context.Context, tx *gorm.DB, namePrefix string) ([]*types.Ingredient, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (ir *ingredientRepo) Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(ingredients) == 0 {
		return []*types.Ingredient{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (ir *ingredientRepo) CreateIgnoreExisting(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(ingredients) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "measurement_unit"}},
			DoNothing: true,
		}).
		Create(&ingredients)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ir *ingredientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Ingredient
	if len(ingredientIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ingredientIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) List(ctx context.Context, tx *gorm.DB, namePrefix string) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	q := transaction.WithContext(ctx).Order("name ASC, measurement_unit ASC")
	if p := strings.TrimSpace(namePrefix); p != "" {
		q = q.Where("LOWER(name) LIKE ?", strings.ToLower(p)+"%")
	}
	var results []*types.Ingredient
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

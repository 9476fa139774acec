package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/tastebook-backend/internal/data/repos/catalog"
	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// CatalogService serves the shared reference data: tags and ingredients.
// Both sets are small and served unpaginated.
type CatalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	tags        catalogrepo.TagRepo
	ingredients catalogrepo.IngredientRepo
}

func NewCatalogService(db *gorm.DB, baseLog *logger.Logger, tags catalogrepo.TagRepo, ingredients catalogrepo.IngredientRepo) *CatalogService {
	return &CatalogService{
		db:          db,
		log:         baseLog.With("service", "CatalogService"),
		tags:        tags,
		ingredients: ingredients,
	}
}

func (s *CatalogService) ListTags(ctx context.Context) ([]*TagView, error) {
	rows, err := s.tags.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	views := make([]*TagView, 0, len(rows))
	for _, t := range rows {
		views = append(views, projectTag(t))
	}
	return views, nil
}

func (s *CatalogService) GetTag(ctx context.Context, tagID uuid.UUID) (*TagView, error) {
	rows, err := s.tags.GetByIDs(ctx, nil, []uuid.UUID{tagID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("tag_not_found", fmt.Errorf("tag %s not found", tagID))
	}
	return projectTag(rows[0]), nil
}

// ListIngredients filters by case-insensitive name prefix when namePrefix is
// non-empty.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]*IngredientView, error) {
	rows, err := s.ingredients.List(ctx, nil, namePrefix)
	if err != nil {
		return nil, err
	}
	views := make([]*IngredientView, 0, len(rows))
	for _, i := range rows {
		views = append(views, projectIngredient(i))
	}
	return views, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*IngredientView, error) {
	rows, err := s.ingredients.GetByIDs(ctx, nil, []uuid.UUID{ingredientID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("ingredient_not_found", fmt.Errorf("ingredient %s not found", ingredientID))
	}
	return projectIngredient(rows[0]), nil
}

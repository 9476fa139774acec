package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// ShoppingItem is one aggregated line of the shopping list.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int64  `json:"total"`
}

// ShoppingListService flattens the viewer's cart into summed ingredient
// groups and renders the plain-text download.
type ShoppingListService struct {
	db    *gorm.DB
	log   *logger.Logger
	lines reciperepo.RecipeIngredientRepo
}

func NewShoppingListService(db *gorm.DB, baseLog *logger.Logger, lines reciperepo.RecipeIngredientRepo) *ShoppingListService {
	return &ShoppingListService{
		db:    db,
		log:   baseLog.With("service", "ShoppingListService"),
		lines: lines,
	}
}

// Build groups every ingredient line of every cart recipe by
// (name, measurement unit) and sums the amounts. The repo orders groups by
// name then unit, so the output is deterministic. An empty cart yields an
// empty slice.
func (s *ShoppingListService) Build(ctx context.Context, userID uuid.UUID) ([]*ShoppingItem, error) {
	sums, err := s.lines.SumCartAmounts(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	items := make([]*ShoppingItem, 0, len(sums))
	for _, g := range sums {
		items = append(items, &ShoppingItem{
			Name:            g.Name,
			MeasurementUnit: g.MeasurementUnit,
			Total:           g.Total,
		})
	}
	return items, nil
}

// Render formats the list for the text/plain attachment.
func (s *ShoppingListService) Render(items []*ShoppingItem) string {
	var b strings.Builder
	b.WriteString("Shopping list:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) — %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}

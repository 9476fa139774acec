package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/tastebook-backend/internal/data/repos/catalog"
	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	socialrepo "github.com/yungbote/tastebook-backend/internal/data/repos/social"
	userrepo "github.com/yungbote/tastebook-backend/internal/data/repos/user"
	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
	"github.com/yungbote/tastebook-backend/internal/platform/media"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type IngredientLineInput struct {
	IngredientID uuid.UUID `json:"id"`
	Amount       int       `json:"amount"`
}

type CreateRecipeInput struct {
	AuthorID    uuid.UUID
	Name        string
	Text        string
	CookingTime int
	Image       string
	TagIDs      []uuid.UUID
	Lines       []IngredientLineInput
}

// UpdateRecipeInput patches the header field-by-field; TagIDs and Lines
// replace the whole set when non-nil and leave it untouched when nil.
type UpdateRecipeInput struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	TagIDs      []uuid.UUID
	Lines       []IngredientLineInput
}

type RecipeListFilter struct {
	AuthorID  *uuid.UUID
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Limit     int
	Offset    int
}

// RecipeService is both sides of the recipe aggregate: the writer keeps
// header, tag links and ingredient lines consistent inside one transaction,
// the reader projects rows into nested viewer-relative views.
type RecipeService struct {
	db    *gorm.DB
	log   *logger.Logger
	media media.Store

	recipes     reciperepo.RecipeRepo
	recipeTags  reciperepo.RecipeTagRepo
	lines       reciperepo.RecipeIngredientRepo
	tags        catalogrepo.TagRepo
	ingredients catalogrepo.IngredientRepo
	users       userrepo.UserRepo

	favorites     socialrepo.FavoriteRepo
	cart          socialrepo.CartRepo
	subscriptions socialrepo.SubscriptionRepo
}

func NewRecipeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	mediaStore media.Store,
	recipes reciperepo.RecipeRepo,
	recipeTags reciperepo.RecipeTagRepo,
	lines reciperepo.RecipeIngredientRepo,
	tags catalogrepo.TagRepo,
	ingredients catalogrepo.IngredientRepo,
	users userrepo.UserRepo,
	favorites socialrepo.FavoriteRepo,
	cart socialrepo.CartRepo,
	subscriptions socialrepo.SubscriptionRepo,
) *RecipeService {
	return &RecipeService{
		db:            db,
		log:           baseLog.With("service", "RecipeService"),
		media:         mediaStore,
		recipes:       recipes,
		recipeTags:    recipeTags,
		lines:         lines,
		tags:          tags,
		ingredients:   ingredients,
		users:         users,
		favorites:     favorites,
		cart:          cart,
		subscriptions: subscriptions,
	}
}

// validateHeader checks the scalar fields shared by create and full update.
func validateHeader(name, text string, cookingTime int) error {
	if strings.TrimSpace(name) == "" {
		return apierr.Validation(errors.New("name is required"))
	}
	if strings.TrimSpace(text) == "" {
		return apierr.Validation(errors.New("text is required"))
	}
	if cookingTime < types.MinCookingMinutes {
		return apierr.Validation(fmt.Errorf("cooking_time must be at least %d", types.MinCookingMinutes))
	}
	return nil
}

// resolveTags verifies every tag id exists; the order of the returned rows
// follows the input ids.
func (s *RecipeService) resolveTags(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*types.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, apierr.Validation(errors.New("at least one tag is required"))
	}
	seen := make(map[uuid.UUID]struct{}, len(tagIDs))
	unique := make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	rows, err := s.tags.GetByIDs(ctx, tx, unique)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Tag, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}
	ordered := make([]*types.Tag, 0, len(unique))
	for _, id := range unique {
		t, ok := byID[id]
		if !ok {
			return nil, apierr.Validation(fmt.Errorf("tag %s does not exist", id))
		}
		ordered = append(ordered, t)
	}
	return ordered, nil
}

// validateLines enforces the line rules: non-empty set, resolvable
// ingredients, amounts in bounds, no ingredient twice.
func (s *RecipeService) validateLines(ctx context.Context, tx *gorm.DB, lines []IngredientLineInput) error {
	if len(lines) == 0 {
		return apierr.Validation(errors.New("at least one ingredient line is required"))
	}
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.IngredientID]; dup {
			return apierr.Validation(fmt.Errorf("ingredient %s appears more than once", l.IngredientID))
		}
		seen[l.IngredientID] = struct{}{}
		if l.Amount < types.MinAmount || l.Amount > types.MaxAmount {
			return apierr.Validation(fmt.Errorf("amount for ingredient %s must be between %d and %d", l.IngredientID, types.MinAmount, types.MaxAmount))
		}
		ids = append(ids, l.IngredientID)
	}
	rows, err := s.ingredients.GetByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	if len(rows) != len(ids) {
		found := make(map[uuid.UUID]struct{}, len(rows))
		for _, r := range rows {
			found[r.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return apierr.Validation(fmt.Errorf("ingredient %s does not exist", id))
			}
		}
	}
	return nil
}

func (s *RecipeService) storeImage(dataURI string) (string, error) {
	if strings.TrimSpace(dataURI) == "" {
		return "", nil
	}
	url, err := s.media.SaveDataURI(dataURI, "recipes")
	if err != nil {
		return "", apierr.Validation(fmt.Errorf("invalid image payload: %w", err))
	}
	return url, nil
}

// Create writes the whole aggregate in one transaction. It is not
// idempotent: two identical calls produce two recipes.
func (s *RecipeService) Create(ctx context.Context, in CreateRecipeInput) (*RecipeView, error) {
	if err := validateHeader(in.Name, in.Text, in.CookingTime); err != nil {
		return nil, err
	}

	recipeID := uuid.New()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := s.resolveTags(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := s.validateLines(ctx, tx, in.Lines); err != nil {
			return err
		}
		// Save the image only after the aggregate has validated, so a
		// rejected create leaves nothing on disk.
		imageURL, err := s.storeImage(in.Image)
		if err != nil {
			return err
		}

		header := &types.Recipe{
			ID:             recipeID,
			AuthorID:       in.AuthorID,
			Name:           in.Name,
			ImageURL:       imageURL,
			Text:           in.Text,
			CookingMinutes: in.CookingTime,
		}
		if _, err := s.recipes.Create(ctx, tx, []*types.Recipe{header}); err != nil {
			return err
		}
		if err := s.writeLinks(ctx, tx, recipeID, tags, in.Lines); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Recipe created", "recipe_id", recipeID, "author_id", in.AuthorID)
	viewer := in.AuthorID
	return s.Get(ctx, recipeID, &viewer)
}

func (s *RecipeService) writeLinks(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, tags []*types.Tag, lines []IngredientLineInput) error {
	tagLinks := make([]*types.RecipeTag, 0, len(tags))
	for _, t := range tags {
		tagLinks = append(tagLinks, &types.RecipeTag{ID: uuid.New(), RecipeID: recipeID, TagID: t.ID})
	}
	if _, err := s.recipeTags.Create(ctx, tx, tagLinks); err != nil {
		return err
	}
	lineRows := make([]*types.RecipeIngredient, 0, len(lines))
	for _, l := range lines {
		lineRows = append(lineRows, &types.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: l.IngredientID,
			Amount:       l.Amount,
		})
	}
	_, err := s.lines.Create(ctx, tx, lineRows)
	return err
}

func (s *RecipeService) getOwned(ctx context.Context, tx *gorm.DB, recipeID, requesterID uuid.UUID) (*types.Recipe, error) {
	rows, err := s.recipes.GetByIDs(ctx, tx, []uuid.UUID{recipeID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("recipe_not_found", fmt.Errorf("recipe %s not found", recipeID))
	}
	if rows[0].AuthorID != requesterID {
		return nil, apierr.Forbidden(fmt.Errorf("recipe %s belongs to another author", recipeID))
	}
	return rows[0], nil
}

// Update patches the aggregate. Supplied tag or line sets replace the stored
// set wholesale.
func (s *RecipeService) Update(ctx context.Context, recipeID uuid.UUID, in UpdateRecipeInput, requesterID uuid.UUID) (*RecipeView, error) {
	if in.CookingTime != nil && *in.CookingTime < types.MinCookingMinutes {
		return nil, apierr.Validation(fmt.Errorf("cooking_time must be at least %d", types.MinCookingMinutes))
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apierr.Validation(errors.New("name cannot be empty"))
	}
	if in.Text != nil && strings.TrimSpace(*in.Text) == "" {
		return nil, apierr.Validation(errors.New("text cannot be empty"))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getOwned(ctx, tx, recipeID, requesterID); err != nil {
			return err
		}

		var tags []*types.Tag
		if in.TagIDs != nil {
			resolved, err := s.resolveTags(ctx, tx, in.TagIDs)
			if err != nil {
				return err
			}
			tags = resolved
		}
		if in.Lines != nil {
			if err := s.validateLines(ctx, tx, in.Lines); err != nil {
				return err
			}
		}
		var imageURL string
		if in.Image != nil {
			url, err := s.storeImage(*in.Image)
			if err != nil {
				return err
			}
			imageURL = url
		}

		fields := map[string]any{}
		if in.Name != nil {
			fields["name"] = *in.Name
		}
		if in.Text != nil {
			fields["text"] = *in.Text
		}
		if in.CookingTime != nil {
			fields["cooking_minutes"] = *in.CookingTime
		}
		if in.Image != nil {
			fields["image_url"] = imageURL
		}
		if len(fields) > 0 {
			if err := s.recipes.UpdateFields(ctx, tx, recipeID, fields); err != nil {
				return err
			}
		}

		if in.TagIDs != nil {
			if err := s.recipeTags.DeleteByRecipeIDs(ctx, tx, []uuid.UUID{recipeID}); err != nil {
				return err
			}
			tagLinks := make([]*types.RecipeTag, 0, len(tags))
			for _, t := range tags {
				tagLinks = append(tagLinks, &types.RecipeTag{ID: uuid.New(), RecipeID: recipeID, TagID: t.ID})
			}
			if _, err := s.recipeTags.Create(ctx, tx, tagLinks); err != nil {
				return err
			}
		}
		if in.Lines != nil {
			if err := s.lines.DeleteByRecipeIDs(ctx, tx, []uuid.UUID{recipeID}); err != nil {
				return err
			}
			lineRows := make([]*types.RecipeIngredient, 0, len(in.Lines))
			for _, l := range in.Lines {
				lineRows = append(lineRows, &types.RecipeIngredient{
					ID:           uuid.New(),
					RecipeID:     recipeID,
					IngredientID: l.IngredientID,
					Amount:       l.Amount,
				})
			}
			if _, err := s.lines.Create(ctx, tx, lineRows); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Recipe updated", "recipe_id", recipeID, "author_id", requesterID)
	viewer := requesterID
	return s.Get(ctx, recipeID, &viewer)
}

// Delete removes the aggregate and every social row pointing at it.
func (s *RecipeService) Delete(ctx context.Context, recipeID, requesterID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getOwned(ctx, tx, recipeID, requesterID); err != nil {
			return err
		}
		ids := []uuid.UUID{recipeID}
		if err := s.recipeTags.DeleteByRecipeIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.lines.DeleteByRecipeIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.favorites.DeleteByRecipeIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.cart.DeleteByRecipeIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.recipes.DeleteByIDs(ctx, tx, ids)
	})
	if err != nil {
		return err
	}
	s.log.Info("Recipe deleted", "recipe_id", recipeID, "author_id", requesterID)
	return nil
}

// Get loads one recipe as the given viewer. A nil viewer gets both social
// flags false.
func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (*RecipeView, error) {
	rows, err := s.recipes.GetByIDs(ctx, nil, []uuid.UUID{recipeID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("recipe_not_found", fmt.Errorf("recipe %s not found", recipeID))
	}
	views, err := s.project(ctx, rows, viewerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// List pages through recipes newest-first with viewer-scoped filters.
// Favorited/InCart are ignored for anonymous viewers.
func (s *RecipeService) List(ctx context.Context, f RecipeListFilter, viewerID *uuid.UUID) ([]*RecipeView, int64, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	repoFilter := reciperepo.ListFilter{
		AuthorID: f.AuthorID,
		TagSlugs: f.TagSlugs,
		Limit:    limit,
		Offset:   offset,
	}
	if viewerID != nil {
		if f.Favorited {
			repoFilter.FavoritedBy = viewerID
		}
		if f.InCart {
			repoFilter.InCartOf = viewerID
		}
	}

	rows, total, err := s.recipes.List(ctx, nil, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.project(ctx, rows, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// project batch-loads tags, lines, authors and viewer flags for a page of
// recipes and assembles the nested views in input order.
func (s *RecipeService) project(ctx context.Context, rows []*types.Recipe, viewerID *uuid.UUID) ([]*RecipeView, error) {
	if len(rows) == 0 {
		return []*RecipeView{}, nil
	}
	recipeIDs := make([]uuid.UUID, 0, len(rows))
	authorIDs := make([]uuid.UUID, 0, len(rows))
	authorSeen := make(map[uuid.UUID]struct{}, len(rows))
	for _, r := range rows {
		recipeIDs = append(recipeIDs, r.ID)
		if _, ok := authorSeen[r.AuthorID]; !ok {
			authorSeen[r.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	tagLinks, err := s.recipeTags.GetByRecipeIDs(ctx, nil, recipeIDs)
	if err != nil {
		return nil, err
	}
	tagIDs := make([]uuid.UUID, 0, len(tagLinks))
	tagSeen := make(map[uuid.UUID]struct{}, len(tagLinks))
	for _, link := range tagLinks {
		if _, ok := tagSeen[link.TagID]; !ok {
			tagSeen[link.TagID] = struct{}{}
			tagIDs = append(tagIDs, link.TagID)
		}
	}
	tagRows, err := s.tags.GetByIDs(ctx, nil, tagIDs)
	if err != nil {
		return nil, err
	}
	tagByID := make(map[uuid.UUID]*TagView, len(tagRows))
	for _, t := range tagRows {
		tagByID[t.ID] = projectTag(t)
	}
	tagsByRecipe := make(map[uuid.UUID][]*TagView, len(rows))
	for _, link := range tagLinks {
		if tv, ok := tagByID[link.TagID]; ok {
			tagsByRecipe[link.RecipeID] = append(tagsByRecipe[link.RecipeID], tv)
		}
	}

	lineRows, err := s.lines.GetWithIngredientByRecipeIDs(ctx, nil, recipeIDs)
	if err != nil {
		return nil, err
	}
	linesByRecipe := make(map[uuid.UUID][]*IngredientLineView, len(rows))
	for _, l := range lineRows {
		linesByRecipe[l.RecipeID] = append(linesByRecipe[l.RecipeID], projectLine(l))
	}

	authorRows, err := s.users.GetByIDs(ctx, nil, authorIDs)
	if err != nil {
		return nil, err
	}

	var (
		favoritedSet  map[uuid.UUID]struct{}
		inCartSet     map[uuid.UUID]struct{}
		subscribedSet map[uuid.UUID]struct{}
	)
	if viewerID != nil {
		favIDs, err := s.favorites.RecipeIDsForUser(ctx, nil, *viewerID, recipeIDs)
		if err != nil {
			return nil, err
		}
		cartIDs, err := s.cart.RecipeIDsForUser(ctx, nil, *viewerID, recipeIDs)
		if err != nil {
			return nil, err
		}
		subIDs, err := s.subscriptions.AuthorIDsForUser(ctx, nil, *viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
		favoritedSet = idSet(favIDs)
		inCartSet = idSet(cartIDs)
		subscribedSet = idSet(subIDs)
	}

	authorByID := make(map[uuid.UUID]*UserView, len(authorRows))
	for _, u := range authorRows {
		_, subscribed := subscribedSet[u.ID]
		authorByID[u.ID] = projectUser(u, subscribed)
	}

	views := make([]*RecipeView, 0, len(rows))
	for _, r := range rows {
		_, fav := favoritedSet[r.ID]
		_, cart := inCartSet[r.ID]
		views = append(views, projectRecipe(r, authorByID[r.AuthorID], tagsByRecipe[r.ID], linesByRecipe[r.ID], fav, cart))
	}
	return views, nil
}

// Summary is the trimmed projection used by relation endpoints.
func (s *RecipeService) Summary(ctx context.Context, recipeID uuid.UUID) (*RecipeSummaryView, error) {
	rows, err := s.recipes.GetByIDs(ctx, nil, []uuid.UUID{recipeID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("recipe_not_found", fmt.Errorf("recipe %s not found", recipeID))
	}
	return projectRecipeSummary(rows[0]), nil
}

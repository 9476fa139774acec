package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	socialrepo "github.com/yungbote/tastebook-backend/internal/data/repos/social"
	userrepo "github.com/yungbote/tastebook-backend/internal/data/repos/user"
	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// UserService serves profiles, the user listing and the subscriptions
// payload. All views are viewer-relative: is_subscribed reflects the caller.
type UserService struct {
	db  *gorm.DB
	log *logger.Logger

	users         userrepo.UserRepo
	recipes       reciperepo.RecipeRepo
	subscriptions socialrepo.SubscriptionRepo
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	users userrepo.UserRepo,
	recipes reciperepo.RecipeRepo,
	subscriptions socialrepo.SubscriptionRepo,
) *UserService {
	return &UserService{
		db:            db,
		log:           baseLog.With("service", "UserService"),
		users:         users,
		recipes:       recipes,
		subscriptions: subscriptions,
	}
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*UserView, error) {
	rows, err := s.users.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %s not found", userID))
	}
	subscribed := false
	if viewerID != nil && *viewerID != userID {
		subscribed, err = s.subscriptions.Exists(ctx, nil, *viewerID, userID)
		if err != nil {
			return nil, err
		}
	}
	return projectUser(rows[0], subscribed), nil
}

func (s *UserService) List(ctx context.Context, limit, offset int, viewerID *uuid.UUID) ([]*UserView, int64, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, total, err := s.users.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	subscribedSet := map[uuid.UUID]struct{}{}
	if viewerID != nil {
		ids := make([]uuid.UUID, 0, len(rows))
		for _, u := range rows {
			ids = append(ids, u.ID)
		}
		subIDs, err := s.subscriptions.AuthorIDsForUser(ctx, nil, *viewerID, ids)
		if err != nil {
			return nil, 0, err
		}
		subscribedSet = idSet(subIDs)
	}
	views := make([]*UserView, 0, len(rows))
	for _, u := range rows {
		_, subscribed := subscribedSet[u.ID]
		views = append(views, projectUser(u, subscribed))
	}
	return views, total, nil
}

// Subscriptions returns the authors the user follows, each with their
// newest recipes trimmed to recipesLimit and a total recipe count.
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, limit, offset, recipesLimit int) ([]*AuthorWithRecipesView, int64, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	if recipesLimit <= 0 {
		recipesLimit = 3
	}

	authorIDs, total, err := s.subscriptions.ListAuthorIDs(ctx, nil, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(authorIDs) == 0 {
		return []*AuthorWithRecipesView{}, total, nil
	}

	authors, err := s.users.GetByIDs(ctx, nil, authorIDs)
	if err != nil {
		return nil, 0, err
	}
	authorByID := make(map[uuid.UUID]*types.User, len(authors))
	for _, u := range authors {
		authorByID[u.ID] = u
	}

	recipeRows, err := s.recipes.GetByAuthorIDs(ctx, nil, authorIDs, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	recipesByAuthor := make(map[uuid.UUID][]*RecipeSummaryView, len(authorIDs))
	for _, r := range recipeRows {
		recipesByAuthor[r.AuthorID] = append(recipesByAuthor[r.AuthorID], projectRecipeSummary(r))
	}
	counts, err := s.recipes.CountByAuthorIDs(ctx, nil, authorIDs)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*AuthorWithRecipesView, 0, len(authorIDs))
	for _, id := range authorIDs {
		u, ok := authorByID[id]
		if !ok {
			continue
		}
		recipes := recipesByAuthor[id]
		if recipes == nil {
			recipes = []*RecipeSummaryView{}
		}
		views = append(views, &AuthorWithRecipesView{
			UserView:     *projectUser(u, true),
			Recipes:      recipes,
			RecipesCount: counts[id],
		})
	}
	return views, total, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reciperepo "github.com/yungbote/tastebook-backend/internal/data/repos/recipe"
	socialrepo "github.com/yungbote/tastebook-backend/internal/data/repos/social"
	userrepo "github.com/yungbote/tastebook-backend/internal/data/repos/user"
	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// relation describes one toggleable link table. The add/remove state machine
// is identical for all of them; only the target lookup and the optional
// pre-check differ.
type relation struct {
	name string
	repo socialrepo.RelationRepo

	// targetExists resolves the target id inside the transaction; a false
	// return becomes NotFound.
	targetExists func(ctx context.Context, tx *gorm.DB, targetID uuid.UUID) (bool, error)

	// precheck runs before the existence check. Used by subscriptions to
	// reject self-subscribe.
	precheck func(userID, targetID uuid.UUID) error
}

// RelationService owns the favorite, shopping-cart and subscription toggles.
type RelationService struct {
	db  *gorm.DB
	log *logger.Logger

	favorite     relation
	cart         relation
	subscription relation
}

func NewRelationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	favorites socialrepo.FavoriteRepo,
	cart socialrepo.CartRepo,
	subscriptions socialrepo.SubscriptionRepo,
	recipes reciperepo.RecipeRepo,
	users userrepo.UserRepo,
) *RelationService {
	recipeExists := func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
		rows, err := recipes.GetByIDs(ctx, tx, []uuid.UUID{id})
		if err != nil {
			return false, err
		}
		return len(rows) == 1, nil
	}
	userExists := func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
		rows, err := users.GetByIDs(ctx, tx, []uuid.UUID{id})
		if err != nil {
			return false, err
		}
		return len(rows) == 1, nil
	}
	return &RelationService{
		db:  db,
		log: baseLog.With("service", "RelationService"),
		favorite: relation{
			name:         "favorite",
			repo:         favorites,
			targetExists: recipeExists,
		},
		cart: relation{
			name:         "shopping_cart",
			repo:         cart,
			targetExists: recipeExists,
		},
		subscription: relation{
			name:         "subscription",
			repo:         subscriptions,
			targetExists: userExists,
			precheck: func(userID, targetID uuid.UUID) error {
				if userID == targetID {
					return apierr.Validation(errors.New("cannot subscribe to yourself"))
				}
				return nil
			},
		},
	}
}

// add is the shared half of the toggle: present -> Conflict, absent ->
// insert. A concurrent winner surfaces as gorm.ErrDuplicatedKey and is
// reported as Conflict too.
func (s *RelationService) add(ctx context.Context, rel relation, userID, targetID uuid.UUID) error {
	if rel.precheck != nil {
		if err := rel.precheck(userID, targetID); err != nil {
			return err
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := rel.targetExists(ctx, tx, targetID)
		if err != nil {
			return err
		}
		if !ok {
			return apierr.NotFound(rel.name+"_target_not_found", fmt.Errorf("%s target %s not found", rel.name, targetID))
		}
		present, err := rel.repo.Exists(ctx, tx, userID, targetID)
		if err != nil {
			return err
		}
		if present {
			return apierr.Conflict(rel.name+"_exists", fmt.Errorf("%s already present", rel.name))
		}
		if err := rel.repo.Create(ctx, tx, userID, targetID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict(rel.name+"_exists", err)
			}
			return err
		}
		s.log.Info("Relation added", "relation", rel.name, "user_id", userID, "target_id", targetID)
		return nil
	})
}

// remove deletes the link; zero affected rows means it was never there.
func (s *RelationService) remove(ctx context.Context, rel relation, userID, targetID uuid.UUID) error {
	if rel.precheck != nil {
		if err := rel.precheck(userID, targetID); err != nil {
			return err
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := rel.repo.Delete(ctx, tx, userID, targetID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apierr.NotFound(rel.name+"_not_found", fmt.Errorf("%s not present", rel.name))
		}
		s.log.Info("Relation removed", "relation", rel.name, "user_id", userID, "target_id", targetID)
		return nil
	})
}

func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.add(ctx, s.favorite, userID, recipeID)
}

func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, s.favorite, userID, recipeID)
}

func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.add(ctx, s.cart, userID, recipeID)
}

func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, s.cart, userID, recipeID)
}

func (s *RelationService) Subscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	return s.add(ctx, s.subscription, userID, authorID)
}

func (s *RelationService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	return s.remove(ctx, s.subscription, userID, authorID)
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/tastebook-backend/internal/data/repos/testutil"
)

func TestFavoriteToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")
	recipe := testutil.SeedRecipe(t, env.db, author.ID, "soup")

	if err := env.relation.AddFavorite(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	wantStatus(t, env.relation.AddFavorite(ctx, fan.ID, recipe.ID), 409)

	if err := env.relation.RemoveFavorite(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	wantStatus(t, env.relation.RemoveFavorite(ctx, fan.ID, recipe.ID), 404)

	// Remove then re-add round-trips.
	if err := env.relation.AddFavorite(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("re-add: %v", err)
	}
}

func TestCartToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")
	recipe := testutil.SeedRecipe(t, env.db, author.ID, "soup")

	if err := env.relation.AddToCart(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	wantStatus(t, env.relation.AddToCart(ctx, fan.ID, recipe.ID), 409)
	if err := env.relation.RemoveFromCart(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	wantStatus(t, env.relation.RemoveFromCart(ctx, fan.ID, recipe.ID), 404)
}

func TestToggleTargetMustExist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")

	wantStatus(t, env.relation.AddFavorite(ctx, fan.ID, uuid.New()), 404)
	wantStatus(t, env.relation.AddToCart(ctx, fan.ID, uuid.New()), 404)
	wantStatus(t, env.relation.Subscribe(ctx, fan.ID, uuid.New()), 404)
}

func TestSubscribeToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")

	if err := env.relation.Subscribe(ctx, fan.ID, author.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	wantStatus(t, env.relation.Subscribe(ctx, fan.ID, author.ID), 409)
	if err := env.relation.Unsubscribe(ctx, fan.ID, author.ID); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	wantStatus(t, env.relation.Unsubscribe(ctx, fan.ID, author.ID), 404)
}

func TestSelfSubscribeRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, env.db, "a@example.com", "loner")

	wantStatus(t, env.relation.Subscribe(ctx, user.ID, user.ID), 400)
	// The precheck fires before any row exists, so remove reports 400 too.
	wantStatus(t, env.relation.Unsubscribe(ctx, user.ID, user.ID), 400)
}

func TestRelationsAreIndependentPerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	first := testutil.SeedUser(t, env.db, "b@example.com", "first")
	second := testutil.SeedUser(t, env.db, "c@example.com", "second")
	recipe := testutil.SeedRecipe(t, env.db, author.ID, "soup")

	if err := env.relation.AddFavorite(ctx, first.ID, recipe.ID); err != nil {
		t.Fatalf("first user add: %v", err)
	}
	if err := env.relation.AddFavorite(ctx, second.ID, recipe.ID); err != nil {
		t.Fatalf("second user add should not conflict: %v", err)
	}
}

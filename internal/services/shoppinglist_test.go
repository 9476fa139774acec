package services

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/tastebook-backend/internal/data/repos/testutil"
)

func TestShoppingListSumsAcrossRecipes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")

	flour := testutil.SeedIngredient(t, env.db, "flour", "g")
	milk := testutil.SeedIngredient(t, env.db, "milk", "ml")

	pancakes := testutil.SeedRecipe(t, env.db, author.ID, "pancakes")
	testutil.SeedRecipeLine(t, env.db, pancakes.ID, flour.ID, 200)
	testutil.SeedRecipeLine(t, env.db, pancakes.ID, milk.ID, 300)

	bread := testutil.SeedRecipe(t, env.db, author.ID, "bread")
	testutil.SeedRecipeLine(t, env.db, bread.ID, flour.ID, 500)

	// Not in the cart; must not leak into the list.
	cake := testutil.SeedRecipe(t, env.db, author.ID, "cake")
	testutil.SeedRecipeLine(t, env.db, cake.ID, flour.ID, 9999)

	if err := env.relation.AddToCart(ctx, fan.ID, pancakes.ID); err != nil {
		t.Fatalf("cart pancakes: %v", err)
	}
	if err := env.relation.AddToCart(ctx, fan.ID, bread.ID); err != nil {
		t.Fatalf("cart bread: %v", err)
	}

	items, err := env.list.Build(ctx, fan.ID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 groups, got %d: %+v", len(items), items)
	}
	// Sorted by name then unit.
	if items[0].Name != "flour" || items[0].Total != 700 {
		t.Fatalf("flour group wrong: %+v", items[0])
	}
	if items[1].Name != "milk" || items[1].Total != 300 {
		t.Fatalf("milk group wrong: %+v", items[1])
	}
}

func TestShoppingListGroupsByNameAndUnit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")

	// Same name, different unit: two distinct groups.
	sugarG := testutil.SeedIngredient(t, env.db, "sugar", "g")
	sugarTbsp := testutil.SeedIngredient(t, env.db, "sugar", "tbsp")

	recipe := testutil.SeedRecipe(t, env.db, author.ID, "dessert")
	testutil.SeedRecipeLine(t, env.db, recipe.ID, sugarG.ID, 100)
	testutil.SeedRecipeLine(t, env.db, recipe.ID, sugarTbsp.ID, 2)

	if err := env.relation.AddToCart(ctx, fan.ID, recipe.ID); err != nil {
		t.Fatalf("cart: %v", err)
	}

	items, err := env.list.Build(ctx, fan.ID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("units must not merge: %+v", items)
	}
	if items[0].MeasurementUnit != "g" || items[1].MeasurementUnit != "tbsp" {
		t.Fatalf("unit order wrong: %+v", items)
	}
}

func TestShoppingListEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")

	items, err := env.list.Build(ctx, fan.ID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("want empty list, got %+v", items)
	}

	body := env.list.Render(items)
	if body != "Shopping list:\n" {
		t.Fatalf("empty render should be header only, got %q", body)
	}
}

func TestShoppingListRender(t *testing.T) {
	env := newTestEnv(t)
	items := []*ShoppingItem{
		{Name: "flour", MeasurementUnit: "g", Total: 700},
		{Name: "milk", MeasurementUnit: "ml", Total: 300},
	}
	body := env.list.Render(items)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != 3 || lines[0] != "Shopping list:" {
		t.Fatalf("unexpected render: %q", body)
	}
	if !strings.Contains(lines[1], "flour (g)") || !strings.Contains(lines[1], "700") {
		t.Fatalf("unexpected first item line: %q", lines[1])
	}
}

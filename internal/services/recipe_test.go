package services

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tastebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
)

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error with status %d, got nil", status)
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *apierr.Error, got %T: %v", err, err)
	}
	if apiErr.Status != status {
		t.Fatalf("want status %d, got %d (%v)", status, apiErr.Status, err)
	}
}

func countRows(t *testing.T, env *testEnv, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestCreateRecipeWritesWholeAggregate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")
	milk := testutil.SeedIngredient(t, env.db, "milk", "ml")

	view, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines: []IngredientLineInput{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: milk.ID, Amount: 300},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Name != "Pancakes" || view.CookingTime != 20 {
		t.Fatalf("unexpected header in view: %+v", view)
	}
	if len(view.Tags) != 1 || view.Tags[0].Slug != "breakfast" {
		t.Fatalf("unexpected tags: %+v", view.Tags)
	}
	if len(view.Ingredients) != 2 {
		t.Fatalf("want 2 ingredient lines, got %d", len(view.Ingredients))
	}
	if view.Author == nil || view.Author.ID != author.ID {
		t.Fatalf("unexpected author: %+v", view.Author)
	}
	if got := countRows(t, env, &types.RecipeIngredient{}); got != 2 {
		t.Fatalf("want 2 line rows, got %d", got)
	}
}

func TestCreateRecipeRollsBackOnUnknownIngredient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Lunch", "lunch")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	_, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Broken",
		Text:        "Never lands.",
		CookingTime: 5,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines: []IngredientLineInput{
			{IngredientID: flour.ID, Amount: 100},
			{IngredientID: uuid.New(), Amount: 100},
		},
	})
	wantStatus(t, err, 400)

	if got := countRows(t, env, &types.Recipe{}); got != 0 {
		t.Fatalf("header row leaked after failed create: %d", got)
	}
	if got := countRows(t, env, &types.RecipeIngredient{}); got != 0 {
		t.Fatalf("line rows leaked after failed create: %d", got)
	}
	if got := countRows(t, env, &types.RecipeTag{}); got != 0 {
		t.Fatalf("tag links leaked after failed create: %d", got)
	}
}

func TestFailedCreateStoresNoImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Lunch", "lunch")

	_, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Broken",
		Text:        "Never lands.",
		CookingTime: 5,
		Image:       "data:image/png;base64,aGVsbG8gd29ybGQ=",
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: uuid.New(), Amount: 100}},
	})
	wantStatus(t, err, 400)

	var files []string
	walkErr := filepath.WalkDir(env.mediaRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk media root: %v", walkErr)
	}
	if len(files) != 0 {
		t.Fatalf("rejected create left files on disk: %v", files)
	}
}

func TestCreateRecipeRejectsDuplicateIngredientLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Lunch", "lunch")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	_, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Doubled",
		Text:        "Twice the flour.",
		CookingTime: 5,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines: []IngredientLineInput{
			{IngredientID: flour.ID, Amount: 100},
			{IngredientID: flour.ID, Amount: 50},
		},
	})
	wantStatus(t, err, 400)
}

func TestCreateRecipeAmountBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Lunch", "lunch")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	for _, amount := range []int{0, -1, types.MaxAmount + 1} {
		_, err := env.recipe.Create(ctx, CreateRecipeInput{
			AuthorID:    author.ID,
			Name:        "Bounds",
			Text:        "Out of range.",
			CookingTime: 5,
			TagIDs:      []uuid.UUID{tag.ID},
			Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: amount}},
		})
		wantStatus(t, err, 400)
	}

	if _, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Edge",
		Text:        "Max amount is fine.",
		CookingTime: 5,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: types.MaxAmount}},
	}); err != nil {
		t.Fatalf("amount at upper bound should pass: %v", err)
	}
}

func TestCreateRecipeHeaderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Lunch", "lunch")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	base := CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Soup",
		Text:        "Boil.",
		CookingTime: 5,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: 10}},
	}

	in := base
	in.CookingTime = 0
	_, err := env.recipe.Create(ctx, in)
	wantStatus(t, err, 400)

	in = base
	in.TagIDs = nil
	_, err = env.recipe.Create(ctx, in)
	wantStatus(t, err, 400)

	in = base
	in.Lines = nil
	_, err = env.recipe.Create(ctx, in)
	wantStatus(t, err, 400)
}

func TestUpdateReplacesLineAndTagSets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	breakfast := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")
	dinner := testutil.SeedTag(t, env.db, "Dinner", "dinner")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")
	milk := testutil.SeedIngredient(t, env.db, "milk", "ml")
	salt := testutil.SeedIngredient(t, env.db, "salt", "g")

	created, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uuid.UUID{breakfast.ID},
		Lines: []IngredientLineInput{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: milk.ID, Amount: 300},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := env.recipe.Update(ctx, created.ID, UpdateRecipeInput{
		TagIDs: []uuid.UUID{dinner.ID},
		Lines:  []IngredientLineInput{{IngredientID: salt.ID, Amount: 5}},
	}, author.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Slug != "dinner" {
		t.Fatalf("tag set not replaced: %+v", updated.Tags)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Name != "salt" {
		t.Fatalf("line set not replaced: %+v", updated.Ingredients)
	}
	if got := countRows(t, env, &types.RecipeIngredient{}); got != 1 {
		t.Fatalf("old lines still stored: %d", got)
	}
}

func TestUpdateLeavesOmittedSetsUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	tag := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	created, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: 200}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Crepes"
	updated, err := env.recipe.Update(ctx, created.ID, UpdateRecipeInput{Name: &name}, author.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Crepes" {
		t.Fatalf("name not patched: %q", updated.Name)
	}
	if len(updated.Tags) != 1 || len(updated.Ingredients) != 1 {
		t.Fatalf("omitted sets were touched: tags=%d lines=%d", len(updated.Tags), len(updated.Ingredients))
	}
	if updated.Text != "Mix and fry." || updated.CookingTime != 20 {
		t.Fatalf("omitted header fields were touched: %+v", updated)
	}
}

func TestUpdateByNonAuthorForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	other := testutil.SeedUser(t, env.db, "b@example.com", "other")
	tag := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	created, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: 200}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Stolen"
	_, err = env.recipe.Update(ctx, created.ID, UpdateRecipeInput{Name: &name}, other.ID)
	wantStatus(t, err, 403)

	err = env.recipe.Delete(ctx, created.ID, other.ID)
	wantStatus(t, err, 403)

	view, err := env.recipe.Get(ctx, created.ID, nil)
	if err != nil {
		t.Fatalf("get after forbidden update: %v", err)
	}
	if view.Name != "Pancakes" {
		t.Fatalf("forbidden update mutated the recipe: %q", view.Name)
	}
}

func TestDeleteCascadesIntoSocialRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")
	tag := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	created, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: 200}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := env.relation.AddFavorite(ctx, fan.ID, created.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if err := env.relation.AddToCart(ctx, fan.ID, created.ID); err != nil {
		t.Fatalf("cart: %v", err)
	}

	if err := env.recipe.Delete(ctx, created.ID, author.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = env.recipe.Get(ctx, created.ID, nil)
	wantStatus(t, err, 404)
	if got := countRows(t, env, &types.Favorite{}); got != 0 {
		t.Fatalf("favorite rows survived delete: %d", got)
	}
	if got := countRows(t, env, &types.ShoppingCartEntry{}); got != 0 {
		t.Fatalf("cart rows survived delete: %d", got)
	}
	if got := countRows(t, env, &types.RecipeIngredient{}); got != 0 {
		t.Fatalf("line rows survived delete: %d", got)
	}
}

func TestGetViewerFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")
	tag := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")
	flour := testutil.SeedIngredient(t, env.db, "flour", "g")

	created, err := env.recipe.Create(ctx, CreateRecipeInput{
		AuthorID:    author.ID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		TagIDs:      []uuid.UUID{tag.ID},
		Lines:       []IngredientLineInput{{IngredientID: flour.ID, Amount: 200}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := env.relation.AddFavorite(ctx, fan.ID, created.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	anon, err := env.recipe.Get(ctx, created.ID, nil)
	if err != nil {
		t.Fatalf("get anonymous: %v", err)
	}
	if anon.IsFavorited || anon.IsInShoppingCart {
		t.Fatalf("anonymous viewer got social flags: %+v", anon)
	}

	asFan, err := env.recipe.Get(ctx, created.ID, &fan.ID)
	if err != nil {
		t.Fatalf("get as fan: %v", err)
	}
	if !asFan.IsFavorited {
		t.Fatal("favorited flag missing for the fan")
	}
	if asFan.IsInShoppingCart {
		t.Fatal("cart flag set without a cart entry")
	}
}

func TestListPaginationOrderAndFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	other := testutil.SeedUser(t, env.db, "b@example.com", "other")
	tag := testutil.SeedTag(t, env.db, "Breakfast", "breakfast")

	oldest := testutil.SeedRecipe(t, env.db, author.ID, "oldest")
	middle := testutil.SeedRecipe(t, env.db, author.ID, "middle")
	newest := testutil.SeedRecipe(t, env.db, other.ID, "newest")
	base := time.Now().Add(-time.Hour)
	for i, r := range []*types.Recipe{oldest, middle, newest} {
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := env.db.Model(&types.Recipe{}).Where("id = ?", r.ID).Update("created_at", ts).Error; err != nil {
			t.Fatalf("set created_at: %v", err)
		}
	}
	if err := env.db.Create(&types.RecipeTag{ID: uuid.New(), RecipeID: middle.ID, TagID: tag.ID}).Error; err != nil {
		t.Fatalf("link tag: %v", err)
	}

	page, total, err := env.recipe.List(ctx, RecipeListFilter{Limit: 2}, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("want total 3, got %d", total)
	}
	if len(page) != 2 || page[0].Name != "newest" || page[1].Name != "middle" {
		t.Fatalf("unexpected page order: %+v", pageNames(page))
	}

	rest, _, err := env.recipe.List(ctx, RecipeListFilter{Limit: 2, Offset: 2}, nil)
	if err != nil {
		t.Fatalf("list offset: %v", err)
	}
	if len(rest) != 1 || rest[0].Name != "oldest" {
		t.Fatalf("unexpected second page: %+v", pageNames(rest))
	}

	byAuthor, _, err := env.recipe.List(ctx, RecipeListFilter{AuthorID: &other.ID}, nil)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 1 || byAuthor[0].Name != "newest" {
		t.Fatalf("author filter broken: %+v", pageNames(byAuthor))
	}

	byTag, _, err := env.recipe.List(ctx, RecipeListFilter{TagSlugs: []string{"breakfast"}}, nil)
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Name != "middle" {
		t.Fatalf("tag filter broken: %+v", pageNames(byTag))
	}
}

func TestListViewerScopedFiltersIgnoredForAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.SeedUser(t, env.db, "a@example.com", "author")
	fan := testutil.SeedUser(t, env.db, "b@example.com", "fan")
	liked := testutil.SeedRecipe(t, env.db, author.ID, "liked")
	testutil.SeedRecipe(t, env.db, author.ID, "ignored")

	if err := env.relation.AddFavorite(ctx, fan.ID, liked.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	asFan, _, err := env.recipe.List(ctx, RecipeListFilter{Favorited: true}, &fan.ID)
	if err != nil {
		t.Fatalf("list favorited: %v", err)
	}
	if len(asFan) != 1 || asFan[0].Name != "liked" {
		t.Fatalf("favorited filter broken: %+v", pageNames(asFan))
	}

	anon, _, err := env.recipe.List(ctx, RecipeListFilter{Favorited: true}, nil)
	if err != nil {
		t.Fatalf("list anonymous: %v", err)
	}
	if len(anon) != 2 {
		t.Fatalf("anonymous viewer should see the filter ignored, got %d rows", len(anon))
	}
}

func pageNames(views []*RecipeView) []string {
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	return names
}

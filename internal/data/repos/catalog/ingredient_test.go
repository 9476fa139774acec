package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/tastebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tastebook-backend/internal/domain"
)

func TestCreateIgnoreExistingSkipsDuplicates(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewIngredientRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedIngredient(t, tx, "flour", "g")

	inserted, err := repo.CreateIgnoreExisting(ctx, tx, []*types.Ingredient{
		{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"},
		{ID: uuid.New(), Name: "flour", MeasurementUnit: "kg"},
		{ID: uuid.New(), Name: "milk", MeasurementUnit: "ml"},
	})
	if err != nil {
		t.Fatalf("create ignore existing: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("want 2 inserted, got %d", inserted)
	}

	all, err := repo.List(ctx, tx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 rows total, got %d", len(all))
	}
}

func TestListNamePrefixIsCaseInsensitive(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewIngredientRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedIngredient(t, tx, "Milk", "ml")
	testutil.SeedIngredient(t, tx, "milk powder", "g")
	testutil.SeedIngredient(t, tx, "flour", "g")

	got, err := repo.List(ctx, tx, "mIl")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 prefix matches, got %d", len(got))
	}
	for _, i := range got {
		if i.Name == "flour" {
			t.Fatal("prefix filter matched a non-prefixed name")
		}
	}
}

package catalog

import (
	"context"
	"testing"

	"github.com/yungbote/tastebook-backend/internal/data/repos/testutil"
)

func TestSeededTagsGetDistinctColors(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewTagRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	// Name, color and slug are each unique on their own; seeding several
	// tags in one database must not collide on any of them.
	breakfast := testutil.SeedTag(t, tx, "Breakfast", "breakfast")
	dinner := testutil.SeedTag(t, tx, "Dinner", "dinner")
	testutil.SeedTag(t, tx, "Lunch", "lunch")

	if breakfast.Color == dinner.Color {
		t.Fatalf("seeded tags share a color: %s", breakfast.Color)
	}

	all, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 tags, got %d", len(all))
	}

	bySlug, err := repo.GetBySlugs(ctx, tx, []string{"dinner"})
	if err != nil {
		t.Fatalf("get by slugs: %v", err)
	}
	if len(bySlug) != 1 || bySlug[0].ID != dinner.ID {
		t.Fatalf("unexpected slug lookup result: %+v", bySlug)
	}
}

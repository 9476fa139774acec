package testutil

import (
	"crypto/sha256"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/tastebook-backend/internal/data/db"
	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// DB opens a migrated database for the test. TEST_POSTGRES_DSN selects a real
// Postgres; otherwise an in-memory sqlite keeps the suite self-contained.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	}

	var (
		conn *gorm.DB
		err  error
	)
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		// A named shared-cache memory database stays isolated per test but
		// survives gorm's connection pooling.
		dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrateAll(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return conn
}

// Tx begins a transaction rolled back when the test finishes, so tests never
// leak rows into each other.
func Tx(t *testing.T, conn *gorm.DB) *gorm.DB {
	t.Helper()
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin test transaction: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

func Logger(t *testing.T) *logger.Logger {
	t.Helper()
	logg, err := logger.New("dev")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	t.Cleanup(logg.Sync)
	return logg
}

func SeedUser(t *testing.T, tx *gorm.DB, email, username string) *types.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  "User",
	}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func SeedTag(t *testing.T, tx *gorm.DB, name, slug string) *types.Tag {
	t.Helper()
	// Color carries its own unique index, so derive it from the slug to keep
	// multi-tag seeds from colliding.
	sum := sha256.Sum256([]byte(slug))
	color := fmt.Sprintf("#%02X%02X%02X", sum[0], sum[1], sum[2])
	tag := &types.Tag{ID: uuid.New(), Name: name, Color: color, Slug: slug}
	if err := tx.Create(tag).Error; err != nil {
		t.Fatalf("seed tag %s: %v", slug, err)
	}
	return tag
}

func SeedIngredient(t *testing.T, tx *gorm.DB, name, unit string) *types.Ingredient {
	t.Helper()
	ing := &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := tx.Create(ing).Error; err != nil {
		t.Fatalf("seed ingredient %s: %v", name, err)
	}
	return ing
}

func SeedRecipe(t *testing.T, tx *gorm.DB, authorID uuid.UUID, name string) *types.Recipe {
	t.Helper()
	r := &types.Recipe{
		ID:             uuid.New(),
		AuthorID:       authorID,
		Name:           name,
		Text:           "Mix and serve.",
		CookingMinutes: 10,
	}
	if err := tx.Create(r).Error; err != nil {
		t.Fatalf("seed recipe %s: %v", name, err)
	}
	return r
}

// SeedRecipeLine attaches an ingredient line directly, bypassing the write
// path, for read-side tests.
func SeedRecipeLine(t *testing.T, tx *gorm.DB, recipeID, ingredientID uuid.UUID, amount int) *types.RecipeIngredient {
	t.Helper()
	line := &types.RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Amount:       amount,
	}
	if err := tx.Create(line).Error; err != nil {
		t.Fatalf("seed recipe ingredient line: %v", err)
	}
	return line
}

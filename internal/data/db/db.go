package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/envutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the configured database. DB_DRIVER=sqlite uses a local file
// (DB_PATH, default tastebook.db) for development; anything else is Postgres
// from the POSTGRES_* variables.
func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		// Concurrent relation adds race on unique indexes; the translated
		// gorm.ErrDuplicatedKey is what the toggle layer turns into Conflict.
		TranslateError: true,
		Logger:         gormLog,
	}

	var (
		db  *gorm.DB
		err error
	)
	if envutil.Str("DB_DRIVER", "postgres") == "sqlite" {
		path := envutil.Str("DB_PATH", "tastebook.db")
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
		}
		serviceLog.Info("Using sqlite database", "path", path)
		return &Service{db: db, log: serviceLog}, nil
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envutil.Str("POSTGRES_USER", "postgres"),
		envutil.Str("POSTGRES_PASSWORD", ""),
		envutil.Str("POSTGRES_HOST", "localhost"),
		envutil.Str("POSTGRES_PORT", "5432"),
		envutil.Str("POSTGRES_NAME", "tastebook"),
	)
	db, err = gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserToken{},

		&types.Tag{},
		&types.Ingredient{},

		&types.Recipe{},
		&types.RecipeTag{},
		&types.RecipeIngredient{},

		&types.Favorite{},
		&types.ShoppingCartEntry{},
		&types.Subscription{},
	)
}

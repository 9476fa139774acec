package main

import (
	"context"
	"flag"
	"os"

	"github.com/yungbote/tastebook-backend/internal/catalogload"
	"github.com/yungbote/tastebook-backend/internal/data/db"
	catalogrepo "github.com/yungbote/tastebook-backend/internal/data/repos/catalog"
	"github.com/yungbote/tastebook-backend/internal/platform/envutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

func main() {
	path := flag.String("file", "ingredients.csv", "path to the ingredients csv")
	flag.Parse()

	log, err := logger.New(envutil.Str("APP_MODE", "dev"))
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	dbService, err := db.New(log)
	if err != nil {
		log.Fatal("Failed to open database", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Failed to migrate", "error", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal("Failed to open csv", "path", *path, "error", err)
	}
	defer f.Close()

	loader := catalogload.NewLoader(log, catalogrepo.NewIngredientRepo(dbService.DB(), log))
	res, err := loader.Run(context.Background(), f)
	if err != nil {
		log.Fatal("Import failed", "error", err)
	}
	log.Info("Import complete", "parsed", res.Parsed, "inserted", res.Inserted, "skipped", res.Skipped)
}

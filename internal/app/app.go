package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/tastebook-backend/internal/data/db"
	apphttp "github.com/yungbote/tastebook-backend/internal/http"
	"github.com/yungbote/tastebook-backend/internal/http/handlers"
	"github.com/yungbote/tastebook-backend/internal/http/middleware"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

// App owns the wired object graph and the HTTP server lifecycle.
type App struct {
	log    *logger.Logger
	cfg    *Config
	db     *gorm.DB
	server *http.Server
}

func New(log *logger.Logger) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	dbService, err := db.New(log)
	if err != nil {
		return nil, err
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	conn := dbService.DB()

	repos := NewRepos(conn, log)
	svcs := NewServices(conn, log, cfg, repos)

	authMW := middleware.NewAuthMiddleware(log, svcs.Auth)
	router := apphttp.NewRouter(apphttp.RouterDeps{
		Log:     log,
		Auth:    authMW,
		Health:  handlers.NewHealthHandler(log, conn),
		Authn:   handlers.NewAuthHandler(log, svcs.Auth),
		Users:   handlers.NewUserHandler(log, svcs.User, svcs.Relation),
		Catalog: handlers.NewCatalogHandler(log, svcs.Catalog),
		Recipes: handlers.NewRecipeHandler(log, svcs.Recipe, svcs.Relation, svcs.ShoppingList),

		MediaRoot:    cfg.MediaRoot,
		MediaBaseURL: cfg.MediaBaseURL,
	})

	return &App{
		log: log,
		cfg: cfg,
		db:  conn,
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (a *App) Run() error {
	a.log.Info("Server starting", "port", a.cfg.Port, "mode", a.cfg.Mode)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("Server shutting down")
	return a.server.Shutdown(ctx)
}

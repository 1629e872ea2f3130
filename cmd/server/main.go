package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"nutriplan/internal/ai"
	"nutriplan/internal/catalog"
	"nutriplan/internal/config"
	appdb "nutriplan/internal/db"
	"nutriplan/internal/db/mock"
	"nutriplan/internal/handlers"
	"nutriplan/internal/jobs"
	applog "nutriplan/internal/log"
	"nutriplan/internal/plan"
	"nutriplan/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = appdb.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	newDrafterFunc = func(cfg config.AIConfig) (handlers.MenuDrafter, error) {
		return ai.NewClient(ai.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock || cfg.Database.URL == "" {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	planning, err := newPlanning(ctx, cfg, database)
	if err != nil {
		applog.Error(ctx, "failed to configure planning", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Database: database,
		Planning: planning,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	cancel()
	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	return 0
}

// newPlanning wires the catalog, plan services, optional AI drafter and the
// retention sweep. Background work stops when ctx is cancelled.
func newPlanning(ctx context.Context, cfg config.Config, database *gorm.DB) (handlers.Planning, error) {
	source := catalog.NewSource(catalog.Default())
	if dir := cfg.Plan.CatalogDir; dir != "" {
		loaded, err := catalog.LoadDir(dir)
		if err != nil {
			return handlers.Planning{}, err
		}
		source.Set(loaded)

		watcher, err := catalog.NewWatcher(dir, source)
		if err != nil {
			return handlers.Planning{}, err
		}
		go func() {
			watcher.Run(ctx)
			watcher.Close()
		}()
		applog.Info(ctx, "watching dish catalog", "dir", dir)
	}

	store := appdb.NewMenuStore(database)
	planning := handlers.Planning{
		Service: plan.NewService(plan.NewGenerator(source), store),
		Reader:  plan.NewReader(store, plan.WithLocation(cfg.Plan.TimeZone)),
		Store:   store,
	}

	if cfg.AI.APIKey != "" {
		drafter, err := newDrafterFunc(cfg.AI)
		if err != nil {
			return handlers.Planning{}, err
		}
		planning.Drafter = drafter
		applog.Info(ctx, "ai menu generation enabled", "model", cfg.AI.Model)
	} else {
		applog.Info(ctx, "ai menu generation disabled")
	}

	if sweeper := jobs.NewSweeper(store, cfg.Plan); sweeper != nil {
		if err := sweeper.Start(ctx); err != nil {
			return handlers.Planning{}, err
		}
	}

	return planning, nil
}

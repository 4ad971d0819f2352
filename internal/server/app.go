// Package server initializes and runs the tasklist application server.
// It loads configuration, opens the database, applies migrations, wires the
// services into the HTTP transport, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jtech/tasklist/internal/logging"
	"github.com/jtech/tasklist/internal/server/auth"
	"github.com/jtech/tasklist/internal/server/config"
	"github.com/jtech/tasklist/internal/server/repositories/repomanager"
	"github.com/jtech/tasklist/internal/server/rest"
	"github.com/jtech/tasklist/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	manager    repomanager.RepositoryManager
	httpServer *rest.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()
	hasher := auth.NewBcryptHasher()

	authService := services.NewAuthService(db, manager, hasher, c)
	taskListService := services.NewTaskListService(db, manager, c.TaskListDeletePolicy)
	taskService := services.NewTaskService(db, manager, c.TaskDeletePolicy)

	httpServer := rest.NewServer(c.EndpointAddrHTTP, logger, authService, taskListService, taskService)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		manager:    manager,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err.Error())
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}

// Package server initializes and runs the hwidgate auth server: it wires
// configuration, the account store (PostgreSQL or in-memory), the users
// service and the HTTP API, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/hwidgate/internal/logging"
	"github.com/dmitrijs2005/hwidgate/internal/server/config"
	"github.com/dmitrijs2005/hwidgate/internal/server/httpapi"
	"github.com/dmitrijs2005/hwidgate/internal/server/shared/db"
	"github.com/dmitrijs2005/hwidgate/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       db.RepositoryManager
	userService *users.Service
}

// newRepositoryManager picks PostgreSQL when a DSN is configured and the
// in-memory store otherwise.
func newRepositoryManager(ctx context.Context, c *config.Config) (db.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		return db.NewInMemoryRepositoryManager(), nil
	}
	rm, err := db.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return rm, nil
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)

	rm, err := newRepositoryManager(context.Background(), c)
	if err != nil {
		return nil, err
	}
	us := users.NewService(rm.Users(), rm.Checkouts(), c)

	return &App{config: c, logger: logger, repos: rm, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "closing store failed", "error", err)
	}
}

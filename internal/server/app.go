// Package server initializes and runs the auth server. It opens storage,
// bootstraps the schema, wires the services to the HTTP API and handles
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/httpapi"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userauth/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	metrics     *httpapi.Metrics
}

// NewApp opens the database named by c.DatabaseDSN, runs migrations and
// builds the services. Logs go to out as JSON.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.NewJSONLogger(out, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	repos, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(
		repos.Users(),
		auth.NewPasswordHasher(c.BcryptCost),
		auth.NewTokenManager([]byte(c.SecretKey), c.AccessTokenValidityDuration, nil),
		logger,
	)

	logger.Info(ctx, "storage ready", "driver", string(repos.Driver()))

	return &App{
		config:      c,
		logger:      logger,
		repos:       repos,
		userService: us,
		metrics:     httpapi.NewMetrics(),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	h := httpapi.NewHandler(app.userService, app.repos, app.metrics, app.logger, app.config.MaxRequestBodyBytes)
	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, h, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes storage.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup
	var serveErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		serveErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return serveErr
}

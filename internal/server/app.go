// Package server wires the auth server together: it opens the credential
// store, builds the auth pipeline and serves it over HTTP, with an optional
// gRPC health probe, until the process is signalled to stop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/httpserver"
	"github.com/dmitrijs2005/gatekeeper/internal/server/probe"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"
	"github.com/dmitrijs2005/gatekeeper/internal/server/store"
	"github.com/dmitrijs2005/gatekeeper/internal/server/verifier"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  store.Backend
	auth   *services.AuthService
}

// NewApp opens the store, applies the optional seed file and builds the auth
// service. The caller owns the App and must Run it to release the store.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewJSON(os.Stdout, slog.LevelInfo)
	}

	v, err := verifier.New(c.PasswordScheme)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, c.StoreDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	if c.SeedUsersPath != "" {
		seeder := services.NewSeeder(st, v, logger)
		if _, err := seeder.SeedFromFile(ctx, c.SeedUsersPath); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	return &App{
		config: c,
		logger: logger,
		store:  st,
		auth:   services.NewAuthService(st, v, logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) httpServer() *httpserver.Server {
	router := httpserver.NewRouter(&httpserver.Handlers{
		Auth:    app.auth,
		Logger:  app.logger.With("module", "http"),
		Timeout: app.config.RequestTimeout,
	})
	return httpserver.NewServer(app.config.HTTPAddr, router, app.logger)
}

// Run serves until ctx is cancelled or a signal arrives. A failing listener
// stops the whole app. The store is closed before Run returns.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreDriver, "scheme", app.config.PasswordScheme)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		app.logger.Error(ctx, err.Error())
		errOnce.Do(func() { firstErr = err })
		cancelFunc()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer().Run(ctx); err != nil {
			fail(fmt.Errorf("http server: %w", err))
		}
	}()

	if app.config.GRPCHealthAddr != "" {
		p := probe.New(app.config.GRPCHealthAddr, app.store, app.config.StoreProbeInterval, app.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Run(ctx); err != nil {
				fail(fmt.Errorf("health probe: %w", err))
			}
		}()
	}

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")

	return firstErr
}

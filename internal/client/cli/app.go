package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/config"
	"github.com/dmitrijs2005/gatekeeper/internal/client/dispatch"
	"github.com/dmitrijs2005/gatekeeper/internal/client/poller"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

// transport is the part of *client.HTTPClient the App drives.
type transport interface {
	client.Issuer
	Replies() <-chan client.Reply
	Close() error
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	issuer     transport
	registry   *dispatch.Registry
	health     *dispatch.HealthState
	dispatcher *dispatch.Dispatcher
	poller     *poller.Poller
	reader     *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	tr := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	return newApp(c, logger, tr, os.Stdin)
}

func newApp(c *config.Config, logger logging.Logger, tr transport, in io.Reader) *App {
	reg := dispatch.NewRegistry()
	hs := dispatch.NewHealthState(c.DiscardStaleHealth)

	return &App{
		config:     c,
		logger:     logger,
		issuer:     tr,
		registry:   reg,
		health:     hs,
		dispatcher: dispatch.NewDispatcher(reg, hs, printNotifier{}, logger),
		poller:     poller.New(tr, reg, c.HealthCheckInterval, c.PendingTTL(), logger),
		reader:     bufio.NewReader(in),
	}
}

// Run starts the dispatcher and the poller, then serves the REPL until the
// user exits or input ends. Background work is stopped before Run returns.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.dispatcher.Run(ctx, a.issuer.Replies())
	}()
	go func() {
		defer wg.Done()
		a.poller.Run(ctx)
	}()

	printlnFn("Welcome to gatekeeper (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.health.Status().String() }, a.reader)

	cancel()
	wg.Wait()
	if err := a.issuer.Close(); err != nil {
		a.logger.Error(context.Background(), "closing transport", "error", err)
	}
}

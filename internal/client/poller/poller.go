// Package poller drives the periodic liveness check of the client.
package poller

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/dispatch"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

// HealthIssuer is the part of client.Issuer the poller uses.
type HealthIssuer interface {
	CheckHealth(ctx context.Context) (client.Descriptor, error)
}

type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

// newTicker is a seam for tests.
var newTicker = func(d time.Duration) ticker { return timeTicker{time.NewTicker(d)} }

// Poller issues a health check immediately and then every interval. It never
// waits for replies: a slow check does not delay the next one.
type Poller struct {
	issuer     HealthIssuer
	registry   *dispatch.Registry
	interval   time.Duration
	pendingTTL time.Duration
	logger     logging.Logger
	now        func() time.Time
}

func New(issuer HealthIssuer, reg *dispatch.Registry, interval, pendingTTL time.Duration, l logging.Logger) *Poller {
	return &Poller{
		issuer:     issuer,
		registry:   reg,
		interval:   interval,
		pendingTTL: pendingTTL,
		logger:     l.With("module", "poller"),
		now:        time.Now,
	}
}

// Run polls until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	p.fire(ctx)

	t := newTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			p.fire(ctx)
		}
	}
}

func (p *Poller) fire(ctx context.Context) {
	for _, d := range p.registry.Expire(p.now(), p.pendingTTL) {
		p.logger.Warn(ctx, "request expired without reply",
			"kind", d.Kind.String(), "correlation_id", d.CorrelationID.String())
	}

	d, err := p.issuer.CheckHealth(ctx)
	if err != nil {
		p.logger.Debug(ctx, "health check not issued", "error", err)
		return
	}
	p.registry.Track(d)
}

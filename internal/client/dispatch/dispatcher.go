// Package dispatch turns transport replies into user-visible outcomes: it
// classifies each reply, keeps the health status and notifies the UI.
package dispatch

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

// Notifier shows outcomes to the user.
type Notifier interface {
	Notify(ctx context.Context, o Outcome)
}

// Dispatcher is the single consumer of the transport's replies.
type Dispatcher struct {
	registry *Registry
	health   *HealthState
	notifier Notifier
	logger   logging.Logger
}

func NewDispatcher(reg *Registry, hs *HealthState, n Notifier, l logging.Logger) *Dispatcher {
	return &Dispatcher{registry: reg, health: hs, notifier: n, logger: l.With("module", "dispatch")}
}

// Run handles replies until the channel is closed or ctx is done.
func (d *Dispatcher) Run(ctx context.Context, replies <-chan client.Reply) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-replies:
			if !ok {
				return
			}
			d.Handle(ctx, r)
		}
	}
}

// Handle classifies one reply and applies it. Login outcomes are always
// notified; health outcomes only when they change the status, except the
// first successful poll.
func (d *Dispatcher) Handle(ctx context.Context, r client.Reply) Outcome {
	if _, ok := d.registry.Resolve(r.Descriptor.CorrelationID); !ok {
		d.logger.Debug(ctx, "reply for untracked request",
			"kind", r.Descriptor.Kind.String(),
			"correlation_id", r.Descriptor.CorrelationID.String())
	}

	o := Classify(r)

	if r.Descriptor.Kind == client.KindLogin {
		d.logger.Debug(ctx, "login reply", "class", o.Class.String(), "status", r.StatusCode)
		d.notifier.Notify(ctx, o)
		return o
	}

	prev, applied := d.health.Apply(r.Descriptor.Seq, o.Health)
	if !applied {
		d.logger.Debug(ctx, "stale health reply discarded", "seq", r.Descriptor.Seq)
		return o
	}

	if prev != o.Health {
		d.logger.Info(ctx, "health status changed", "from", prev.String(), "to", o.Health.String())
		if !(prev == HealthUnknown && o.Health == HealthOnline) {
			d.notifier.Notify(ctx, o)
		}
	}
	return o
}

// Package probe serves the standard gRPC health service for operators and
// orchestrators. The overall service ("") reports process liveness; the
// AuthService name tracks credential store reachability.
package probe

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AuthService is the health service name tracking the credential store.
const AuthService = "gatekeeper.auth"

// Pinger is satisfied by store.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Probe struct {
	address  string
	store    Pinger
	interval time.Duration
	health   *health.Server
	logger   logging.Logger
}

func New(address string, store Pinger, interval time.Duration, l logging.Logger) *Probe {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(AuthService, healthpb.HealthCheckResponse_UNKNOWN)

	return &Probe{
		address:  address,
		store:    store,
		interval: interval,
		health:   h,
		logger:   l.With("module", "probe"),
	}
}

// Check pings the store once and publishes the result. Transitions to
// NOT_SERVING are logged at Error level.
func (p *Probe) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	cctx, cancel := context.WithTimeout(ctx, p.pingTimeout())
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	err := p.store.Ping(cctx)
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	prev := p.current(ctx)
	p.health.SetServingStatus(AuthService, status)

	if status != prev {
		if err != nil {
			p.logger.Error(ctx, "credential store unreachable", "error", err)
		} else {
			p.logger.Info(ctx, "credential store reachable")
		}
	}
	return status
}

func (p *Probe) current(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	resp, err := p.health.Check(ctx, &healthpb.HealthCheckRequest{Service: AuthService})
	if err != nil {
		return healthpb.HealthCheckResponse_SERVICE_UNKNOWN
	}
	return resp.GetStatus()
}

func (p *Probe) pingTimeout() time.Duration {
	if p.interval > 0 && p.interval < 5*time.Second {
		return p.interval
	}
	return 5 * time.Second
}

// Watch checks the store immediately and then every interval until ctx is
// done.
func (p *Probe) Watch(ctx context.Context) {
	p.Check(ctx)

	if p.interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Run serves the health service and keeps it fed until ctx is cancelled.
func (p *Probe) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", p.address)
	if err != nil {
		return err
	}
	return p.Serve(ctx, listen)
}

func (p *Probe) Serve(ctx context.Context, ln net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, p.health)

	go p.Watch(ctx)

	go func() {
		<-ctx.Done()
		p.logger.Info(ctx, "Stopping gRPC health probe...")
		p.health.Shutdown()
		srv.GracefulStop()
	}()

	p.logger.Info(ctx, "Starting gRPC health probe", "address", ln.Addr().String())

	return srv.Serve(ln)
}

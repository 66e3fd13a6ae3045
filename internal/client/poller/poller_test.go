package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/dispatch"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIssuer struct {
	mu    sync.Mutex
	calls int
	err   error
	fired chan struct{}
}

func (f *fakeIssuer) CheckHealth(context.Context) (client.Descriptor, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.fired <- struct{}{}
	if f.err != nil {
		return client.Descriptor{}, f.err
	}
	return client.Descriptor{Kind: client.KindHealth, CorrelationID: uuid.New(), IssuedAt: time.Now()}, nil
}

type manualTicker struct {
	ch      chan time.Time
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { m.stopped = true }

func withManualTicker(t *testing.T) *manualTicker {
	t.Helper()
	mt := &manualTicker{ch: make(chan time.Time)}
	orig := newTicker
	newTicker = func(time.Duration) ticker { return mt }
	t.Cleanup(func() { newTicker = orig })
	return mt
}

func waitFired(t *testing.T, f *fakeIssuer) {
	t.Helper()
	select {
	case <-f.fired:
	case <-time.After(time.Second):
		t.Fatal("health check not issued")
	}
}

func TestRun_FiresImmediatelyThenOnEveryTick(t *testing.T) {
	mt := withManualTicker(t)
	f := &fakeIssuer{fired: make(chan struct{})}
	reg := dispatch.NewRegistry()
	p := New(f, reg, 5*time.Second, time.Minute, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { p.Run(ctx); close(done) }()

	waitFired(t, f)

	// No replies ever arrive; the poller still fires on every tick.
	mt.ch <- time.Now()
	waitFired(t, f)
	mt.ch <- time.Now()
	waitFired(t, f)

	cancel()
	<-done

	assert.True(t, mt.stopped)
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, 3, reg.Pending(client.KindHealth))
}

func TestFire_ExpiresOldDescriptors(t *testing.T) {
	f := &fakeIssuer{fired: make(chan struct{}, 1)}
	reg := dispatch.NewRegistry()
	p := New(f, reg, time.Second, 10*time.Second, logging.Nop{})

	reg.Track(client.Descriptor{Kind: client.KindLogin, CorrelationID: uuid.New(), IssuedAt: time.Now().Add(-time.Hour)})

	p.fire(context.Background())

	assert.Equal(t, 0, reg.Pending(client.KindLogin))
	assert.Equal(t, 1, reg.Pending(client.KindHealth))
}

func TestFire_IssueErrorIsNotTracked(t *testing.T) {
	f := &fakeIssuer{fired: make(chan struct{}, 1), err: client.ErrClosed}
	reg := dispatch.NewRegistry()
	p := New(f, reg, time.Second, time.Second, logging.Nop{})

	p.fire(context.Background())
	require.Equal(t, 1, f.calls)
	assert.Equal(t, 0, reg.Pending(client.KindHealth))
}

// dispatchingIssuer delivers the reply to the dispatcher before CheckHealth
// returns, the way a fast server can beat the issuing goroutine.
type dispatchingIssuer struct {
	dispatcher *dispatch.Dispatcher
}

func (i *dispatchingIssuer) CheckHealth(ctx context.Context) (client.Descriptor, error) {
	d := client.Descriptor{Kind: client.KindHealth, CorrelationID: uuid.New(), Seq: 1, IssuedAt: time.Now()}
	i.dispatcher.Handle(ctx, client.Reply{Descriptor: d, StatusCode: 200, Body: []byte(`{"ok":true}`)})
	return d, nil
}

func TestFire_ReplyDispatchedBeforeIssuerReturns(t *testing.T) {
	reg := dispatch.NewRegistry()
	hs := dispatch.NewHealthState(false)
	disp := dispatch.NewDispatcher(reg, hs, nopNotifier{}, logging.Nop{})
	p := New(&dispatchingIssuer{dispatcher: disp}, reg, time.Second, 10*time.Second, logging.Nop{})

	p.fire(context.Background())

	assert.Equal(t, dispatch.HealthOnline, hs.Status())
	assert.Equal(t, 0, reg.Pending(client.KindHealth))
	assert.Empty(t, reg.Expire(time.Now().Add(time.Minute), 10*time.Second))
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, dispatch.Outcome) {}

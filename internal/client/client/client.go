package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/wire"
	"github.com/google/uuid"
)

// maxReplyBody caps how much of a response body is kept.
const maxReplyBody = 1 << 20

// Issuer starts requests without waiting for them.
type Issuer interface {
	CheckHealth(ctx context.Context) (Descriptor, error)
	SubmitLogin(ctx context.Context, identifier string, secret []byte) (Descriptor, error)
}

// HTTPClient issues requests against the auth server over one shared
// *http.Client.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  logging.Logger

	replies chan Reply
	seq     atomic.Uint64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	base   context.Context
	cancel context.CancelFunc

	now func() time.Time
}

// NewHTTPClient returns a client for baseURL (e.g. "http://127.0.0.1:8080").
// timeout bounds every request; zero means no bound beyond the caller's ctx.
func NewHTTPClient(baseURL string, timeout time.Duration, l logging.Logger) *HTTPClient {
	base, cancel := context.WithCancel(context.Background())
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		timeout: timeout,
		logger:  l.With("module", "transport"),
		replies: make(chan Reply, 64),
		base:    base,
		cancel:  cancel,
		now:     time.Now,
	}
}

// Replies delivers one Reply per issued request, in completion order. The
// channel is closed by Close.
func (c *HTTPClient) Replies() <-chan Reply {
	return c.replies
}

// CheckHealth issues GET /health.
func (c *HTTPClient) CheckHealth(ctx context.Context) (Descriptor, error) {
	return c.issue(ctx, KindHealth, http.MethodGet, common.HealthPath, nil)
}

// SubmitLogin issues POST /login. The body is encoded from secret without a
// string copy and wiped once the request is done; secret itself stays owned
// by the caller.
func (c *HTTPClient) SubmitLogin(ctx context.Context, identifier string, secret []byte) (Descriptor, error) {
	body, err := wire.EncodeLoginRequest(identifier, secret)
	if err != nil {
		return Descriptor{}, fmt.Errorf("encode login request: %w", err)
	}
	return c.issue(ctx, KindLogin, http.MethodPost, common.LoginPath, body)
}

func (c *HTTPClient) issue(ctx context.Context, kind Kind, method, path string, body []byte) (Descriptor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		common.WipeByteArray(body)
		return Descriptor{}, ErrClosed
	}

	d := Descriptor{
		Kind:          kind,
		CorrelationID: uuid.New(),
		Seq:           c.seq.Add(1),
		IssuedAt:      c.now(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer common.WipeByteArray(body)

		r := c.do(ctx, d, method, path, body)

		select {
		case c.replies <- r:
		case <-c.base.Done():
			c.logger.Debug(ctx, "reply dropped on close", "kind", d.Kind.String(), "correlation_id", d.CorrelationID.String())
		}
	}()

	return d, nil
}

func (c *HTTPClient) do(ctx context.Context, d Descriptor, method, path string, body []byte) Reply {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unlink := context.AfterFunc(c.base, cancel)
	defer unlink()

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return Reply{Descriptor: d, Err: err}
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, d.CorrelationID.String())
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{Descriptor: d, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBody))
	if err != nil {
		// A status line was received; the truncated body will fail parsing.
		c.logger.Debug(ctx, "reading reply body", "kind", d.Kind.String(), "error", err)
	}

	return Reply{Descriptor: d, StatusCode: resp.StatusCode, Body: data}
}

// Close rejects new requests, aborts in-flight ones, waits for their
// goroutines and closes the replies channel. It is safe to call twice.
func (c *HTTPClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	close(c.replies)
	c.http.CloseIdleConnections()
	return nil
}

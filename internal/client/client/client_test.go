package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func recv(t *testing.T, c *HTTPClient) Reply {
	t.Helper()
	select {
	case r, ok := <-c.Replies():
		require.True(t, ok, "replies channel closed")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reply")
		return Reply{}
	}
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// --- tests ---

func TestCheckHealth(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	c := NewHTTPClient(srv.URL+"/", time.Second, logging.Nop{})
	defer c.Close()

	d, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KindHealth, d.Kind)
	assert.Equal(t, uint64(1), d.Seq)

	r := recv(t, c)
	assert.Equal(t, d, r.Descriptor)
	assert.NoError(t, r.Err)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(r.Body))

	d2, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	assert.Greater(t, d2.Seq, d.Seq)
	assert.NotEqual(t, d.CorrelationID, d2.CorrelationID)
	recv(t, c)
}

func TestSubmitLogin_SendsTaggedJSON(t *testing.T) {
	var (
		gotBody wire.LoginRequest
		gotID   string
		gotCT   string
	)
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(common.RequestIDHeaderName)
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"msg":"invalid credentials"}`))
	})

	c := NewHTTPClient(srv.URL, time.Second, logging.Nop{})
	defer c.Close()

	d, err := c.SubmitLogin(context.Background(), "a@b.com", []byte("wrong"))
	require.NoError(t, err)

	r := recv(t, c)
	assert.Equal(t, KindLogin, r.Descriptor.Kind)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	assert.Equal(t, d.CorrelationID.String(), gotID)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, wire.LoginRequest{ID: "a@b.com", PW: "wrong"}, gotBody)
}

func TestSubmitLogin_SecretStaysWithCaller(t *testing.T) {
	var gotBody wire.LoginRequest
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"ok":true,"uid":1,"name":"Alice"}`))
	})

	c := NewHTTPClient(srv.URL, time.Second, logging.Nop{})
	defer c.Close()

	secret := []byte(`p"a\ss\n`)
	_, err := c.SubmitLogin(context.Background(), "a@b.com", secret)
	require.NoError(t, err)

	// The request owns its own encoded copy; wiping the caller's slice
	// right away must not change what is sent.
	common.WipeByteArray(secret)

	r := recv(t, c)
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, wire.LoginRequest{ID: "a@b.com", PW: `p"a\ss\n`}, gotBody)
	assert.Equal(t, make([]byte, len(secret)), secret)
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, logging.Nop{})
	defer c.Close()

	_, err := c.CheckHealth(context.Background())
	require.NoError(t, err)

	r := recv(t, c)
	assert.Error(t, r.Err)
	assert.Equal(t, 0, r.StatusCode)
}

func TestTimeoutIsATransportFailure(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := NewHTTPClient(srv.URL, 50*time.Millisecond, logging.Nop{})
	defer c.Close()

	_, err := c.CheckHealth(context.Background())
	require.NoError(t, err)

	r := recv(t, c)
	assert.ErrorIs(t, r.Err, context.DeadlineExceeded)
	assert.Equal(t, 0, r.StatusCode)
}

func TestRepliesArriveInCompletionOrder(t *testing.T) {
	slow := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			<-slow
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	c := NewHTTPClient(srv.URL, 5*time.Second, logging.Nop{})
	defer c.Close()

	login, err := c.SubmitLogin(context.Background(), "a@b.com", []byte("correct"))
	require.NoError(t, err)
	health, err := c.CheckHealth(context.Background())
	require.NoError(t, err)

	first := recv(t, c)
	assert.Equal(t, health.CorrelationID, first.Descriptor.CorrelationID)
	assert.Equal(t, KindHealth, first.Descriptor.Kind)

	close(slow)
	second := recv(t, c)
	assert.Equal(t, login.CorrelationID, second.Descriptor.CorrelationID)
	assert.Equal(t, KindLogin, second.Descriptor.Kind)
}

func TestClose(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	c := NewHTTPClient(srv.URL, time.Second, logging.Nop{})

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.CheckHealth(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = c.SubmitLogin(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrClosed)

	_, ok := <-c.Replies()
	assert.False(t, ok)
}

func TestClose_AbortsInFlight(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	c := NewHTTPClient(srv.URL, 0, logging.Nop{})

	_, err := c.CheckHealth(context.Background())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = c.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "health", KindHealth.String())
	assert.Equal(t, "login", KindLogin.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

package dispatch

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func reply(kind client.Kind, status int, body string, err error) client.Reply {
	r := client.Reply{
		Descriptor: client.Descriptor{Kind: kind, CorrelationID: uuid.New(), Seq: 1},
		Err:        err,
		StatusCode: status,
	}
	if body != "" {
		r.Body = []byte(body)
	}
	return r
}

func TestClassify(t *testing.T) {
	refused := errors.New("connection refused")

	tests := []struct {
		name       string
		in         client.Reply
		wantClass  Class
		wantHealth HealthStatus
		wantName   string
	}{
		// rule 1
		{name: "health unreachable", in: reply(client.KindHealth, 0, "", refused), wantClass: ClassUnreachable, wantHealth: HealthUnreachable},
		{name: "login unreachable", in: reply(client.KindLogin, 0, "", refused), wantClass: ClassUnreachable, wantHealth: HealthUnreachable},
		{name: "no status no error", in: reply(client.KindHealth, 0, "", nil), wantClass: ClassUnreachable, wantHealth: HealthUnreachable},

		// rule 2
		{name: "login 401", in: reply(client.KindLogin, 401, `{"ok":false}`, nil), wantClass: ClassInvalidCredentials},
		{name: "login 401 garbage body", in: reply(client.KindLogin, 401, `<html>`, nil), wantClass: ClassInvalidCredentials},

		// rule 3
		{name: "health 401 is a fault", in: reply(client.KindHealth, 401, `{"ok":true}`, nil), wantClass: ClassServerFault, wantHealth: HealthOffline},
		{name: "login 500", in: reply(client.KindLogin, 500, `{"ok":false}`, nil), wantClass: ClassServerFault, wantHealth: HealthOffline},
		{name: "login 400", in: reply(client.KindLogin, 400, `{"ok":false}`, nil), wantClass: ClassServerFault, wantHealth: HealthOffline},
		{name: "health 503", in: reply(client.KindHealth, 503, ``, nil), wantClass: ClassServerFault, wantHealth: HealthOffline},
		{name: "redirect", in: reply(client.KindHealth, 302, ``, nil), wantClass: ClassServerFault, wantHealth: HealthOffline},

		// rule 4
		{name: "health not json", in: reply(client.KindHealth, 200, `OK`, nil), wantClass: ClassUnparseable, wantHealth: HealthUnparseable},
		{name: "health array", in: reply(client.KindHealth, 200, `[true]`, nil), wantClass: ClassUnparseable, wantHealth: HealthUnparseable},
		{name: "health null", in: reply(client.KindHealth, 200, `null`, nil), wantClass: ClassUnparseable, wantHealth: HealthUnparseable},
		{name: "health empty", in: reply(client.KindHealth, 200, ``, nil), wantClass: ClassUnparseable, wantHealth: HealthUnparseable},
		{name: "login not json", in: reply(client.KindLogin, 200, `{"ok":`, nil), wantClass: ClassUnparseable, wantHealth: HealthUnparseable},

		// rule 5
		{name: "health ok", in: reply(client.KindHealth, 200, `{"ok":true}`, nil), wantClass: ClassHealthy, wantHealth: HealthOnline},
		{name: "health not ok", in: reply(client.KindHealth, 200, `{"ok":false}`, nil), wantClass: ClassHealthy, wantHealth: HealthOffline},
		{name: "health ok missing", in: reply(client.KindHealth, 200, `{}`, nil), wantClass: ClassHealthy, wantHealth: HealthOffline},
		{name: "health ok string", in: reply(client.KindHealth, 200, `{"ok":"true"}`, nil), wantClass: ClassHealthy, wantHealth: HealthOffline},
		{name: "health 204-range", in: reply(client.KindHealth, 299, `{"ok":true}`, nil), wantClass: ClassHealthy, wantHealth: HealthOnline},
		{name: "login policy reject", in: reply(client.KindLogin, 200, `{"ok":false}`, nil), wantClass: ClassLoginRejected},
		{name: "login success", in: reply(client.KindLogin, 200, `{"ok":true,"uid":1,"name":"Alice"}`, nil), wantClass: ClassLoginSucceeded, wantName: "Alice"},
		{name: "login success no name", in: reply(client.KindLogin, 200, `{"ok":true}`, nil), wantClass: ClassLoginSucceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in)
			assert.Equal(t, tt.wantClass, got.Class)
			assert.Equal(t, tt.wantHealth, got.Health)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.in.Descriptor.Kind, got.Kind)
			assert.NotEmpty(t, got.Title)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassify_Messages(t *testing.T) {
	o := Classify(reply(client.KindLogin, http.StatusInternalServerError, "", nil))
	assert.Equal(t, "server error (HTTP 500)", o.Message)

	o = Classify(reply(client.KindLogin, 0, "", errors.New("dial tcp: refused")))
	assert.Equal(t, "cannot reach server: dial tcp: refused", o.Message)

	o = Classify(reply(client.KindLogin, 200, `{"ok":true,"name":"Alice"}`, nil))
	assert.Equal(t, "welcome, Alice!", o.Message)
}

func TestClassify_LoginSucceededWithoutName(t *testing.T) {
	for _, body := range []string{`{"ok":true}`, `{"ok":true,"name":""}`, `{"ok":true,"uid":1,"name":null}`} {
		o := Classify(reply(client.KindLogin, 200, body, nil))
		assert.Equal(t, ClassLoginSucceeded, o.Class, body)
		assert.Empty(t, o.Name, body)
		assert.Equal(t, "welcome!", o.Message, body)
	}
}

func TestClassify_IsPure(t *testing.T) {
	r := reply(client.KindHealth, 200, `{"ok":true}`, nil)
	first := Classify(r)
	for i := 0; i < 10; i++ {
		Classify(reply(client.KindLogin, 401, "", nil))
		assert.Equal(t, first, Classify(r))
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "online", HealthOnline.String())
	assert.Equal(t, "offline", HealthOffline.String())
	assert.Equal(t, "unreachable", HealthUnreachable.String())
	assert.Equal(t, "unparseable", HealthUnparseable.String())
	assert.Equal(t, "unknown", HealthUnknown.String())
	assert.Equal(t, "server_fault", ClassServerFault.String())
	assert.Equal(t, "unknown", Class(0).String())
}

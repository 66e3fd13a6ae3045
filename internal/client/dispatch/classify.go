package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
)

// Class is the terminal classification of one reply.
type Class int

const (
	ClassUnreachable Class = iota + 1
	ClassInvalidCredentials
	ClassServerFault
	ClassUnparseable
	ClassHealthy
	ClassLoginRejected
	ClassLoginSucceeded
)

func (c Class) String() string {
	switch c {
	case ClassUnreachable:
		return "unreachable"
	case ClassInvalidCredentials:
		return "invalid_credentials"
	case ClassServerFault:
		return "server_fault"
	case ClassUnparseable:
		return "unparseable"
	case ClassHealthy:
		return "healthy"
	case ClassLoginRejected:
		return "login_rejected"
	case ClassLoginSucceeded:
		return "login_succeeded"
	default:
		return "unknown"
	}
}

// Outcome is what a reply means to the user. Health is set for health
// replies only; Name only for ClassLoginSucceeded.
type Outcome struct {
	Kind       client.Kind
	Class      Class
	Health     HealthStatus
	StatusCode int
	Name       string
	Title      string
	Message    string
}

// Classify maps a reply to its Outcome. It is a pure function of the reply:
// the first matching rule wins.
//
//  1. no HTTP status                 -> unreachable
//  2. 401 on login                   -> invalid credentials
//  3. any other non-2xx              -> server fault
//  4. 2xx, body not a JSON object    -> unparseable
//  5. 2xx, object                    -> by kind and the "ok" field
//
// A health reply always yields a HealthStatus; a server fault on health
// counts as offline.
func Classify(r client.Reply) Outcome {
	kind := r.Descriptor.Kind
	o := Outcome{Kind: kind, StatusCode: r.StatusCode}

	switch {
	case r.StatusCode == 0:
		o.Class = ClassUnreachable
		o.Health = HealthUnreachable
		o.Title = "network error"
		o.Message = "cannot reach server"
		if r.Err != nil {
			o.Message += ": " + r.Err.Error()
		}
		return o

	case r.StatusCode == http.StatusUnauthorized && kind == client.KindLogin:
		o.Class = ClassInvalidCredentials
		o.Title = "login failed"
		o.Message = "bad identifier or secret"
		return o

	case r.StatusCode < 200 || r.StatusCode > 299:
		o.Class = ClassServerFault
		o.Health = HealthOffline
		o.Title = "server error"
		o.Message = fmt.Sprintf("server error (HTTP %d)", r.StatusCode)
		return o
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &obj); err != nil || obj == nil {
		o.Class = ClassUnparseable
		o.Health = HealthUnparseable
		if kind == client.KindLogin {
			o.Title = "server response error"
			o.Message = "unexpected login response format"
		} else {
			o.Title = "server status"
			o.Message = "health response could not be parsed"
		}
		return o
	}

	ok := boolField(obj, "ok")

	if kind != client.KindLogin {
		o.Class = ClassHealthy
		o.Health = HealthOffline
		if ok {
			o.Health = HealthOnline
		}
		o.Title = "server status"
		o.Message = "server is " + o.Health.String()
		return o
	}

	if !ok {
		o.Class = ClassLoginRejected
		o.Title = "login failed"
		o.Message = "check your identifier and secret"
		return o
	}

	o.Class = ClassLoginSucceeded
	o.Name = stringField(obj, "name")
	o.Title = "login succeeded"
	o.Message = "welcome!"
	if o.Name != "" {
		o.Message = fmt.Sprintf("welcome, %s!", o.Name)
	}
	return o
}

// boolField is true only for a JSON true; absent or non-bool values are false.
func boolField(obj map[string]json.RawMessage, key string) bool {
	var b bool
	if raw, ok := obj[key]; ok && json.Unmarshal(raw, &b) == nil {
		return b
	}
	return false
}

func stringField(obj map[string]json.RawMessage, key string) string {
	var s string
	if raw, ok := obj[key]; ok && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

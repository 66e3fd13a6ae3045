package client

import (
	"time"

	"github.com/google/uuid"
)

// Kind says which endpoint a request targeted.
type Kind int

const (
	KindHealth Kind = iota + 1
	KindLogin
)

func (k Kind) String() string {
	switch k {
	case KindHealth:
		return "health"
	case KindLogin:
		return "login"
	default:
		return "unknown"
	}
}

// Descriptor identifies one issued request. Seq grows monotonically across
// all requests of one client.
type Descriptor struct {
	Kind          Kind
	CorrelationID uuid.UUID
	Seq           uint64
	IssuedAt      time.Time
}

// Reply is the outcome of one request. Exactly one of Err and StatusCode is
// meaningful: StatusCode is 0 when no HTTP response was obtained.
type Reply struct {
	Descriptor Descriptor
	Err        error
	StatusCode int
	Body       []byte
}

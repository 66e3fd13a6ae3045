package dispatch

import "sync"

// HealthStatus is the client's view of server liveness.
type HealthStatus int

const (
	// HealthUnknown is shown until the first health reply is applied.
	HealthUnknown HealthStatus = iota
	HealthOnline
	HealthOffline
	HealthUnreachable
	HealthUnparseable
)

func (s HealthStatus) String() string {
	switch s {
	case HealthOnline:
		return "online"
	case HealthOffline:
		return "offline"
	case HealthUnreachable:
		return "unreachable"
	case HealthUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// HealthState holds the current HealthStatus. By default the last applied
// reply wins regardless of when it was issued; with discardStale set, a reply
// whose Seq is not newer than the last applied one is ignored.
type HealthState struct {
	mu           sync.RWMutex
	status       HealthStatus
	lastSeq      uint64
	discardStale bool
}

func NewHealthState(discardStale bool) *HealthState {
	return &HealthState{discardStale: discardStale}
}

// Apply records s for the reply numbered seq. It reports the previous status
// and whether s was applied.
func (h *HealthState) Apply(seq uint64, s HealthStatus) (prev HealthStatus, applied bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	prev = h.status
	if h.discardStale && seq <= h.lastSeq {
		return prev, false
	}
	h.status = s
	if seq > h.lastSeq {
		h.lastSeq = seq
	}
	return prev, true
}

func (h *HealthState) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

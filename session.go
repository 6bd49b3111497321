package riff

import "github.com/google/uuid"

// SessionState is the read-session state machine: Opened -> HeaderRead ->
// Planned -> Streaming -> Closed. Closed is terminal; any error
// transitions the session directly to Closed.
type SessionState int

const (
	SessionOpened SessionState = iota
	SessionHeaderRead
	SessionPlanned
	SessionStreaming
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionOpened:
		return "opened"
	case SessionHeaderRead:
		return "header_read"
	case SessionPlanned:
		return "planned"
	case SessionStreaming:
		return "streaming"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// NewSessionID mints an identifier for correlating log lines across a
// single reader session, the way the teacher stamps a RowID onto each
// DataRecord. Telemetry labels do not carry it.
func NewSessionID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

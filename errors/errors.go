package errors

import "fmt"

// Realtime error taxonomy. Every handler failure must map onto one of
// these families before it reaches the wire; nothing in this layer is
// allowed to crash the process.
var (
	// ErrUnauthorized means the sender is not a verified participant or
	// host. Surfaced to the sender only, never broadcast.
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// ErrNotFound means the target room, space or session does not
	// exist. Silent for relays, explicit for recording start/stop.
	ErrNotFound = fmt.Errorf("not found")

	// ErrInvalidState means the operation conflicts with the current
	// state machine position (e.g. recording while already recording).
	ErrInvalidState = fmt.Errorf("invalid state")

	// ErrLookupFailed means the persistence collaborator was unreachable
	// during a membership check. Callers fail closed on it.
	ErrLookupFailed = fmt.Errorf("membership lookup failed")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)

// InvalidStatef wraps ErrInvalidState with a human-readable reason.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

package session

import "fmt"

// Disconnected is the normal shutdown path: the server told the client to
// leave, in Login, Configuration, or Play. It is a distinguished,
// non-panicking result rather than a generic error — callers that only
// care about clean-vs-dirty shutdown can type-assert for it.
type Disconnected struct {
	Phase  string
	Reason string
}

func (d *Disconnected) Error() string {
	return fmt.Sprintf("session: disconnected in %s phase: %s", d.Phase, d.Reason)
}

// UnexpectedPacketInPhase marks a non-fatal decode: a packet id the current
// phase's dispatch table has no handler for. The FSM logs it and discards
// the remaining frame bytes rather than aborting the connection.
type UnexpectedPacketInPhase struct {
	Phase string
	ID    int32
}

func (e *UnexpectedPacketInPhase) Error() string {
	return fmt.Sprintf("session: unexpected packet id %#x in %s phase", e.ID, e.Phase)
}

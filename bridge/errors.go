package bridge

import "fmt"

// IllegalActionError reports an action that violates the game rules given
// the current auction or hand state. Recoverable: the caller may retry with
// a legal action or the environment may apply its penalize policy.
type IllegalActionError struct {
	Seat   Seat
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action by %s: %s", e.Seat, e.Reason)
}

// ProtocolViolationError reports a caller-contract violation in the
// simultaneous variant: a non-active seat submitted a real action, or the
// active seat submitted the empty sentinel.
type ProtocolViolationError struct {
	Seat   Seat
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return fmt.Sprintf("protocol violation by %s: %s", e.Seat, e.Reason)
}

// InvalidActionSpaceError reports an action index outside the valid range
// for the current phase. Always surfaced, never clamped.
type InvalidActionSpaceError struct {
	Index  int
	Reason string
}

func (e *InvalidActionSpaceError) Error() string {
	return fmt.Sprintf("invalid action index %d: %s", e.Index, e.Reason)
}

package strobe

// State represents the current state of a Switcher.
type State int32

const (
	// StateIdle indicates no source is bound. The visible value is unset.
	StateIdle State = iota

	// StatePending indicates a source is bound but has not emitted yet.
	// The visible value is unset.
	StatePending

	// StateLive indicates the active source has produced a visible value.
	StateLive

	// StateFailed indicates the active source reported a terminal error.
	// The last visible value, if any, remains readable.
	StateFailed

	// StateDisposed indicates the switcher was torn down. All further
	// operations are no-ops.
	StateDisposed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateLive:
		return "live"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

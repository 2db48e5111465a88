package transport

// State is the connection state of one Transport instance.
//
// Transitions:
//
//	disconnected --Connect()--> connecting --open--> connected
//	connected --close--> disconnected
//	any --read/dial error--> errored --then--> disconnected
//
// From disconnected, a close that was not caller-initiated re-enters
// connecting after a fixed backoff, while the retry budget lasts.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

package postgres

// State is the lifecycle position of a Manager.
type State uint8

const (
	StateUnconnected State = iota
	StateConnected
	StateCursorOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateCursorOpen:
		return "cursor_open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

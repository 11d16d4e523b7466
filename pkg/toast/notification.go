package toast

import "time"

// State is the lifecycle position of a notification.
// Transitions only move forward: created -> shown -> dismissed.
type State int

const (
	StateCreated State = iota
	StateShown
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateShown:
		return "shown"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Notification is a transient message conveying the outcome of an operation.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
	State     State     `json:"-"`
}

// Dismissed reports whether the notification reached its terminal state.
func (n Notification) Dismissed() bool {
	return n.State == StateDismissed
}

// NodeID is the DOM id of the rendered notification.
func (n Notification) NodeID() string {
	return NodeID(n.ID)
}

// NodeID maps a notification id to the DOM id of its rendered node.
func NodeID(id string) string {
	return "toast-" + id
}

// advance moves the notification to next. It returns false when the
// transition would go backwards or stay put.
func (n *Notification) advance(next State) bool {
	if next <= n.State {
		return false
	}
	n.State = next
	return true
}

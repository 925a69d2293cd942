package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventJoinResult answers a join request. Error is set when it failed.
	EventJoinResult EventKind = iota
	// EventMessage carries a chat message or a system announcement.
	EventMessage
	// EventTyping carries an ephemeral typing status.
	EventTyping
	// EventMembers answers a member list request.
	EventMembers
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	Envelope Envelope
	Users    []string   // For EventMembers
	Error    *CoreError // non-nil for a failed EventJoinResult
}

package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin claims a display name in a room.
	CommandJoin CommandKind = iota
	// CommandAnnounceJoin tells the room that the client has arrived.
	CommandAnnounceJoin
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
	// CommandTypingStart notifies the other participants that the client is typing.
	CommandTypingStart
	// CommandTypingStop clears the typing notification.
	CommandTypingStop
	// CommandLeaveRoom releases the display name and unbinds the client.
	CommandLeaveRoom
	// CommandListMembers asks for the current member list of the room.
	CommandListMembers
)

var commandNames = [...]string{
	CommandJoin:         "join",
	CommandAnnounceJoin: "announce_join",
	CommandSendMessage:  "send_message",
	CommandTypingStart:  "typing_start",
	CommandTypingStop:   "typing_stop",
	CommandLeaveRoom:    "leave_room",
	CommandListMembers:  "list_members",
}

func (k CommandKind) String() string {
	if k < 0 || int(k) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[k]
}

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Room string
	Name string
	Text string
}

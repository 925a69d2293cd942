package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

const (
	EventUserJoin  = "user:join"
	EventRoomJoin  = "room:join"
	EventMessage   = "message"
	EventTypeStart = "type:start"
	EventTypeStop  = "type:stop"
	EventRoomLeft  = "room:left"
	EventRoomUsers = "room:users"

	// EventTyping is only sent by the server.
	EventTyping = "typing"
)

// JoinData claims a display name in a room.
type JoinData struct {
	RoomName string `json:"roomName" validate:"required"`
	ChatName string `json:"chatName" validate:"required"`
}

// RoomData addresses the room the client has joined.
type RoomData struct {
	RoomName string `json:"roomName" validate:"required"`
	ChatName string `json:"chatName,omitempty"`
}

// MessageData is a chat message from the client. Empty text is allowed.
type MessageData struct {
	RoomName string `json:"roomName" validate:"required"`
	ChatName string `json:"chatName,omitempty"`
	Message  string `json:"message"`
}

// JoinResult answers user:join.
type JoinResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// MessageEvent is the envelope of message and typing events.
type MessageEvent struct {
	From     string `json:"from"`
	Message  string `json:"message"`
	Date     string `json:"date"`
	Color    string `json:"color"`
	ChatName string `json:"chatName"`
	RoomName string `json:"roomName"`
}

// UsersResult answers room:users.
type UsersResult struct {
	Users []string `json:"users"`
}

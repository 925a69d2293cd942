package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeNameTaken = "name_taken"
)

var (
	// ErrNameTaken is returned to a join requester whose display name is already used in the room.
	ErrNameTaken = coreError(ErrCodeNameTaken, "This name has been taken")

	ErrRoomNotFound = errors.New("room not found")
	ErrHubStopped   = errors.New("hub stopped")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

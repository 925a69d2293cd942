package core

import "time"

// DateLayout renders envelope timestamps, e.g. "Mar 07, 14:05 pm".
const DateLayout = "Jan 02, 15:04 pm"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Envelope is the message record fanned out to room members.
// ChatName is the displayed author; for system announcements it names the
// subject user while From and Color belong to the system identity.
type Envelope struct {
	From     string
	Message  string
	Date     string
	Color    Color
	ChatName string
	RoomName string
}

// Factory builds envelopes stamped with the sender color and current time.
type Factory struct {
	colors *ColorBook
	clock  Clock
}

// NewFactory constructs a factory. A nil clock uses time.Now.
func NewFactory(colors *ColorBook, clock Clock) *Factory {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	return &Factory{colors: colors, clock: clock}
}

// Build returns an envelope from sender with the given body, displayed author and room.
func (f *Factory) Build(from, body, author, room string) Envelope {
	return Envelope{
		From:     from,
		Message:  body,
		Date:     f.clock.Now().Format(DateLayout),
		Color:    f.colors.ColorOf(from),
		ChatName: author,
		RoomName: room,
	}
}

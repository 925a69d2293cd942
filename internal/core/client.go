package core

import "sync"

const defaultClientBuffer = 32

// Client is one live connection as seen by the core layer.
// Commands flow in from the transport; Events flow back out and are closed
// by the hub once the client is unregistered.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

// NewClient constructs a client with buffered channels. A non-positive
// buffer falls back to the default size.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// deliver queues an event without blocking. Slow consumers lose events.
func (c *Client) deliver(event *Event) bool {
	select {
	case c.Events <- event:
		return true
	default:
		return false
	}
}

// detach asks the hub to disconnect c once its queued commands are handled.
func (c *Client) detach() {
	c.quitOnce.Do(func() { close(c.quit) })
}

// close stops the command pump and signals the transport that no more events follow.
func (c *Client) close() {
	close(c.done)
	close(c.Events)
}

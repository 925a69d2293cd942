package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultSystemName is the identity used for join, leave and typing announcements.
const DefaultSystemName = "admin"

const inboxSize = 256

// inbound is one entry of the hub's ordered stream. A disconnect entry
// carries no command and always follows the client's earlier commands.
type inbound struct {
	client     *Client
	cmd        *Command
	disconnect bool
}

// RoomInfo summarizes a room for read-only views.
type RoomInfo struct {
	Name    string
	Members []string
}

// Option configures a Hub.
type Option func(*Hub)

// WithClock sets the clock used to stamp envelopes.
func WithClock(clock Clock) Option {
	return func(h *Hub) { h.clock = clock }
}

// WithPalette sets the colors display names are drawn from.
func WithPalette(palette []Color) Option {
	return func(h *Hub) { h.palette = palette }
}

// WithPicker sets how a palette index is chosen for a new name.
func WithPicker(pick Picker) Option {
	return func(h *Hub) { h.pick = pick }
}

// WithSystemName overrides the system identity.
func WithSystemName(name string) Option {
	return func(h *Hub) {
		if name != "" {
			h.system = name
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.log = logger
		}
	}
}

// Hub owns the room directory, the color book and the connection registry,
// and processes every client command on a single goroutine. Each command is
// handled to completion, broadcasts included, before the next one starts.
type Hub struct {
	register chan *Client
	inbox    chan inbound
	queries  chan func()
	done     chan struct{}

	directory *Directory
	colors    *ColorBook
	factory   *Factory
	registry  *Registry

	system  string
	clock   Clock
	palette []Color
	pick    Picker
	log     *zerolog.Logger
}

// NewHub creates a hub. The system identity gets its color immediately.
func NewHub(opts ...Option) *Hub {
	nop := zerolog.Nop()
	h := &Hub{
		register:  make(chan *Client),
		inbox:     make(chan inbound, inboxSize),
		queries:   make(chan func()),
		done:      make(chan struct{}),
		directory: NewDirectory(),
		registry:  NewRegistry(),
		system:    DefaultSystemName,
		log:       &nop,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.colors = NewColorBook(h.palette, h.pick)
	h.factory = NewFactory(h.colors, h.clock)
	h.colors.ColorOf(h.system)
	return h
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.registry.Register(c)
			go h.pump(c)
			h.log.Debug().Str("client_id", c.ID).Int("clients", h.registry.Len()).Msg("client registered")
		case in := <-h.inbox:
			if in.disconnect {
				h.disconnect(in.client)
				continue
			}
			h.handle(in.client, in.cmd)
		case q := <-h.queries:
			q()
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// RegisterClient attaches a new unjoined connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient detaches a connection after the commands it already sent
// have been handled. A joined client leaves its room implicitly.
func (h *Hub) UnregisterClient(c *Client) {
	c.detach()
}

// Members returns a snapshot of the display names present in room.
func (h *Hub) Members(ctx context.Context, room string) ([]string, error) {
	var (
		users []string
		found bool
	)
	err := h.do(ctx, func() {
		found = h.directory.Exists(room)
		users = h.directory.List(room)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRoomNotFound
	}
	return users, nil
}

// Rooms returns every room created so far with its members.
func (h *Hub) Rooms(ctx context.Context) ([]RoomInfo, error) {
	var rooms []RoomInfo
	err := h.do(ctx, func() {
		for _, name := range h.directory.Rooms() {
			rooms = append(rooms, RoomInfo{Name: name, Members: h.directory.List(name)})
		}
	})
	return rooms, err
}

// do runs fn on the hub goroutine and waits for it to finish.
func (h *Hub) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	q := func() {
		defer close(finished)
		fn()
	}
	select {
	case h.queries <- q:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// pump forwards the client's commands into the shared inbox, preserving their
// order. Once the client detaches, the remaining commands are drained and a
// disconnect entry is queued behind them.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			if !h.enqueue(inbound{client: c, cmd: cmd}) {
				return
			}
		case <-c.quit:
			h.drain(c)
			return
		case <-c.done:
			return
		case <-h.done:
			return
		}
	}
}

func (h *Hub) drain(c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			if !h.enqueue(inbound{client: c, cmd: cmd}) {
				return
			}
		default:
			h.enqueue(inbound{client: c, disconnect: true})
			return
		}
	}
}

func (h *Hub) enqueue(in inbound) bool {
	select {
	case h.inbox <- in:
		return true
	case <-in.client.done:
		return false
	case <-h.done:
		return false
	}
}

func (h *Hub) handle(c *Client, cmd *Command) {
	if cmd == nil || !h.registry.Registered(c) {
		return
	}

	sess, joined := h.registry.Session(c)
	if cmd.Kind == CommandJoin {
		if joined {
			h.ignore(c, cmd, "already joined")
			return
		}
		h.join(c, cmd.Room, cmd.Name)
		return
	}

	if !joined {
		h.ignore(c, cmd, "not joined")
		return
	}
	if cmd.Room != sess.Room {
		h.ignore(c, cmd, "not in room")
		return
	}

	room := h.registry.Room(sess.Room)
	switch cmd.Kind {
	case CommandAnnounceJoin:
		env := h.factory.Build(h.system, sess.Name+" joined the conversation.", sess.Name, sess.Room)
		h.fanout(room.Broadcast(&Event{Kind: EventMessage, Room: sess.Room, Envelope: env}), sess.Room)
	case CommandSendMessage:
		env := h.factory.Build(sess.Name, cmd.Text, sess.Name, sess.Room)
		h.fanout(room.Broadcast(&Event{Kind: EventMessage, Room: sess.Room, Envelope: env}), sess.Room)
	case CommandTypingStart:
		env := h.factory.Build(h.system, sess.Name+" is typing...", sess.Name, sess.Room)
		h.fanout(room.BroadcastExcept(&Event{Kind: EventTyping, Room: sess.Room, Envelope: env}, c), sess.Room)
	case CommandTypingStop:
		env := h.factory.Build(h.system, "", sess.Name, sess.Room)
		h.fanout(room.BroadcastExcept(&Event{Kind: EventTyping, Room: sess.Room, Envelope: env}, c), sess.Room)
	case CommandLeaveRoom:
		h.leave(c)
	case CommandListMembers:
		c.deliver(&Event{Kind: EventMembers, Room: sess.Room, Users: h.directory.List(sess.Room)})
	default:
		h.ignore(c, cmd, "unknown command")
	}
}

func (h *Hub) join(c *Client, room, name string) {
	if !h.directory.Add(room, name) {
		h.log.Debug().Str("client_id", c.ID).Str("room", room).Str("user", name).Msg("name taken")
		c.deliver(&Event{Kind: EventJoinResult, Room: room, Error: ErrNameTaken})
		return
	}
	h.colors.ColorOf(name)
	h.registry.Bind(c, room, name)
	h.log.Info().Str("client_id", c.ID).Str("room", room).Str("user", name).Msg("user joined room")
	c.deliver(&Event{Kind: EventJoinResult, Room: room})
}

// leave releases the client's name and tells the remaining members.
func (h *Hub) leave(c *Client) {
	sess, room, ok := h.registry.Unbind(c)
	if !ok {
		return
	}
	h.directory.Remove(sess.Room, sess.Name)
	h.log.Info().Str("client_id", c.ID).Str("room", sess.Room).Str("user", sess.Name).Msg("user left room")

	if room == nil {
		return
	}
	env := h.factory.Build(h.system, fmt.Sprintf("%s left the conversation", sess.Name), sess.Name, sess.Room)
	h.fanout(room.Broadcast(&Event{Kind: EventMessage, Room: sess.Room, Envelope: env}), sess.Room)
}

func (h *Hub) disconnect(c *Client) {
	if !h.registry.Registered(c) {
		return
	}
	h.leave(c)
	h.registry.Unregister(c)
	c.close()
	h.log.Debug().Str("client_id", c.ID).Int("clients", h.registry.Len()).Msg("client unregistered")
}

func (h *Hub) shutdown() {
	for _, c := range h.registry.Clients() {
		h.registry.Unregister(c)
		c.close()
	}
}

func (h *Hub) fanout(dropped int, room string) {
	if dropped > 0 {
		h.log.Warn().Str("room", room).Int("dropped", dropped).Msg("slow consumers dropped events")
	}
}

func (h *Hub) ignore(c *Client, cmd *Command, reason string) {
	h.log.Debug().
		Str("client_id", c.ID).
		Str("command", cmd.Kind.String()).
		Str("room", cmd.Room).
		Str("reason", reason).
		Msg("command ignored")
}

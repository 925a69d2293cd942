package core

// Session binds a joined connection to its room and display name.
type Session struct {
	Room string
	Name string
}

// Registry tracks live connections, their session binding, and the
// connection set of every room. A registered client without a session is
// unjoined.
type Registry struct {
	clients map[*Client]*Session
	rooms   map[string]*Room
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[*Client]*Session),
		rooms:   make(map[string]*Room),
	}
}

// Register adds an unjoined client.
func (r *Registry) Register(c *Client) {
	if _, ok := r.clients[c]; !ok {
		r.clients[c] = nil
	}
}

// Registered reports whether c is a live connection.
func (r *Registry) Registered(c *Client) bool {
	_, ok := r.clients[c]
	return ok
}

// Session returns the binding of c if it has joined a room.
func (r *Registry) Session(c *Client) (Session, bool) {
	s := r.clients[c]
	if s == nil {
		return Session{}, false
	}
	return *s, true
}

// Bind attaches c to room under name and adds it to the room's connection set.
func (r *Registry) Bind(c *Client, room, name string) *Room {
	r.clients[c] = &Session{Room: room, Name: name}
	rm := r.room(room)
	rm.AddClient(c)
	return rm
}

// Unbind clears the session of c and removes it from its room's connection set.
func (r *Registry) Unbind(c *Client) (Session, *Room, bool) {
	s := r.clients[c]
	if s == nil {
		return Session{}, nil, false
	}
	r.clients[c] = nil
	rm := r.rooms[s.Room]
	if rm != nil {
		rm.RemoveClient(c)
	}
	return *s, rm, true
}

// Unregister drops c and any session it still holds.
func (r *Registry) Unregister(c *Client) {
	r.Unbind(c)
	delete(r.clients, c)
}

// Room returns the connection set for name, or nil if nobody ever joined it.
func (r *Registry) Room(name string) *Room {
	return r.rooms[name]
}

// Clients returns every registered connection.
func (r *Registry) Clients() []*Client {
	out := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		out = append(out, c)
	}
	return out
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.clients)
}

func (r *Registry) room(name string) *Room {
	rm, ok := r.rooms[name]
	if !ok {
		rm = NewRoom(name)
		r.rooms[name] = rm
	}
	return rm
}

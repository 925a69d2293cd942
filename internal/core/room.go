package core

// Room groups the connections joined to the same room name.
type Room struct {
	Name    string
	clients map[*Client]struct{}
}

// NewRoom constructs a room with no clients.
func NewRoom(name string) *Room {
	return &Room{
		Name:    name,
		clients: make(map[*Client]struct{}),
	}
}

// AddClient inserts a client into the room. Returns true if newly added.
func (r *Room) AddClient(c *Client) bool {
	if _, exists := r.clients[c]; exists {
		return false
	}
	r.clients[c] = struct{}{}
	return true
}

// RemoveClient deletes a client from the room. Returns true if removed.
func (r *Room) RemoveClient(c *Client) bool {
	if _, exists := r.clients[c]; !exists {
		return false
	}
	delete(r.clients, c)
	return true
}

// Broadcast sends an event to all clients in the room and returns how many were dropped.
func (r *Room) Broadcast(event *Event) int {
	return r.BroadcastExcept(event, nil)
}

// BroadcastExcept sends an event to every client in the room other than skip.
func (r *Room) BroadcastExcept(event *Event, skip *Client) int {
	dropped := 0
	for client := range r.clients {
		if client == skip {
			continue
		}
		if !client.deliver(event) {
			dropped++
		}
	}
	return dropped
}

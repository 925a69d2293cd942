package core

import (
	"sort"

	"github.com/samber/lo"
)

// Directory maps a room name to the display names currently present in it.
// Members are kept in join order. Rooms are created lazily and never removed.
type Directory struct {
	rooms map[string][]string
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string][]string)}
}

// Ensure creates an empty member set for room if it does not exist yet.
func (d *Directory) Ensure(room string) {
	if _, ok := d.rooms[room]; !ok {
		d.rooms[room] = []string{}
	}
}

// Add inserts name into room. Returns false if the name was already present.
func (d *Directory) Add(room, name string) bool {
	d.Ensure(room)
	if d.Contains(room, name) {
		return false
	}
	d.rooms[room] = append(d.rooms[room], name)
	return true
}

// Contains reports whether name is present in room. Matching is exact.
func (d *Directory) Contains(room, name string) bool {
	return lo.Contains(d.rooms[room], name)
}

// Remove deletes name from room. Removing an absent name is a no-op.
func (d *Directory) Remove(room, name string) {
	members, ok := d.rooms[room]
	if !ok || !lo.Contains(members, name) {
		return
	}
	d.rooms[room] = lo.Without(members, name)
}

// Exists reports whether room has ever been created.
func (d *Directory) Exists(room string) bool {
	_, ok := d.rooms[room]
	return ok
}

// List returns a snapshot of the members of room.
func (d *Directory) List(room string) []string {
	members := d.rooms[room]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Rooms returns all known room names, sorted.
func (d *Directory) Rooms() []string {
	names := lo.Keys(d.rooms)
	sort.Strings(names)
	return names
}

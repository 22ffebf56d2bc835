package websocket

import (
	"sync"
)

// Rooms is the set of named broadcast groups. A room springs into existence
// on first join and is pruned when its last member leaves; absence of a room
// is never an error. Membership here is a derived, ephemeral index over
// connections, never the source of truth for conversation participation.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[string]map[*Client]struct{})}
}

// Join is idempotent: joining a room the client is already in is a no-op.
func (r *Rooms) Join(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[room] == nil {
		r.rooms[room] = make(map[*Client]struct{})
	}
	r.rooms[room][c] = struct{}{}
}

// Leave is idempotent: leaving a room the client is not in is a no-op.
func (r *Rooms) Leave(c *Client, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(c, room)
}

func (r *Rooms) leaveLocked(c *Client, room string) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}

// LeaveAll removes the client from every room it is in, as part of teardown.
func (r *Rooms) LeaveAll(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.rooms {
		r.leaveLocked(c, room)
	}
}

func (r *Rooms) Contains(c *Client, room string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[room][c]
	return ok
}

// Members returns a snapshot of the room's current members, optionally
// excluding one connection, so callers can fan out without holding the lock.
func (r *Rooms) Members(room string, except *Client) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil
	}
	snapshot := make([]*Client, 0, len(members))
	for c := range members {
		if c == except {
			continue
		}
		snapshot = append(snapshot, c)
	}
	return snapshot
}

func (r *Rooms) Count(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

func (r *Rooms) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

package websocket

import (
	"sync"
)

// Registry is the bidirectional map between identities and their live
// connections. It is the source of truth for presence: an identity is online
// while it has at least one registered connection.
type Registry struct {
	mu    sync.RWMutex
	users map[string][]*Client
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[string][]*Client)}
}

func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[c.UserID] = append(r.users[c.UserID], c)
}

// Unregister removes exactly the one mapping for c and reports whether it was
// the identity's last connection, i.e. the identity just went offline.
func (r *Registry) Unregister(c *Client) (wasLast bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := r.users[c.UserID]
	for i, existing := range clients {
		if existing == c {
			r.users[c.UserID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(r.users[c.UserID]) == 0 {
		delete(r.users, c.UserID)
		return true
	}
	return false
}

func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}

func (r *Registry) ListOnline() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	online := make([]string, 0, len(r.users))
	for userID := range r.users {
		online = append(online, userID)
	}
	return online
}

// Clients returns a snapshot of the identity's live connections.
func (r *Registry) Clients(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*Client, len(r.users[userID]))
	copy(snapshot, r.users[userID])
	return snapshot
}

// All returns a snapshot of every registered connection.
func (r *Registry) All() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*Client
	for _, clients := range r.users {
		all = append(all, clients...)
	}
	return all
}

func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, clients := range r.users {
		total += len(clients)
	}
	return total
}

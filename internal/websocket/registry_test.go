package websocket

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterUnregister(t *testing.T) {
	r := NewRegistry()
	c := NewClient("u1", "student", nil)

	r.Register(c)
	assert.True(t, r.IsOnline("u1"))
	assert.Equal(t, 1, r.ConnectionCount())

	wasLast := r.Unregister(c)
	assert.True(t, wasLast, "removing the only connection should report last")
	assert.False(t, r.IsOnline("u1"))
	assert.Equal(t, 0, r.ConnectionCount())
}

func TestRegistry_MultiDevice(t *testing.T) {
	r := NewRegistry()
	c1 := NewClient("u1", "student", nil)
	c2 := NewClient("u1", "student", nil)

	r.Register(c1)
	r.Register(c2)
	assert.True(t, r.IsOnline("u1"))
	assert.Len(t, r.Clients("u1"), 2)

	wasLast := r.Unregister(c1)
	assert.False(t, wasLast, "identity still has a live connection")
	assert.True(t, r.IsOnline("u1"), "closing a non-last connection keeps identity online")

	wasLast = r.Unregister(c2)
	assert.True(t, wasLast)
	assert.False(t, r.IsOnline("u1"))
}

func TestRegistry_UnregisterUnknownClient(t *testing.T) {
	r := NewRegistry()
	registered := NewClient("u1", "student", nil)
	stranger := NewClient("u1", "student", nil)

	r.Register(registered)
	wasLast := r.Unregister(stranger)

	assert.False(t, wasLast)
	assert.True(t, r.IsOnline("u1"), "unregistering an unknown connection must not evict the registered one")
}

func TestRegistry_ListOnline(t *testing.T) {
	r := NewRegistry()
	r.Register(NewClient("u1", "student", nil))
	r.Register(NewClient("u2", "mentor", nil))

	online := r.ListOnline()
	assert.ElementsMatch(t, []string{"u1", "u2"}, online)
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := NewRegistry()

	const users = 8
	const connsPerUser = 25

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		for i := 0; i < connsPerUser; i++ {
			wg.Add(1)
			go func(u int) {
				defer wg.Done()
				c := NewClient(fmt.Sprintf("user-%d", u), "student", nil)
				r.Register(c)
				_ = r.IsOnline(c.UserID)
				_ = r.ListOnline()
				r.Unregister(c)
			}(u)
		}
	}
	wg.Wait()

	require.Equal(t, 0, r.ConnectionCount(), "every registered connection was also unregistered")
	assert.Empty(t, r.ListOnline())
}

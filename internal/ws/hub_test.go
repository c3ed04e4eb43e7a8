package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain pops every queued message for a client without blocking.
func drain(c *Client) []WSMessage {
	var out []WSMessage
	for {
		select {
		case raw := <-c.send:
			var msg WSMessage
			if err := json.Unmarshal(raw, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	a := newClient("a", nil)
	b := newClient("b", nil)
	c := newClient("c", nil)
	hub.add("room1", a)
	hub.add("room1", b)
	hub.add("room2", c)

	bc := hub.ForLobby("room1")

	bc.Broadcast("hello", map[string]string{"x": "y"})
	require.Len(t, drain(a), 1)
	require.Len(t, drain(b), 1)
	assert.Empty(t, drain(c), "other lobby must not receive")

	bc.To("a", "private", nil)
	msgs := drain(a)
	require.Len(t, msgs, 1)
	assert.Equal(t, "private", msgs[0].Type)
	assert.Empty(t, drain(b))

	bc.Except("a", "stroke", json.RawMessage(`{}`))
	assert.Empty(t, drain(a))
	require.Len(t, drain(b), 1)
}

func TestHubRemove(t *testing.T) {
	hub := NewHub()
	a := newClient("a", nil)
	hub.add("room1", a)
	hub.remove("room1", "a")

	hub.ForLobby("room1").Broadcast("hello", nil)
	assert.Empty(t, drain(a))

	// Removing again is harmless.
	hub.remove("room1", "a")
}

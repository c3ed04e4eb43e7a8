package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Client is one websocket connection. Outbound traffic goes through the
// buffered send channel so broadcasts never block on a slow socket.
type Client struct {
	playerID string
	conn     *websocket.Conn
	send     chan []byte
	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
}

func newClient(playerID string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		playerID: playerID,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (c *Client) cleanup() {
	c.once.Do(func() {
		c.cancel()
		close(c.send)
		c.conn.Close()
	})
}

// enqueue drops the message if the client is gone or its buffer is full.
func (c *Client) enqueue(msg []byte) {
	select {
	case <-c.ctx.Done():
	default:
		select {
		case c.send <- msg:
		default:
			zap.S().Warnf("ws: send buffer full for player %s, dropping", c.playerID)
		}
	}
}

// readPump delivers inbound messages to handle until the connection dies or
// handle asks to stop.
func (c *Client) readPump(handle func(WSMessage) bool) {
	defer c.cleanup()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, raw, err := c.conn.ReadMessage()
			if err != nil {
				zap.S().Debugf("ws: read error for player %s: %v", c.playerID, err)
				return
			}
			var msg WSMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				zap.S().Debugf("ws: invalid message from player %s: %v", c.playerID, err)
				continue
			}
			if !handle(msg) {
				return
			}
		}
	}
}

// writePump flushes the send channel and keeps the connection alive with
// pings. Runs on the upgrade handler's goroutine, like the read/write split
// everywhere else in this codebase.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cleanup()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return

		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				zap.S().Debugf("ws: write error for player %s: %v", c.playerID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

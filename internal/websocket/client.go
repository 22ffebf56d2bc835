package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 16 // 64 KB, chat events are small
	sendBufferSize = 256
)

// Client is one live authenticated connection. An identity may own several
// concurrent clients (multi-device); each client belongs to exactly one
// identity for its whole lifetime.
type Client struct {
	ID       string
	UserID   string
	Role     string
	AuthedAt time.Time
	Conn     *websocket.Conn
	Send     chan []byte

	ctx          context.Context
	cancel       context.CancelFunc
	closeOnce    sync.Once
	teardownOnce sync.Once
	lastSeen     atomic.Int64

	// onClose is set by the hub on attach and runs exactly once on teardown.
	onClose func(*Client)
	// onEvent receives every inbound frame, called sequentially from the
	// read pump so per-connection FIFO ordering holds.
	onEvent func(*Client, []byte)
}

func NewClient(userID, role string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Role:     role,
		AuthedAt: time.Now(),
		Conn:     conn,
		Send:     make(chan []byte, sendBufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	c.lastSeen.Store(time.Now().Unix())
	return c
}

// Start launches the read and write pumps. The read pump owns teardown.
func (c *Client) Start(onEvent func(*Client, []byte)) {
	c.onEvent = onEvent
	go c.writePump()
	go c.readPump()
}

func (c *Client) Context() context.Context {
	return c.ctx
}

func (c *Client) IsActive() bool {
	return c.ctx.Err() == nil
}

func (c *Client) GetLastSeen() time.Time {
	return time.Unix(c.lastSeen.Load(), 0)
}

// Enqueue hands a frame to the write pump without blocking. A full buffer
// means a slow consumer; the frame is dropped and the caller decides whether
// to disconnect.
func (c *Client) Enqueue(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	case <-c.ctx.Done():
		return false
	default:
		return false
	}
}

// SendEvent marshals and enqueues a single event for this connection only.
func (c *Client) SendEvent(ev OutgoingEvent) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	data, err := ev.encode()
	if err != nil {
		log.Error().Err(err).Str("event", ev.Event).Msg("ws: failed to marshal event")
		return
	}
	if !c.Enqueue(data) && c.IsActive() {
		log.Warn().Str("clientID", c.ID).Str("event", ev.Event).Msg("ws: send buffer full, dropping event")
	}
}

// Close is safe to call from any goroutine and any number of times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.Conn != nil {
			_ = c.Conn.Close()
		} else {
			// no pumps running, run teardown inline
			c.teardown()
		}
	})
}

func (c *Client) teardown() {
	c.teardownOnce.Do(func() {
		c.cancel()
		if c.onClose != nil {
			c.onClose(c)
		}
	})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.teardown()
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.lastSeen.Store(time.Now().Unix())
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("clientID", c.ID).Msg("ws: unexpected close")
			}
			return
		}
		c.lastSeen.Store(time.Now().Unix())
		if c.onEvent != nil {
			c.onEvent(c, raw)
		}
	}
}

package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/tagpoker/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// idleTimer fires once after a period without activity.
type idleTimer struct {
	clock   quartz.Clock
	timeout time.Duration
	fired   chan struct{}
	once    sync.Once

	mu    sync.Mutex
	timer *quartz.Timer
}

func newIdleTimer(clock quartz.Clock, timeout time.Duration) *idleTimer {
	t := &idleTimer{clock: clock, timeout: timeout, fired: make(chan struct{})}
	t.Touch()
	return t
}

// Touch restarts the countdown.
func (t *idleTimer) Touch() {
	if t.timeout <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = t.clock.AfterFunc(t.timeout, func() {
		t.once.Do(func() { close(t.fired) })
	})
}

// Stop cancels the countdown for good.
func (t *idleTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
}

// Fired is closed when the timeout elapses.
func (t *idleTimer) Fired() <-chan struct{} {
	return t.fired
}

// frame is an encoded reply and the websocket message type to send it as.
type frame struct {
	kind int
	data []byte
}

// Connection serves one websocket client. Binary frames carry msgpack,
// text frames carry JSON; replies use the same encoding as the request.
type Connection struct {
	conn      *websocket.Conn
	service   *Service
	send      chan frame
	logger    *log.Logger
	idle      *idleTimer
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{} // closed once the socket is shut
}

// NewConnection wraps an upgraded websocket.
func NewConnection(conn *websocket.Conn, service *Service, logger *log.Logger, idle *idleTimer) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:    conn,
		service: service,
		send:    make(chan frame, 64),
		logger:  logger.WithPrefix("conn"),
		idle:    idle,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Run serves the client until it disconnects, goes idle or is closed.
func (c *Connection) Run() {
	go c.writePump()
	go func() {
		select {
		case <-c.idle.Fired():
			c.logger.Info("Closing idle connection", "timeout", c.idle.timeout)
			_ = c.Close()
		case <-c.ctx.Done():
		}
	}()
	c.readPump()
	<-c.done
}

// Close asks the write pump to send a close frame and shut the socket.
// It does not wait; Run returns once the socket is closed.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		c.idle.Stop()
	})
	return nil
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) &&
				c.ctx.Err() == nil {
				c.logger.Warn("WebSocket error", "error", err)
			}
			return
		}
		c.idle.Touch()

		reply, ok := c.handleMessage(kind, data)
		if !ok {
			continue
		}
		select {
		case c.send <- reply:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the client. It is the only
// goroutine that closes the socket, after a normal close frame.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
		_ = c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case f := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(f.kind, f.data); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage decodes one request and encodes the reply in kind.
func (c *Connection) handleMessage(kind int, data []byte) (frame, bool) {
	var req protocol.Request
	var err error
	switch kind {
	case websocket.BinaryMessage:
		err = protocol.Unmarshal(data, &req)
	case websocket.TextMessage:
		err = json.Unmarshal(data, &req)
	default:
		return frame{}, false
	}

	var reply any
	if err != nil {
		reply = protocol.NewError("", protocol.CodeBadRequest, err.Error())
	} else {
		c.logger.Debug("Received request", "type", req.Type, "id", req.ID)
		reply = c.service.Handle(&req)
	}

	var out []byte
	if kind == websocket.BinaryMessage {
		out, err = protocol.Marshal(reply)
	} else {
		out, err = json.Marshal(reply)
	}
	if err != nil {
		c.logger.Error("Failed to encode reply", "error", err)
		return frame{}, false
	}
	return frame{kind: kind, data: out}, true
}

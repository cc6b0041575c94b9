package events

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleship-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Pings are sent before the peer's read deadline runs out
	pingPeriod = 54 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     isValidOrigin,
}

// isValidOrigin accepts non-browser clients and same-host browsers
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Client is a websocket subscriber to one match
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	userID      model.UserID
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new websocket client
func NewClient(hub *Hub, conn *websocket.Conn, userID model.UserID) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		userID:      userID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: hub.clock.Now(),
	}
}

// ServeWS upgrades the request and streams the hub's events until the peer
// disconnects
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, userID model.UserID, logger *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error
		logger.Warn("websocket upgrade failed",
			slog.String("user_id", string(userID)),
			slog.String("error", err.Error()))
		return
	}

	client := NewClient(hub, conn, userID)
	hub.Register(client)

	go client.writePump()
	client.readPump(logger)
}

// readPump drains the connection so control frames are processed. Clients
// have nothing to say; any data frame is ignored.
func (c *Client) readPump(logger *slog.Logger) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error",
					slog.String("user_id", string(c.userID)),
					slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writePump sends queued events and keepalive pings to the peer
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel, normally because the match is over
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

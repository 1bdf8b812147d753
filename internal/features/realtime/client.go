package realtime

import (
	"encoding/json"
	"time"

	"taskhive-backend/internal/util/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// clientCommand is what clients send upstream: room subscription
// management only, never data.
type clientCommand struct {
	Type        string    `json:"type"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

const (
	commandJoinWorkspace  = "joinWorkspace"
	commandLeaveWorkspace = "leaveWorkspace"
)

// Client is a single WebSocket connection of an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[string]bool
	userID uuid.UUID
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		rooms:  make(map[string]bool),
		userID: userID,
	}
}

// ReadPump consumes room commands from the connection until it closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				logger.GetLogger().Error("WebSocket read error", "userId", c.userID, "error", err)
			}
			break
		}

		var command clientCommand
		if err := json.Unmarshal(data, &command); err != nil {
			logger.GetLogger().Warn("Invalid realtime command", "userId", c.userID, "error", err)
			continue
		}

		switch command.Type {
		case commandJoinWorkspace:
			c.hub.JoinWorkspaceRoom(c, command.WorkspaceID)
		case commandLeaveWorkspace:
			c.hub.LeaveWorkspaceRoom(c, command.WorkspaceID)
		}
	}
}

// WritePump forwards hub messages to the connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

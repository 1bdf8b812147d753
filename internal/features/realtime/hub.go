package realtime

import (
	"encoding/json"
	"sync"

	"taskhive-backend/internal/util/logger"

	"github.com/google/uuid"
)

// MembershipChecker guards workspace room subscriptions: a client may
// only join rooms of workspaces it is a member of.
type MembershipChecker interface {
	IsWorkspaceMember(workspaceID uuid.UUID, userID uuid.UUID) (bool, error)
}

// envelope is the wire format for server-pushed events.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type roomMessage struct {
	room string
	data []byte
}

// Hub maintains active clients and their room subscriptions. Rooms are
// keyed by workspace and user UUIDs.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	broadcast  chan *roomMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	memberships MembershipChecker
}

func NewHub(memberships MembershipChecker) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		rooms:       make(map[string]map[*Client]bool),
		broadcast:   make(chan *roomMessage, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		memberships: memberships,
	}
}

// Run processes register, unregister and broadcast requests. It is
// started once from main and never returns.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.deliverToRoom(message)
		}
	}
}

// BroadcastToWorkspace pushes an event to every client subscribed to
// the workspace room.
func (h *Hub) BroadcastToWorkspace(workspaceID uuid.UUID, event string, payload any) {
	h.enqueue(workspaceID.String(), event, payload)
}

// BroadcastToUser pushes an event to every connection of a single
// user. Every client joins its own user room on connect.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event string, payload any) {
	h.enqueue(userID.String(), event, payload)
}

func (h *Hub) enqueue(room string, event string, payload any) {
	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		logger.GetLogger().Error("Failed to marshal realtime event", "event", event, "error", err)
		return
	}

	select {
	case h.broadcast <- &roomMessage{room: room, data: data}:
	default:
		logger.GetLogger().Warn("Realtime broadcast queue full, dropping event", "event", event)
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.joinRoomLocked(client, client.userID.String())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	for room := range client.rooms {
		h.leaveRoomLocked(client, room)
	}
	close(client.send)
}

// JoinWorkspaceRoom subscribes the client to a workspace room after
// verifying membership.
func (h *Hub) JoinWorkspaceRoom(client *Client, workspaceID uuid.UUID) {
	isMember, err := h.memberships.IsWorkspaceMember(workspaceID, client.userID)
	if err != nil {
		logger.GetLogger().
			Error("Failed to check workspace membership", "workspaceId", workspaceID, "error", err)
		return
	}
	if !isMember {
		logger.GetLogger().
			Warn("Rejected workspace room join", "workspaceId", workspaceID, "userId", client.userID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinRoomLocked(client, workspaceID.String())
}

func (h *Hub) LeaveWorkspaceRoom(client *Client, workspaceID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(client, workspaceID.String())
}

func (h *Hub) joinRoomLocked(client *Client, room string) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
}

func (h *Hub) leaveRoomLocked(client *Client, room string) {
	if clients, ok := h.rooms[room]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}

func (h *Hub) deliverToRoom(message *roomMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[message.room] {
		select {
		case client.send <- message.data:
		default:
			// slow consumer, skip rather than block the hub
		}
	}
}
